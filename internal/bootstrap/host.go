package bootstrap

import "os"

// StaticHost serves a fixed init-data string.
type StaticHost string

func (s StaticHost) InitData() string { return string(s) }

// EnvHost reads init data from an environment variable at call time.
type EnvHost struct {
	Key string
}

func (e EnvHost) InitData() string { return os.Getenv(e.Key) }
