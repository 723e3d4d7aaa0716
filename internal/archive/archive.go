// Package archive keeps an audit trail of successful Telegram authentications
// in S3 compatible object storage.
package archive

import (
	"context"
	"time"
)

// Event is one successful authentication.
type Event struct {
	TelegramID int64             `json:"telegramId"`
	Username   string            `json:"username,omitempty"`
	Endpoint   string            `json:"endpoint"`
	RemoteAddr string            `json:"remoteAddr,omitempty"`
	InitData   map[string]string `json:"initData"`
	At         time.Time         `json:"at"`
}

// Recorder stores authentication events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Nop discards events. It is used when no object storage is configured.
type Nop struct{}

func (Nop) Record(context.Context, Event) error { return nil }
