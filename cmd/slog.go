package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

// setupLogging installs the default slog logger. The .env files are loaded
// first so LOG_LEVEL may come from them as well as from the environment;
// variables already set in the environment take precedence.
func setupLogging(w io.Writer, envFiles ...string) error {
	// A missing .env is normal in production, config.Load reports it later.
	_ = godotenv.Load(envFiles...)

	logLevel := slog.LevelInfo
	if logLevelStr := os.Getenv("LOG_LEVEL"); logLevelStr != "" {
		if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", logLevelStr, err)
		}
	}

	if logLevel == slog.LevelDebug {
		// Module name comes from the build info so source paths print relative
		// to the repository root.
		modulePrefix := getModulePrefix()

		replacer := func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = cleanSourcePath(source.File, modulePrefix)
				}
			}
			// tint colours errors when they are wrapped with tint.Err
			if err, ok := a.Value.Any().(error); ok {
				aErr := tint.Err(err)
				aErr.Key = a.Key
				return aErr
			}
			return a
		}

		slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
			Level:       slog.LevelDebug,
			TimeFormat:  time.TimeOnly,
			ReplaceAttr: replacer,
			AddSource:   true,
		})))
		slog.Debug("debug logging enabled")
		return nil
	}

	// Anything above debug is meant for log collectors: JSON lines.
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})))
	return nil
}

// getModulePrefix returns "/<last module path element>/", e.g.
// "github.com/TG-Note-App/tgauth" -> "/tgauth/".
func getModulePrefix() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		// go run and tests may not carry a main module path
		if wd, err := os.Getwd(); err == nil {
			return "/" + filepath.Base(wd) + "/"
		}
		return "/tgauth/"
	}

	parts := strings.Split(info.Main.Path, "/")
	return "/" + parts[len(parts)-1] + "/"
}

// cleanSourcePath trims everything up to the module directory so debug
// output shows "internal/server/server.go" rather than an absolute path.
func cleanSourcePath(filePath, modulePrefix string) string {
	parts := strings.Split(filePath, modulePrefix)
	if len(parts) == 2 {
		return parts[1]
	}

	// Outside the module (dependencies, stdlib): drop the GOPATH-style prefix.
	cleaned := filePath
	if idx := strings.LastIndex(cleaned, "/go/src/"); idx != -1 {
		cleaned = cleaned[idx+8:]
	} else if idx := strings.LastIndex(cleaned, "/src/"); idx != -1 {
		cleaned = cleaned[idx+5:]
	}
	return cleaned
}
