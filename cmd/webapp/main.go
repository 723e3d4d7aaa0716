//go:build js && wasm

// Command webapp is the browser build of the Mini-App bootstrapper. Running
// go generate ./... from the repository root builds it into
// frontend/dist/bootstrap.wasm next to the Go runtime's wasm_exec.js; by hand:
//
//	GOOS=js GOARCH=wasm go build -o frontend/dist/bootstrap.wasm ./cmd/webapp
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" frontend/dist/
package main

import (
	"context"
	"log/slog"

	"github.com/TG-Note-App/tgauth/internal/bootstrap"
	"github.com/TG-Note-App/tgauth/internal/view"
)

func main() {
	done := make(chan struct{})

	b := bootstrap.New(bootstrap.TelegramHost{}, bootstrap.DOMElement{ID: view.UserInfoID})
	bootstrap.WhenReady(func() {
		defer close(done)
		if err := b.Run(context.Background()); err != nil {
			slog.Warn("bootstrap finished with error", "error", err)
		}
	})

	<-done
}
