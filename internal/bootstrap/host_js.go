//go:build js && wasm

package bootstrap

import (
	"bytes"
	"errors"
	"syscall/js"

	g "maragu.dev/gomponents"
)

// TelegramHost reads window.Telegram.WebApp.initData.
type TelegramHost struct{}

func (TelegramHost) InitData() string {
	tg := js.Global().Get("Telegram")
	if tg.IsUndefined() || tg.IsNull() {
		return ""
	}
	webApp := tg.Get("WebApp")
	if webApp.IsUndefined() || webApp.IsNull() {
		return ""
	}
	data := webApp.Get("initData")
	if data.Type() != js.TypeString {
		return ""
	}
	return data.String()
}

// DOMElement replaces the content of the element with the given id.
type DOMElement struct {
	ID string
}

func (d DOMElement) Replace(node g.Node) error {
	el := js.Global().Get("document").Call("getElementById", d.ID)
	if el.IsNull() || el.IsUndefined() {
		return errors.New("element #" + d.ID + " not found")
	}

	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return err
	}
	el.Set("innerHTML", buf.String())
	return nil
}

// WhenReady calls fn once the document is interactive.
func WhenReady(fn func()) {
	doc := js.Global().Get("document")
	if doc.Get("readyState").String() != "loading" {
		fn()
		return
	}

	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		go fn()
		return nil
	})
	doc.Call("addEventListener", "DOMContentLoaded", cb, map[string]any{"once": true})
}
