package view_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/TG-Note-App/tgauth/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, n.Render(&buf))
	return buf.String()
}

func TestGreeting(t *testing.T) {
	t.Run("with username", func(t *testing.T) {
		out := render(t, view.Greeting(view.UserCard{FirstName: "Ann", ID: "42", Username: "ann1"}))

		assert.Contains(t, out, "Привет, Ann!")
		assert.Contains(t, out, "ID: 42")
		assert.Contains(t, out, "@ann1")
		assert.NotContains(t, out, view.UsernamePlaceholder)
	})

	t.Run("without username", func(t *testing.T) {
		out := render(t, view.Greeting(view.UserCard{FirstName: "Ann", ID: "42"}))

		assert.Contains(t, out, "Username: @"+view.UsernamePlaceholder)
	})

	t.Run("escapes user controlled text", func(t *testing.T) {
		out := render(t, view.Greeting(view.UserCard{FirstName: "<script>alert(1)</script>", ID: "1"}))

		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})
}

func TestErrorFragments(t *testing.T) {
	assert.Equal(t, `<p class="text-red-500">Ошибка: нет initData</p>`, render(t, view.MissingInitData()))
	assert.Equal(t, `<p class="text-red-500">Ошибка авторизации</p>`, render(t, view.AuthError()))
}

func TestSlot(t *testing.T) {
	var s view.Slot
	assert.Nil(t, s.Node())
	assert.Empty(t, s.HTML())

	require.NoError(t, s.Replace(view.AuthError()))
	require.NoError(t, s.Replace(view.MissingInitData()))

	assert.Equal(t, `<p class="text-red-500">Ошибка: нет initData</p>`, s.HTML())
	assert.NotNil(t, s.Node())
}

func TestIndexPage(t *testing.T) {
	out := render(t, view.IndexPage())

	assert.Contains(t, out, "<!doctype html>")
	assert.Contains(t, out, `<div id="user-info">`)
	assert.Contains(t, out, "telegram-web-app.js")
	assert.Contains(t, out, "bootstrap.wasm")
}

func TestSnapshotPage(t *testing.T) {
	out := render(t, view.SnapshotPage(view.AuthError()))

	assert.Contains(t, out, `<div id="user-info"><p class="text-red-500">Ошибка авторизации</p></div>`)
	assert.NotContains(t, out, "bootstrap.wasm")
}

func TestErrorPage(t *testing.T) {
	tests := []struct {
		status int
		code   string
		title  string
	}{
		{http.StatusUnauthorized, "401", "Ошибка аутентификации"},
		{http.StatusNotFound, "404", "Страница не найдена"},
		{http.StatusInternalServerError, "500", "Ошибка сервера"},
		{http.StatusBadGateway, "502", "Ошибка сервера"},
		{0, "500", "Неизвестная ошибка"},
	}

	for _, tt := range tests {
		t.Run(tt.code+" "+tt.title, func(t *testing.T) {
			out := render(t, view.ErrorPage(tt.status))
			assert.Contains(t, out, ">"+tt.code+"<")
			assert.Contains(t, out, tt.title)
		})
	}
}
