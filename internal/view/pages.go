package view

import (
	"net/http"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const appTitle = "Telegram Auth"

// wasmLoader boots the compiled bootstrapper. It expects wasm_exec.js and
// bootstrap.wasm under /static/.
const wasmLoader = `const go = new Go();
WebAssembly.instantiateStreaming(fetch("/static/bootstrap.wasm"), go.importObject)
  .then((result) => go.run(result.instance));`

// Document is the shared page shell.
func Document(title string, head []g.Node, body ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(
			h.Lang("ru"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(title)),
				g.Group(head),
			),
			h.Body(
				h.Class("bg-white text-gray-900"),
				h.Main(h.Class("container mx-auto p-4"), g.Group(body)),
			),
		),
	)
}

// IndexPage is the Mini-App entry page. The bootstrapper fills user-info once
// the document is ready.
func IndexPage() g.Node {
	return Document(appTitle,
		[]g.Node{
			h.Script(h.Src("https://telegram.org/js/telegram-web-app.js")),
			h.Script(h.Src("/static/wasm_exec.js")),
			h.Script(g.Raw(wasmLoader)),
		},
		UserInfo(g.Text(LoadingText)),
	)
}

// SnapshotPage is a static page with already rendered user-info content.
func SnapshotPage(content g.Node) g.Node {
	return Document(appTitle, nil, UserInfo(content))
}

// UserInfo is the user-info container.
func UserInfo(content g.Node) g.Node {
	return h.Div(h.ID(UserInfoID), content)
}

// ErrorPage explains an HTTP error status to a person.
func ErrorPage(status int) g.Node {
	title, message := errorCopy(status)
	code := "500"
	if status != 0 {
		code = strconv.Itoa(status)
	}

	return Document(title, nil,
		h.Div(
			h.Class("text-center mt-16"),
			h.H1(h.Class("text-4xl font-extrabold text-red-600"), g.Text(code)),
			h.H2(h.Class("text-xl font-bold mt-2"), g.Text(title)),
			h.P(h.Class("text-gray-700 mt-4"), g.Text(message)),
		),
	)
}

func errorCopy(status int) (title, message string) {
	switch {
	case status == 0:
		return "Неизвестная ошибка", "Произошла неизвестная ошибка."
	case status == http.StatusUnauthorized:
		return "Ошибка аутентификации", "Данные аутентификации отсутствуют или недействительны. Пожалуйста, запустите приложение из Telegram."
	case status == http.StatusNotFound:
		return "Страница не найдена", "Запрашиваемая страница не существует."
	default:
		return "Ошибка сервера", "Произошла внутренняя ошибка сервера. Попробуйте позже."
	}
}
