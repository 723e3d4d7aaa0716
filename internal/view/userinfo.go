// Package view renders the Mini-App pages and the user-info fragments with
// gomponents. Every dynamic value goes through g.Text so it is HTML escaped.
package view

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// UserInfoID is the id of the element the bootstrapper writes into.
const UserInfoID = "user-info"

const (
	MissingInitDataText = "Ошибка: нет initData"
	AuthErrorText       = "Ошибка авторизации"
	UsernamePlaceholder = "не указан"
	LoadingText         = "Загрузка..."
)

// UserCard is the view model of an authenticated user.
type UserCard struct {
	FirstName string
	ID        string
	Username  string
}

// MissingInitData is shown when the host supplied no init data.
func MissingInitData() g.Node {
	return errorText(MissingInitDataText)
}

// AuthError is shown for every failure after init data was found.
func AuthError() g.Node {
	return errorText(AuthErrorText)
}

// Greeting renders the authenticated user.
func Greeting(u UserCard) g.Node {
	username := u.Username
	if username == "" {
		username = UsernamePlaceholder
	}

	return g.Group{
		h.H1(h.Class("text-xl font-bold"), g.Text("Привет, "+u.FirstName+"!")),
		h.P(g.Text("ID: "+u.ID)),
		h.P(g.Text("Username: @"+username)),
	}
}

func errorText(msg string) g.Node {
	return h.P(h.Class("text-red-500"), g.Text(msg))
}
