package bootstrap

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/TG-Note-App/tgauth/internal/view"
)

// AuthenticatedUser is the success body of the auth endpoint.
type AuthenticatedUser struct {
	ID        UserID `json:"id"`
	FirstName string `json:"firstName"`
	Username  string `json:"username,omitempty"`
}

// Card converts the response into the view model.
func (u AuthenticatedUser) Card() view.UserCard {
	return view.UserCard{FirstName: u.FirstName, ID: string(u.ID), Username: u.Username}
}

// UserID accepts the identifier as a JSON number or a JSON string and keeps
// its textual form.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id must be a number or string: %w", err)
	}
	*id = UserID(n.String())
	return nil
}
