package initdata

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// UserKey is the field holding the JSON encoded user object.
const UserKey = "user"

// ErrNoUser is returned when the payload carries no user object.
var ErrNoUser = errors.New("init data has no user")

var validate = validator.New()

// User is the Telegram user as embedded in init data.
type User struct {
	ID              int64  `json:"id" validate:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name,omitempty"`
	Username        string `json:"username,omitempty"`
	LanguageCode    string `json:"language_code,omitempty"`
	IsPremium       bool   `json:"is_premium,omitempty"`
	AllowsWriteToPM bool   `json:"allows_write_to_pm,omitempty"`
	PhotoURL        string `json:"photo_url,omitempty" validate:"omitempty,url"`
}

// User decodes the user field.
func (v Values) User() (*User, error) {
	raw, ok := v[UserKey]
	if !ok || raw == "" {
		return nil, ErrNoUser
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if err := validate.Struct(&u); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	return &u, nil
}
