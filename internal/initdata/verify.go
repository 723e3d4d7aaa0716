package initdata

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	ErrHashMissing     = errors.New("hash not found")
	ErrHashMismatch    = errors.New("hash mismatch")
	ErrAuthDateMissing = errors.New("auth_date is missing")
	ErrAuthDateInvalid = errors.New("auth_date is not a unix timestamp")
	ErrExpired         = errors.New("auth_date is too old")
)

// webAppKey is the HMAC key Telegram uses to derive the Mini-App secret.
const webAppKey = "WebAppData"

// DefaultMaxAge bounds how old auth_date may be.
const DefaultMaxAge = time.Hour

// Validator checks init-data signatures for a single bot.
type Validator struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
}

// NewValidator returns a Validator for botToken. A non-positive maxAge falls
// back to DefaultMaxAge.
func NewValidator(botToken string, maxAge time.Duration) *Validator {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Validator{botToken: botToken, maxAge: maxAge, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate verifies freshness and signature of values. The signature is
// accepted under the Mini-App scheme or the login-widget scheme.
func (v *Validator) Validate(values Values) error {
	authDate, ok := values["auth_date"]
	if !ok || authDate == "" {
		return ErrAuthDateMissing
	}
	ts, err := strconv.ParseInt(authDate, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrAuthDateInvalid, authDate)
	}
	if v.now().Sub(time.Unix(ts, 0)) > v.maxAge {
		return fmt.Errorf("%w: %d", ErrExpired, ts)
	}

	hash, ok := values[HashKey]
	if !ok || hash == "" {
		return ErrHashMissing
	}
	received, err := hex.DecodeString(hash)
	if err != nil {
		return ErrHashMismatch
	}

	dataCheckString := values.DataCheckString()
	for _, secret := range [][]byte{WebAppSecret(v.botToken), LoginWidgetSecret(v.botToken)} {
		if hmac.Equal(received, Sign(secret, dataCheckString)) {
			return nil
		}
	}
	return ErrHashMismatch
}

// WebAppSecret derives the Mini-App secret: HMAC_SHA256("WebAppData", token).
func WebAppSecret(botToken string) []byte {
	h := hmac.New(sha256.New, []byte(webAppKey))
	h.Write([]byte(botToken))
	return h.Sum(nil)
}

// LoginWidgetSecret derives the login-widget secret: SHA256(token).
func LoginWidgetSecret(botToken string) []byte {
	sum := sha256.Sum256([]byte(botToken))
	return sum[:]
}

// Sign computes HMAC_SHA256(dataCheckString) with secret.
func Sign(secret []byte, dataCheckString string) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(dataCheckString))
	return h.Sum(nil)
}

// SignValues sets the hash field of values using the Mini-App scheme.
func SignValues(botToken string, values Values) {
	values[HashKey] = hex.EncodeToString(Sign(WebAppSecret(botToken), values.DataCheckString()))
}
