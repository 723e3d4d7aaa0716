package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/TG-Note-App/tgauth/internal/initdata"
)

// ErrUserNotFound is returned when no row matches the Telegram ID.
var ErrUserNotFound = errors.New("user not found")

// User is a persisted Telegram user.
type User struct {
	TelegramID      int64
	FirstName       string
	LastName        string
	Username        string
	LanguageCode    string
	IsPremium       bool
	AllowsWriteToPM bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DisplayName picks the friendliest available name.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return "@" + u.Username
	default:
		return "User " + strconv.FormatInt(u.TelegramID, 10)
	}
}

// Users is the telegram_users repository.
type Users struct {
	store *Store
	now   func() time.Time
}

const selectUser = `SELECT telegram_id, first_name, last_name, username, language_code,
	is_premium, allows_write_to_pm, created_at, updated_at
	FROM telegram_users WHERE telegram_id = ?`

// SaveOrUpdate inserts the user on first sight and refreshes its profile
// fields afterwards in one upsert statement. CreatedAt never changes once set.
func (r *Users) SaveOrUpdate(ctx context.Context, data *initdata.User) (*User, error) {
	now := r.clock().UTC().Truncate(time.Second)

	_, err := r.store.db.ExecContext(ctx, r.store.rebind(upsertUser),
		data.ID, data.FirstName, data.LastName, data.Username, data.LanguageCode,
		data.IsPremium, data.AllowsWriteToPM, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("save user %d: %w", data.ID, err)
	}

	user, err := r.FindByID(ctx, data.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user %d: %w", data.ID, err)
	}
	return user, nil
}

const upsertUser = `INSERT INTO telegram_users
	(telegram_id, first_name, last_name, username, language_code, is_premium, allows_write_to_pm, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (telegram_id) DO UPDATE SET
		first_name = excluded.first_name,
		last_name = excluded.last_name,
		username = excluded.username,
		language_code = excluded.language_code,
		is_premium = excluded.is_premium,
		allows_write_to_pm = excluded.allows_write_to_pm,
		updated_at = excluded.updated_at`

// FindByID loads a user by Telegram ID.
func (r *Users) FindByID(ctx context.Context, telegramID int64) (*User, error) {
	return scanUser(r.store.db.QueryRowContext(ctx, r.store.rebind(selectUser), telegramID))
}

// WithClock replaces the time source. Used by tests.
func (r *Users) WithClock(now func() time.Time) *Users {
	r.now = now
	return r
}

func (r *Users) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.TelegramID, &u.FirstName, &u.LastName, &u.Username, &u.LanguageCode,
		&u.IsPremium, &u.AllowsWriteToPM, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
