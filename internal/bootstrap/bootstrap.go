// Package bootstrap runs the Mini-App authentication flow: read init data
// from the host, post it to the auth endpoint and render the outcome into
// the user-info element.
package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/TG-Note-App/tgauth/internal/initdata"
	"github.com/TG-Note-App/tgauth/internal/view"
	g "maragu.dev/gomponents"
)

// AuthPath is the server endpoint init data is posted to.
const AuthPath = "/auth/telegram"

var (
	// ErrHostDataMissing means the host supplied no init data.
	ErrHostDataMissing = errors.New("host init data missing")
	// ErrAuthRequestFailed covers every failure once init data was found.
	ErrAuthRequestFailed = errors.New("auth request failed")
)

// HostBridge exposes the init data of the Mini-App host.
type HostBridge interface {
	InitData() string
}

// Element is the page element whose content the bootstrapper replaces.
type Element interface {
	Replace(node g.Node) error
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithBaseURL resolves AuthPath against base, e.g. "https://app.example".
// Without it the request goes to the bare path, which the browser resolves
// against the page origin.
func WithBaseURL(base string) Option {
	return func(b *Bootstrapper) { b.baseURL = strings.TrimRight(base, "/") }
}

// WithClient replaces http.DefaultClient.
func WithClient(c Doer) Option {
	return func(b *Bootstrapper) { b.client = c }
}

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Bootstrapper) { b.logger = l }
}

// Bootstrapper authenticates the current Mini-App user once.
type Bootstrapper struct {
	host    HostBridge
	out     Element
	client  Doer
	baseURL string
	logger  *slog.Logger

	once sync.Once
	err  error
}

// New returns a Bootstrapper reading from host and writing into out.
func New(host HostBridge, out Element, opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		host:   host,
		out:    out,
		client: http.DefaultClient,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executes the flow on the first call. Later calls return the first
// result without touching the element or the network.
//
// The returned error wraps ErrHostDataMissing or ErrAuthRequestFailed for
// logging; the element shows one of two fixed messages regardless of cause.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.once.Do(func() {
		b.err = b.run(ctx)
	})
	return b.err
}

func (b *Bootstrapper) run(ctx context.Context) error {
	raw := b.host.InitData()
	if raw == "" {
		b.logger.WarnContext(ctx, "no init data from host")
		return b.render(view.MissingInitData(), ErrHostDataMissing)
	}

	card, err := b.authenticate(ctx, raw)
	if err != nil {
		b.logger.WarnContext(ctx, "authorization failed", "error", err)
		return b.render(view.AuthError(), fmt.Errorf("%w: %w", ErrAuthRequestFailed, err))
	}

	b.logger.InfoContext(ctx, "user authorized", "id", card.ID)
	return b.render(view.Greeting(card), nil)
}

func (b *Bootstrapper) authenticate(ctx context.Context, raw string) (view.UserCard, error) {
	values, err := initdata.Parse(raw)
	if err != nil {
		return view.UserCard{}, fmt.Errorf("parse init data: %w", err)
	}

	body, err := json.Marshal(values)
	if err != nil {
		return view.UserCard{}, fmt.Errorf("encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+AuthPath, bytes.NewReader(body))
	if err != nil {
		return view.UserCard{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return view.UserCard{}, fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return view.UserCard{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return view.UserCard{}, fmt.Errorf("read response: %w", err)
	}

	var user *AuthenticatedUser
	if err := json.Unmarshal(payload, &user); err != nil {
		return view.UserCard{}, fmt.Errorf("decode response: %w", err)
	}
	if user == nil {
		return view.UserCard{}, errors.New("empty user in response")
	}
	return user.Card(), nil
}

// render replaces the element content. A render failure takes precedence
// over cause since the user saw nothing.
func (b *Bootstrapper) render(node g.Node, cause error) error {
	if err := b.out.Replace(node); err != nil {
		b.logger.Error("failed to render user info", "error", err)
		if cause != nil {
			return errors.Join(cause, err)
		}
		return fmt.Errorf("render user info: %w", err)
	}
	return cause
}
