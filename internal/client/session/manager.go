package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
	"github.com/dmitrijs2005/hustleadmin/internal/logging"
)

// State is the authentication state of a Manager.
type State int

const (
	StateUnauthenticated State = iota
	StateOTPPending
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateOTPPending:
		return "otp_pending"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	ErrNoPendingLogin       = errors.New("no login is waiting for a verification code")
	ErrInvalidCode          = errors.New("verification code must be 6 digits")
	ErrOTPNotIssued         = errors.New("server did not issue a verification code")
	ErrAlreadyAuthenticated = errors.New("already signed in")
)

const (
	msgLoginFailed  = "Login failed"
	msgInvalidCode  = "Invalid verification code"
	msgCodeSent     = "Verification code sent"
	msgLoginSuccess = "Login successful"
	codeLength      = 6
)

// Authenticator is the backend side of the two-step login. *api.Client
// satisfies it.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (api.LoginResponse, error)
	ValidateLogin(ctx context.Context, identifier, password, code string) (api.TokenResponse, error)
}

// TokenStore persists the bearer token. Token returns "" when none is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Result is what the console shows after a login step.
type Result struct {
	Success     bool
	RequiresOTP bool
	Message     string
	// RedirectTo is set after a successful ValidateLogin.
	RedirectTo string
}

// Session is a read-only view of the current session.
type Session struct {
	Token         string
	Identity      Identity
	Authenticated bool
}

// Manager owns the session state. It is safe for concurrent use; operations
// that talk to the backend are serialised.
type Manager struct {
	auth   Authenticator
	tokens TokenStore
	log    logging.Logger

	op sync.Mutex // serialises Login, ValidateLogin, ResendCode, Logout, Restore

	mu       sync.Mutex
	state    State
	token    string
	identity Identity
	redirect string
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func NewManager(auth Authenticator, tokens TokenStore, opts ...Option) *Manager {
	m := &Manager{
		auth:   auth,
		tokens: tokens,
		log:    logging.Nop(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Restore derives the initial state from the stored token: authenticated if
// one exists, unauthenticated otherwise.
func (m *Manager) Restore(ctx context.Context) error {
	m.op.Lock()
	defer m.op.Unlock()

	token, err := m.tokens.Token(ctx)
	if err != nil {
		m.reset()
		return fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		m.reset()
		return nil
	}

	id, err := IdentityFromToken(token)
	if err != nil {
		m.log.Debug(ctx, "stored token carries no readable claims", "error", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = token
	m.identity = id
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "email", id.Email)
	return nil
}

// Login submits the credentials. On success the manager waits for the
// one-time code; no token is stored yet.
func (m *Manager) Login(ctx context.Context, identifier, password string) (Result, error) {
	m.op.Lock()
	defer m.op.Unlock()

	if m.State() == StateAuthenticated {
		return Result{Message: ErrAlreadyAuthenticated.Error()}, ErrAlreadyAuthenticated
	}

	resp, err := m.auth.Login(ctx, identifier, password)
	if err != nil {
		m.setState(StateUnauthenticated)
		m.log.Warn(ctx, "login failed", "email", identifier, "error", err)
		return Result{Message: api.Message(err, msgLoginFailed)}, fmt.Errorf("login: %w", err)
	}
	if !resp.RequiresOTP {
		m.setState(StateUnauthenticated)
		m.log.Warn(ctx, "login answered without a verification code", "email", identifier)
		return Result{Message: orDefault(resp.Message, msgLoginFailed)}, ErrOTPNotIssued
	}

	m.setState(StateOTPPending)
	m.log.Info(ctx, "verification code requested", "email", identifier)
	return Result{Success: true, RequiresOTP: true, Message: orDefault(resp.Message, msgCodeSent)}, nil
}

// ResendCode asks the backend to issue a new code for the pending login.
func (m *Manager) ResendCode(ctx context.Context, identifier, password string) (Result, error) {
	m.op.Lock()
	defer m.op.Unlock()

	if m.State() != StateOTPPending {
		return Result{Message: ErrNoPendingLogin.Error()}, ErrNoPendingLogin
	}

	resp, err := m.auth.Login(ctx, identifier, password)
	if err != nil {
		m.log.Warn(ctx, "resending verification code failed", "email", identifier, "error", err)
		return Result{RequiresOTP: true, Message: api.Message(err, msgLoginFailed)}, fmt.Errorf("resend code: %w", err)
	}
	return Result{Success: true, RequiresOTP: true, Message: orDefault(resp.Message, msgCodeSent)}, nil
}

// ValidateLogin submits the one-time code. A failure keeps the login pending
// so the caller may retry.
func (m *Manager) ValidateLogin(ctx context.Context, identifier, password, code string) (Result, error) {
	m.op.Lock()
	defer m.op.Unlock()

	if m.State() != StateOTPPending {
		return Result{Message: ErrNoPendingLogin.Error()}, ErrNoPendingLogin
	}
	if !validCode(code) {
		return Result{RequiresOTP: true, Message: msgInvalidCode}, fmt.Errorf("%w: %w", common.ErrorValidation, ErrInvalidCode)
	}

	resp, err := m.auth.ValidateLogin(ctx, identifier, password, code)
	if err != nil {
		m.log.Warn(ctx, "verification failed", "email", identifier, "error", err)
		return Result{RequiresOTP: true, Message: api.Message(err, msgInvalidCode)}, fmt.Errorf("validate login: %w", err)
	}

	if err := m.tokens.SaveToken(ctx, resp.Token); err != nil {
		m.log.Error(ctx, "error saving token", "error", err)
		return Result{RequiresOTP: true, Message: msgLoginFailed}, fmt.Errorf("save token: %w", err)
	}

	id, err := IdentityFromToken(resp.Token)
	if err != nil || id.Email == "" {
		id = Identity{Email: identifier}
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.token = resp.Token
	m.identity = id
	redirect := m.redirect
	m.redirect = ""
	m.mu.Unlock()

	if redirect == "" {
		redirect = common.DefaultRoute
	}
	m.log.Info(ctx, "signed in", "email", id.Email)
	return Result{Success: true, Message: msgLoginSuccess, RedirectTo: redirect}, nil
}

// CancelLogin abandons a pending login.
func (m *Manager) CancelLogin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateOTPPending {
		m.state = StateUnauthenticated
	}
}

// Logout clears the stored token and resets the session. It never fails:
// a storage error is logged and the in-memory session is reset anyway.
func (m *Manager) Logout(ctx context.Context) {
	m.op.Lock()
	defer m.op.Unlock()

	if err := m.tokens.ClearToken(ctx); err != nil {
		m.log.Error(ctx, "error clearing stored token", "error", err)
	}
	m.reset()
	m.log.Info(ctx, "signed out")
}

// Guard reports whether route may be shown. When it may not, route is
// remembered as the destination of the next successful login.
func (m *Manager) Guard(route string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateAuthenticated {
		return true
	}
	m.redirect = route
	return false
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Session{
		Token:         m.token,
		Identity:      m.identity,
		Authenticated: m.state == StateAuthenticated,
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) reset() {
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.token = ""
	m.identity = Identity{}
	m.redirect = ""
	m.mu.Unlock()
}

func validCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
