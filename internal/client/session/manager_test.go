package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAuth struct {
	loginResp    api.LoginResponse
	loginErr     error
	validateResp api.TokenResponse
	validateErr  error

	loginCalls    int
	validateCalls int
	lastCode      string
}

func (f *fakeAuth) Login(_ context.Context, _, _ string) (api.LoginResponse, error) {
	f.loginCalls++
	return f.loginResp, f.loginErr
}

func (f *fakeAuth) ValidateLogin(_ context.Context, _, _, code string) (api.TokenResponse, error) {
	f.validateCalls++
	f.lastCode = code
	return f.validateResp, f.validateErr
}

type memStore struct {
	mu       sync.Mutex
	token    string
	saveErr  error
	clearErr error
	readErr  error
}

func (s *memStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.readErr
}

func (s *memStore) SaveToken(_ context.Context, t string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = t
	return nil
}

func (s *memStore) ClearToken(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

func (s *memStore) stored() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func signedToken(t *testing.T, email string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": email}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func pendingManager(t *testing.T, auth *fakeAuth, store *memStore) *Manager {
	t.Helper()
	m := NewManager(auth, store)
	_, err := m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	require.Equal(t, StateOTPPending, m.State())
	return m
}

// ---- tests ----

func TestManager_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuth{
		loginResp:    api.LoginResponse{RequiresOTP: true, Message: "sent"},
		validateResp: api.TokenResponse{Token: "T"},
	}
	store := &memStore{}
	m := NewManager(auth, store)

	res, err := m.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, res.RequiresOTP)
	assert.Equal(t, "sent", res.Message)
	assert.False(t, m.Session().Authenticated)
	assert.Equal(t, StateOTPPending, m.State())
	assert.Empty(t, store.stored(), "no token before the code is validated")

	res, err = m.ValidateLogin(ctx, "a@b.com", "pw", "123456")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, common.DefaultRoute, res.RedirectTo)
	assert.Equal(t, "123456", auth.lastCode)

	s := m.Session()
	assert.True(t, s.Authenticated)
	assert.Equal(t, "T", s.Token)
	assert.Equal(t, "a@b.com", s.Identity.Email, "opaque token falls back to the identifier")
	assert.Equal(t, "T", store.stored())
}

func TestManager_LoginFailure(t *testing.T) {
	auth := &fakeAuth{loginErr: &api.StatusError{Status: 401, Message: "Invalid credentials"}}
	m := NewManager(auth, &memStore{})

	res, err := m.Login(context.Background(), "a@b.com", "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.Equal(t, StateUnauthenticated, m.State())
}

func TestManager_LoginFailureFallbackMessage(t *testing.T) {
	auth := &fakeAuth{loginErr: api.ErrUnavailable}
	m := NewManager(auth, &memStore{})

	res, err := m.Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, "Login failed", res.Message)
}

func TestManager_LoginWithoutOTPIsRejected(t *testing.T) {
	auth := &fakeAuth{loginResp: api.LoginResponse{RequiresOTP: false}}
	m := NewManager(auth, &memStore{})

	res, err := m.Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrOTPNotIssued)
	assert.False(t, res.Success)
	assert.Equal(t, StateUnauthenticated, m.State())
}

func TestManager_ValidateLoginRequiresPendingLogin(t *testing.T) {
	auth := &fakeAuth{}
	m := NewManager(auth, &memStore{})

	_, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", "123456")
	require.ErrorIs(t, err, ErrNoPendingLogin)
	assert.Equal(t, 0, auth.validateCalls)
}

func TestManager_ValidateLoginRejectsMalformedCode(t *testing.T) {
	auth := &fakeAuth{loginResp: api.LoginResponse{RequiresOTP: true}}
	m := pendingManager(t, auth, &memStore{})

	for _, code := range []string{"", "12345", "1234567", "12a456", "１２３４５６"} {
		res, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", code)
		require.ErrorIs(t, err, ErrInvalidCode, "code %q", code)
		assert.ErrorIs(t, err, common.ErrorValidation)
		assert.Equal(t, "Invalid verification code", res.Message)
	}
	assert.Equal(t, 0, auth.validateCalls, "no request for a malformed code")
	assert.Equal(t, StateOTPPending, m.State())
}

func TestManager_ValidateLoginFailureKeepsPending(t *testing.T) {
	auth := &fakeAuth{
		loginResp:   api.LoginResponse{RequiresOTP: true},
		validateErr: &api.StatusError{Status: 400, Message: "Bad Request"},
	}
	store := &memStore{}
	m := pendingManager(t, auth, store)

	res, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", "000000")
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid verification code", res.Message)
	assert.Equal(t, StateOTPPending, m.State())
	assert.Empty(t, store.stored())

	auth.validateErr = nil
	auth.validateResp = api.TokenResponse{Token: "T2"}
	res, err = m.ValidateLogin(context.Background(), "a@b.com", "pw", "111111")
	require.NoError(t, err)
	assert.True(t, res.Success, "retry after a failed code")
}

func TestManager_ValidateLoginSaveFailure(t *testing.T) {
	auth := &fakeAuth{
		loginResp:    api.LoginResponse{RequiresOTP: true},
		validateResp: api.TokenResponse{Token: "T"},
	}
	store := &memStore{}
	m := pendingManager(t, auth, store)
	store.saveErr = errors.New("disk full")

	_, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", "123456")
	require.Error(t, err)
	assert.Equal(t, StateOTPPending, m.State())
	assert.False(t, m.Session().Authenticated)
}

func TestManager_IdentityFromClaims(t *testing.T) {
	token := signedToken(t, "admin@hustle.io")
	auth := &fakeAuth{
		loginResp:    api.LoginResponse{RequiresOTP: true},
		validateResp: api.TokenResponse{Token: token},
	}
	m := pendingManager(t, auth, &memStore{})

	_, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", "123456")
	require.NoError(t, err)
	assert.Equal(t, "admin@hustle.io", m.Session().Identity.Email)
}

func TestManager_GuardRedirectsAfterLogin(t *testing.T) {
	auth := &fakeAuth{
		loginResp:    api.LoginResponse{RequiresOTP: true},
		validateResp: api.TokenResponse{Token: "T"},
	}
	m := NewManager(auth, &memStore{})

	assert.False(t, m.Guard("/withdrawals"))

	_, err := m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	res, err := m.ValidateLogin(context.Background(), "a@b.com", "pw", "123456")
	require.NoError(t, err)

	assert.Equal(t, "/withdrawals", res.RedirectTo)
	assert.True(t, m.Guard("/withdrawals"))

	m.Logout(context.Background())
	_, err = m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	res, err = m.ValidateLogin(context.Background(), "a@b.com", "pw", "123456")
	require.NoError(t, err)
	assert.Equal(t, "/", res.RedirectTo, "captured route is consumed")
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	store := &memStore{token: "T"}
	m := NewManager(&fakeAuth{}, store)
	require.NoError(t, m.Restore(context.Background()))
	require.True(t, m.Session().Authenticated)

	for i := 0; i < 2; i++ {
		m.Logout(context.Background())
		assert.Equal(t, StateUnauthenticated, m.State())
		assert.Empty(t, store.stored())
		assert.Equal(t, Session{}, m.Session())
	}
}

func TestManager_LogoutResetsEvenWhenStorageFails(t *testing.T) {
	store := &memStore{token: "T"}
	m := NewManager(&fakeAuth{}, store)
	require.NoError(t, m.Restore(context.Background()))

	store.clearErr = errors.New("locked")
	m.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.False(t, m.Session().Authenticated)
}

func TestManager_Restore(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		m := NewManager(&fakeAuth{}, &memStore{})
		require.NoError(t, m.Restore(context.Background()))
		assert.Equal(t, StateUnauthenticated, m.State())
	})

	t.Run("opaque token is trusted", func(t *testing.T) {
		m := NewManager(&fakeAuth{}, &memStore{token: "opaque"})
		require.NoError(t, m.Restore(context.Background()))
		s := m.Session()
		assert.True(t, s.Authenticated)
		assert.Equal(t, "opaque", s.Token)
		assert.Empty(t, s.Identity.Email)
	})

	t.Run("jwt token", func(t *testing.T) {
		m := NewManager(&fakeAuth{}, &memStore{token: signedToken(t, "ops@hustle.io")})
		require.NoError(t, m.Restore(context.Background()))
		assert.Equal(t, "ops@hustle.io", m.Session().Identity.Email)
	})

	t.Run("storage error", func(t *testing.T) {
		m := NewManager(&fakeAuth{}, &memStore{token: "T", readErr: errors.New("io")})
		require.Error(t, m.Restore(context.Background()))
		assert.Equal(t, StateUnauthenticated, m.State())
	})
}

func TestManager_LoginWhileAuthenticated(t *testing.T) {
	auth := &fakeAuth{}
	m := NewManager(auth, &memStore{token: "T"})
	require.NoError(t, m.Restore(context.Background()))

	_, err := m.Login(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrAlreadyAuthenticated)
	assert.Equal(t, 0, auth.loginCalls)
}

func TestManager_ResendAndCancel(t *testing.T) {
	auth := &fakeAuth{loginResp: api.LoginResponse{RequiresOTP: true}}
	m := NewManager(auth, &memStore{})

	_, err := m.ResendCode(context.Background(), "a@b.com", "pw")
	require.ErrorIs(t, err, ErrNoPendingLogin)

	_, err = m.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	res, err := m.ResendCode(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "Verification code sent", res.Message)
	assert.Equal(t, 2, auth.loginCalls)

	m.CancelLogin()
	assert.Equal(t, StateUnauthenticated, m.State())
}

func TestIdentityFromToken_Invalid(t *testing.T) {
	_, err := IdentityFromToken("not-a-jwt")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "otp_pending", StateOTPPending.String())
	assert.Equal(t, "State(9)", State(9).String())
}
