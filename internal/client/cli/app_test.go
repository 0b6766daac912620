package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/hustleadmin/internal/client/config"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/services"
	"github.com/dmitrijs2005/hustleadmin/internal/client/session"
	"github.com/dmitrijs2005/hustleadmin/internal/client/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail = "admin@example.com"
	testCode  = "123456"
)

type seenRequest struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   map[string]any
}

// adminBackend is a minimal admin API: one worker, one task and the
// two-step login.
type adminBackend struct {
	t     *testing.T
	token string

	mu     sync.Mutex
	seen   []seenRequest
	status bool
}

func newAdminBackend(t *testing.T) (*adminBackend, *httptest.Server) {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": testEmail}).
		SignedString([]byte("test-key"))
	require.NoError(t, err)

	b := &adminBackend{t: t, token: token, status: true}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *adminBackend) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = append(b.seen, seenRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})

	write := func(status int, v string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(v))
	}

	switch r.Method + " " + r.URL.Path {
	case "POST /auth/login":
		write(http.StatusOK, `{"requiresOTP":true,"message":"Code sent to your email"}`)
	case "POST /auth/login/validate":
		if body["otp"] != testCode {
			write(http.StatusUnauthorized, `{"message":"Invalid OTP"}`)
			return
		}
		write(http.StatusOK, `{"token":"`+b.token+`"}`)
	case "GET /dashboard/stats":
		write(http.StatusOK, `{"data":{"totalUsers":42,"totalTasks":7,"pendingApprovals":3,"totalEarnings":1500}}`)
	case "GET /dashboard/activity":
		write(http.StatusOK, `{"data":[{"type":"signup","message":"Jane joined","createdAt":"2024-05-01"}]}`)
	case "GET /users/admins":
		if r.URL.Query().Get("download") == "true" {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("first_name,last_name\nJane,Doe\n"))
			return
		}
		write(http.StatusOK, `{"data":{"data":[{"_id":"u1","first_name":"Jane","last_name":"Doe","email":"jane@example.com","status":true}],"metadata":{"pages":1}}}`)
	case "GET /users/stats/admins":
		write(http.StatusOK, `{"data":{"active_users":12,"suspended_users":2}}`)
	case "GET /users/u1":
		write(http.StatusOK, `{"data":{"_id":"u1","first_name":"Jane","last_name":"Doe","status":`+boolJSON(b.status)+`}}`)
	case "PATCH /users/u1":
		if s, ok := body["status"].(bool); ok {
			b.status = s
		}
		write(http.StatusOK, `{"data":{}}`)
	case "GET /tasks/admins":
		write(http.StatusOK, `{"data":{"data":[{"_id":"t1","title":"Logo design","status":"active","reward":25}],"metadata":{"pages":3}}}`)
	default:
		write(http.StatusNotFound, `{"message":"no route"}`)
	}
}

func boolJSON(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func (b *adminBackend) requests(method, path string) []seenRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []seenRequest
	for _, r := range b.seen {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

type testConsole struct {
	app    *App
	out    *bytes.Buffer
	errOut *bytes.Buffer
	cfg    *config.Config
}

func newTestConsole(t *testing.T, baseURL, storePath, script string) *testConsole {
	t.Helper()

	origPrint, origPassword := printlnFn, readPassword
	printlnFn = func(...any) (int, error) { return 0, nil }
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() {
		printlnFn = origPrint
		readPassword = origPassword
	})

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = baseURL
	cfg.StorePath = storePath
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.LogLevel = "error"
	cfg.NotificationTTL = time.Minute

	var out, errOut bytes.Buffer
	app, err := NewApp(context.Background(), cfg, strings.NewReader(script), &out, &errOut)
	require.NoError(t, err)

	return &testConsole{app: app, out: &out, errOut: &errOut, cfg: cfg}
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestApp_LoginBrowseToggleExportLogout(t *testing.T) {
	b, srv := newAdminBackend(t)
	c := newTestConsole(t, srv.URL, ":memory:", script(
		"open workers",
		"login",
		testEmail,
		testCode,
		"toggle u1",
		"export",
		"whoami",
		"logout",
		"exit",
	))

	c.app.Run(context.Background())

	out, errOut := c.out.String(), c.errOut.String()
	assert.Contains(t, errOut, "Please log in first")
	assert.Contains(t, out, "Code sent to your email")
	assert.Contains(t, out, "Login successful")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Worker suspended")
	assert.Contains(t, out, "Signed in as "+testEmail)
	assert.Contains(t, out, "Logged out")

	// the guarded route is shown instead of the dashboard
	assert.Empty(t, b.requests("GET", "/dashboard/stats"))

	login := b.requests("POST", "/auth/login")
	require.Len(t, login, 1)
	assert.Equal(t, testEmail, login[0].Body["email"])
	assert.Equal(t, "s3cret", login[0].Body["password"])
	assert.Empty(t, login[0].Auth)

	patches := b.requests("PATCH", "/users/u1")
	require.Len(t, patches, 1)
	assert.Equal(t, false, patches[0].Body["status"])
	assert.Equal(t, "Bearer "+b.token, patches[0].Auth)

	lists := b.requests("GET", "/users/admins")
	require.GreaterOrEqual(t, len(lists), 3)
	assert.Equal(t, "1", lists[0].Query.Get("pageNo"))
	assert.Equal(t, "10", lists[0].Query.Get("limitNo"))

	download := lists[len(lists)-1]
	assert.Equal(t, "true", download.Query.Get("download"))
	assert.Equal(t, strings.Join(services.WorkersExport.Columns, ","), download.Query.Get("columns"))

	data, err := os.ReadFile(filepath.Join(c.cfg.ExportDir, "workers.csv"))
	require.NoError(t, err)
	assert.Equal(t, "first_name,last_name\nJane,Doe\n", string(data))

	assert.Equal(t, session.StateUnauthenticated, c.app.session.State())
}

func TestApp_LoginDefaultsToDashboardAndRetriesCode(t *testing.T) {
	b, srv := newAdminBackend(t)
	c := newTestConsole(t, srv.URL, ":memory:", script(
		"login",
		testEmail,
		"12ab",
		"000000",
		testCode,
		"exit",
	))

	c.app.Run(context.Background())

	out, errOut := c.out.String(), c.errOut.String()
	assert.Contains(t, errOut, "Invalid verification code")
	assert.Contains(t, errOut, "Invalid OTP")
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Jane joined")

	// the malformed code never reaches the backend
	assert.Len(t, b.requests("POST", "/auth/login/validate"), 2)
	assert.Equal(t, session.StateAuthenticated, c.app.session.State())
}

func TestApp_CancelLogin(t *testing.T) {
	_, srv := newAdminBackend(t)
	c := newTestConsole(t, srv.URL, ":memory:", script(
		"login",
		testEmail,
		"",
		"whoami",
		"exit",
	))

	c.app.Run(context.Background())

	assert.Contains(t, c.out.String(), "Login cancelled")
	assert.Contains(t, c.out.String(), "Not signed in")
	assert.Equal(t, session.StateUnauthenticated, c.app.session.State())
}

func TestApp_OpenWorkersShowsStats(t *testing.T) {
	b, srv := newAdminBackend(t)
	store := filepath.Join(t.TempDir(), "store.db")

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	require.NoError(t, services.NewPreferences(db).SaveToken(ctx, b.token))
	require.NoError(t, db.Close())

	c := newTestConsole(t, srv.URL, store, script("open workers", "exit"))
	c.app.Run(ctx)

	assert.Contains(t, c.out.String(), "Active workers: 12 | Suspended: 2")
	assert.Len(t, b.requests("GET", "/users/stats/admins"), 1)
}

func TestApp_RestoresStoredSession(t *testing.T) {
	b, srv := newAdminBackend(t)
	store := filepath.Join(t.TempDir(), "store.db")

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	prefs := services.NewPreferences(db)
	require.NoError(t, prefs.SaveToken(ctx, b.token))
	require.NoError(t, prefs.SetTheme(ctx, services.ThemeDark))
	require.NoError(t, db.Close())

	c := newTestConsole(t, srv.URL, store, script(
		"theme",
		"open tasks",
		"next",
		"exit",
	))

	c.app.Run(ctx)

	out := c.out.String()
	assert.Contains(t, out, "Signed in as "+testEmail)
	assert.Contains(t, out, "Theme: dark")
	assert.Contains(t, out, "Logo design")
	assert.Contains(t, out, "Page 2 of 3")

	tasks := b.requests("GET", "/tasks/admins")
	require.Len(t, tasks, 2)
	assert.Equal(t, "Bearer "+b.token, tasks[0].Auth)
	assert.Equal(t, "2", tasks[1].Query.Get("pageNo"))
}

func TestApp_ResetForgetsStoredState(t *testing.T) {
	b, srv := newAdminBackend(t)
	store := filepath.Join(t.TempDir(), "store.db")

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	prefs := services.NewPreferences(db)
	require.NoError(t, prefs.SaveToken(ctx, b.token))
	require.NoError(t, prefs.SetTheme(ctx, services.ThemeDark))
	require.NoError(t, db.Close())

	c := newTestConsole(t, srv.URL, store, script("reset", "whoami", "theme", "exit"))
	c.app.Run(ctx)

	out := c.out.String()
	assert.Contains(t, out, "Local data cleared")
	assert.Contains(t, out, "Not signed in")
	assert.Contains(t, out, "Theme: light")

	db, err = storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	defer db.Close()
	st, err := services.NewPreferences(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.StoredState{Theme: services.ThemeLight}, st)
}

func TestApp_ServerUnavailable(t *testing.T) {
	b, srv := newAdminBackend(t)
	store := filepath.Join(t.TempDir(), "store.db")

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	require.NoError(t, services.NewPreferences(db).SaveToken(ctx, b.token))
	require.NoError(t, db.Close())

	baseURL := srv.URL
	srv.Close()

	c := newTestConsole(t, baseURL, store, script("dashboard", "open tasks", "exit"))
	c.app.Run(ctx)

	errOut := c.errOut.String()
	assert.Contains(t, errOut, "Server unavailable")
	assert.Contains(t, errOut, "Failed to fetch data")
	assert.Contains(t, c.out.String(), "No tasks found")
}

func TestApp_ListCommandsNeedAnOpenList(t *testing.T) {
	b, srv := newAdminBackend(t)
	store := filepath.Join(t.TempDir(), "store.db")

	ctx := context.Background()
	db, err := storage.InitDatabase(ctx, store)
	require.NoError(t, err)
	require.NoError(t, services.NewPreferences(db).SaveToken(ctx, b.token))
	require.NoError(t, db.Close())

	c := newTestConsole(t, srv.URL, store, script(
		"next",
		"open nowhere",
		"open submissions",
		"open submissions 5/approve",
		"theme purple",
		"exit",
	))

	c.app.Run(ctx)

	errOut := c.errOut.String()
	assert.Contains(t, errOut, "No list is open")
	assert.Contains(t, errOut, `Unknown list "nowhere"`)
	assert.Contains(t, errOut, "Usage: open submissions <taskId>")
	assert.Contains(t, errOut, `invalid id: task id "5/approve"`)
	assert.Empty(t, b.requests("GET", "/tasks/5/approve/submissions/admins"))
	assert.Contains(t, errOut, "Usage: theme [light|dark]")
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		route    string
		resource string
		taskID   string
		ok       bool
	}{
		{"/users", resWorkers, "", true},
		{"/support", resTickets, "", true},
		{"/tasks/t9/submissions", resSubmissions, "t9", true},
		{"/tasks/a%20b/submissions", resSubmissions, "a b", true},
		{"/tasks/a%2/submissions", "", "", false},
		{"/tasks//submissions", "", "", false},
		{"/tasks/a/b/submissions", "", "", false},
		{"/", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			res, id, ok := parseRoute(tt.route)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.resource, res)
			assert.Equal(t, tt.taskID, id)
			if ok {
				assert.Equal(t, tt.route, routeFor(res, id))
			}
		})
	}
}

func TestExportQuery(t *testing.T) {
	q := exportQuery(listing.Query{Page: 3, PageSize: 25, Search: "jane", Filter: listing.FilterSuspended})
	assert.Equal(t, url.Values{"search": {"jane"}, "status": {"false"}}, q)

	q = exportQuery(listing.Query{Page: 1, PageSize: 10, Filter: listing.FilterAll})
	assert.Empty(t, q)
}
