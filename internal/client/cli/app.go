package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/config"
	"github.com/dmitrijs2005/hustleadmin/internal/client/export"
	"github.com/dmitrijs2005/hustleadmin/internal/client/notify"
	"github.com/dmitrijs2005/hustleadmin/internal/client/output"
	"github.com/dmitrijs2005/hustleadmin/internal/client/services"
	"github.com/dmitrijs2005/hustleadmin/internal/client/session"
	"github.com/dmitrijs2005/hustleadmin/internal/client/storage"
	"github.com/dmitrijs2005/hustleadmin/internal/logging"
)

// App is the interactive admin console.
type App struct {
	cfg      *config.Config
	log      logging.Logger
	db       *sql.DB
	prefs    *services.Preferences
	session  *session.Manager
	notifier *notify.Dispatcher
	printer  *output.Printer
	exporter *export.Exporter

	workers     services.WorkerService
	employers   services.EmployerService
	tasks       services.TaskService
	submissions services.SubmissionService
	withdrawals services.WithdrawalService
	kyc         services.KYCService
	tickets     services.TicketService
	dashboard   services.DashboardService

	reader *bufio.Reader
	out    io.Writer

	current    view
	cancelView context.CancelFunc

	// credentials of the login waiting for its code
	pendingEmail    string
	pendingPassword string
}

// NewApp wires the console: the local store, the API client and the
// services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	useColors := out == os.Stdout && output.ColorsEnabled()

	var mu sync.Mutex
	out = &syncWriter{mu: &mu, w: out}
	errOut = &syncWriter{mu: &mu, w: errOut}

	log, err := logging.New(cfg.LogBackend, cfg.LogLevel, errOut)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := storage.InitDatabase(ctx, cfg.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.StorePath, "error", err)
		return nil, err
	}

	prefs := services.NewPreferences(db)

	apiClient, err := api.New(cfg.APIBaseURL, prefs, api.WithLogger(log.With("component", "api")))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		prefs:       prefs,
		session:     session.NewManager(apiClient, prefs, session.WithLogger(log.With("component", "session"))),
		notifier:    notify.NewDispatcher(cfg.NotificationTTL),
		printer:     output.NewPrinter(out, errOut, useColors),
		exporter:    export.New(apiClient, cfg.ExportDir, log.With("component", "export")),
		workers:     services.NewWorkerService(apiClient),
		employers:   services.NewEmployerService(apiClient),
		tasks:       services.NewTaskService(apiClient),
		submissions: services.NewSubmissionService(apiClient),
		withdrawals: services.NewWithdrawalService(apiClient),
		kyc:         services.NewKYCService(apiClient),
		tickets:     services.NewTicketService(apiClient),
		dashboard:   services.NewDashboardService(apiClient),
		reader:      bufio.NewReader(in),
		out:         out,
	}, nil
}

// Run restores the previous session and serves commands until the input
// ends or the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	unsubscribe := a.notifier.Subscribe(a.printer.Notification)
	defer unsubscribe()

	if stored, err := a.prefs.Load(ctx); err != nil {
		a.log.Warn(ctx, "error reading preferences", "error", err)
	} else {
		a.printer.SetTheme(string(stored.Theme))
	}

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "error restoring session", "error", err)
	}

	a.printer.Header("Daily Hustle admin console")
	if a.isLoggedIn() {
		a.printer.Info("Signed in as %s", a.session.Session().Identity.Email)
	} else {
		a.printer.Info("Type \"login\" to sign in or \"help\" for the list of commands")
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close() {
	a.closeView()
	a.notifier.Close()
	if err := a.db.Close(); err != nil {
		a.log.Error(context.Background(), "error closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

// status is the REPL prompt: the signed-in email and the open list.
func (a *App) status() string {
	switch a.session.State() {
	case session.StateOTPPending:
		return "(awaiting code)"
	case session.StateAuthenticated:
	default:
		return "(signed out)"
	}

	s := a.session.Session().Identity.Email
	if a.current != nil {
		q := a.current.Query()
		s += fmt.Sprintf(" %s p%d", a.current.Name(), q.Page)
	}
	return s
}

// openView replaces the current list with v.
func (a *App) openView(ctx context.Context, resource, taskID string) error {
	a.closeView()

	vctx, cancel := context.WithCancel(ctx)
	v, err := a.newView(vctx, resource, taskID)
	if err != nil {
		cancel()
		return err
	}
	a.current = v
	a.cancelView = cancel
	return nil
}

// closeView cancels the fetches of the current list and waits for them.
func (a *App) closeView() {
	if a.current == nil {
		return
	}
	a.cancelView()
	a.current.Wait()
	a.current = nil
	a.cancelView = nil
}

// syncWriter serialises writes from the REPL and from fetch callbacks.
type syncWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
