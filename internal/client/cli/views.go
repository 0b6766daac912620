package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/client/notify"
	"github.com/dmitrijs2005/hustleadmin/internal/client/output"
	"github.com/dmitrijs2005/hustleadmin/internal/client/services"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

// Resources that can be opened as lists.
const (
	resWorkers     = "workers"
	resEmployers   = "employers"
	resTasks       = "tasks"
	resSubmissions = "submissions"
	resWithdrawals = "withdrawals"
	resKYC         = "kyc"
	resTickets     = "tickets"
)

var resourceRoutes = map[string]string{
	resWorkers:     "/users",
	resEmployers:   "/advertisers",
	resTasks:       "/tasks",
	resWithdrawals: "/withdrawals",
	resKYC:         "/kyc",
	resTickets:     "/support",
}

// routeFor returns the console route of a list; submissions are nested
// under their task.
func routeFor(resource, taskID string) string {
	if resource == resSubmissions {
		return "/tasks/" + url.PathEscape(taskID) + "/submissions"
	}
	return resourceRoutes[resource]
}

// parseRoute is the inverse of routeFor.
func parseRoute(route string) (resource, taskID string, ok bool) {
	for res, r := range resourceRoutes {
		if r == route {
			return res, "", true
		}
	}
	rest, found := strings.CutPrefix(route, "/tasks/")
	if !found {
		return "", "", false
	}
	escaped, found := strings.CutSuffix(rest, "/submissions")
	if !found || escaped == "" || strings.Contains(escaped, "/") {
		return "", "", false
	}
	id, err := url.PathUnescape(escaped)
	if err != nil {
		return "", "", false
	}
	return resSubmissions, id, true
}

// actions are the record operations a list supports; nil means unsupported.
type actions struct {
	show    func(ctx context.Context, id string) ([][2]string, error)
	toggle  func(ctx context.Context, id string) (string, error)
	approve func(ctx context.Context, id string) error
	reject  func(ctx context.Context, id, reason string) error
	reply   func(ctx context.Context, id, text string) error
	status  func(ctx context.Context, id, status string) error
}

// view is an open list bound to a listing.Controller.
type view interface {
	Name() string
	Route() string
	SetPage(n int) error
	NextPage() bool
	PrevPage() bool
	SetSearch(s string)
	SetFilter(f listing.Filter) error
	SetPageSize(n int) error
	Refetch() uint64
	Wait()
	Query() listing.Query
	TotalPages() int
	Render(w io.Writer) error
	ExportSpec() services.ExportSpec
	Actions() actions
}

type listView[T models.Row] struct {
	*listing.Controller[T]

	name  string
	route string
	empty string
	spec  services.ExportSpec
	acts  actions
}

func (v *listView[T]) Name() string                    { return v.name }
func (v *listView[T]) Route() string                   { return v.route }
func (v *listView[T]) ExportSpec() services.ExportSpec { return v.spec }
func (v *listView[T]) Actions() actions                { return v.acts }

// Render waits for in-flight fetches and prints the rows with a paging footer.
func (v *listView[T]) Render(w io.Writer) error {
	v.Wait()
	snap := v.Snapshot()

	if err := output.RenderRows(w, snap.Rows, v.empty); err != nil {
		return err
	}

	q := snap.Query
	footer := fmt.Sprintf("Page %d of %d | size %d | filter %s", q.Page, snap.TotalPages, q.PageSize, q.Filter)
	if q.Search != "" {
		footer += fmt.Sprintf(" | search %q", q.Search)
	}
	_, err := fmt.Fprintln(w, footer)
	return err
}

// fetchReporter turns failed fetches into error notifications. Fetches
// cancelled because the list was closed are not reported.
func fetchReporter[T any](n notify.Notifier) func(listing.Settlement[T]) {
	return func(s listing.Settlement[T]) {
		if s.Applied && s.Err != nil && !errors.Is(s.Err, context.Canceled) {
			n.Error(api.Message(s.Err, "Failed to fetch data"))
		}
	}
}

func newListView[T models.Row](ctx context.Context, a *App, name, route, empty string, fetch listing.FetchFunc[T],
	spec services.ExportSpec, acts actions, extra ...listing.Option[T]) *listView[T] {
	opts := []listing.Option[T]{
		listing.WithLogger[T](a.log.With("list", name)),
		listing.WithPageSize[T](a.cfg.DefaultPageSize),
		listing.WithOnSettle[T](fetchReporter[T](a.notifier)),
	}
	opts = append(opts, extra...)
	opts = append(opts, listing.WithInitialFetch[T]())

	return &listView[T]{
		Controller: listing.New[T](ctx, fetch, opts...),
		name:       name,
		route:      route,
		empty:      empty,
		spec:       spec,
		acts:       acts,
	}
}

// newView builds the list of resource and issues its first fetch.
func (a *App) newView(ctx context.Context, resource, taskID string) (view, error) {
	route := routeFor(resource, taskID)

	switch resource {
	case resWorkers:
		return newListView(ctx, a, resource, route, "No workers found", a.workers.List, services.WorkersExport, actions{
			show: func(ctx context.Context, id string) ([][2]string, error) {
				w, err := a.workers.Get(ctx, id)
				return workerFields(w), err
			},
			toggle: func(ctx context.Context, id string) (string, error) {
				active, err := a.workers.ToggleStatus(ctx, id)
				return "Worker " + activatedLabel(active), err
			},
		}), nil

	case resEmployers:
		return newListView(ctx, a, resource, route, "No employers found", a.employers.List, services.EmployersExport, actions{
			show: func(ctx context.Context, id string) ([][2]string, error) {
				e, err := a.employers.Get(ctx, id)
				return employerFields(e), err
			},
			toggle: func(ctx context.Context, id string) (string, error) {
				active, err := a.employers.ToggleStatus(ctx, id)
				return "Employer " + activatedLabel(active), err
			},
		}), nil

	case resTasks:
		return newListView(ctx, a, resource, route, "No tasks found", a.tasks.List, services.TasksExport, actions{
			show: func(ctx context.Context, id string) ([][2]string, error) {
				t, err := a.tasks.Get(ctx, id)
				return taskFields(t), err
			},
			status: a.tasks.SetStatus,
		}), nil

	case resSubmissions:
		if err := services.ValidateID("task", taskID); err != nil {
			return nil, err
		}
		return newListView(ctx, a, resource, route, "No submissions found", a.submissions.List,
			services.SubmissionsExport(taskID), actions{
				show: func(ctx context.Context, id string) ([][2]string, error) {
					s, err := a.submissions.Get(ctx, id)
					return submissionFields(s), err
				},
				approve: a.submissions.Approve,
				reject:  a.submissions.Reject,
			}, listing.WithDependency[models.Submission](services.TaskIDKey, taskID)), nil

	case resWithdrawals:
		return newListView(ctx, a, resource, route, "No withdrawals found", a.withdrawals.List, services.WithdrawalsExport, actions{
			approve: a.withdrawals.Approve,
			reject:  a.withdrawals.Reject,
		}), nil

	case resKYC:
		return newListView(ctx, a, resource, route, "No KYC submissions found", a.kyc.List, services.KYCExport, actions{
			approve: a.kyc.Approve,
			reject:  a.kyc.Reject,
		}), nil

	case resTickets:
		return newListView(ctx, a, resource, route, "No tickets found", a.tickets.List, services.TicketsExport, actions{
			show: func(ctx context.Context, id string) ([][2]string, error) {
				t, err := a.tickets.Get(ctx, id)
				return ticketFields(t), err
			},
			reply:  a.tickets.Reply,
			status: a.tickets.SetStatus,
		}), nil
	}

	return nil, fmt.Errorf("%w: unknown list %q", common.ErrorValidation, resource)
}

func activatedLabel(active bool) string {
	if active {
		return "activated"
	}
	return "suspended"
}

func workerFields(w models.Worker) [][2]string {
	return [][2]string{
		{"ID", w.ID},
		{"Name", w.FullName()},
		{"Username", w.Username},
		{"Email", w.Email},
		{"Phone", w.Phone},
		{"Country", w.Country},
		{"Status", models.ActiveLabel(w.Status)},
		{"Approved tasks", fmt.Sprint(w.ApprovedTasksCount)},
		{"Earnings", models.Money(w.TotalEarnings)},
		{"Referral code", w.ReferralCode},
		{"Joined", w.Date},
	}
}

func employerFields(e models.Employer) [][2]string {
	return [][2]string{
		{"ID", e.ID},
		{"Name", e.DisplayName()},
		{"Username", e.Username},
		{"Email", e.Email},
		{"Phone", e.Phone},
		{"Country", e.Country},
		{"Status", models.ActiveLabel(e.Status)},
		{"Campaigns", fmt.Sprint(e.Campaigns)},
		{"Spent", models.Money(e.TotalSpent)},
		{"Joined", e.Date},
	}
}

func taskFields(t models.Task) [][2]string {
	return [][2]string{
		{"ID", t.ID},
		{"Title", t.Title},
		{"Employer", t.Advertiser},
		{"Description", t.Description},
		{"Requirements", t.Requirements},
		{"Status", t.Status},
		{"Reward", models.Money(t.Reward)},
		{"Submissions", fmt.Sprint(t.Submissions)},
		{"Created", t.CreatedAt},
	}
}

func submissionFields(s models.Submission) [][2]string {
	return [][2]string{
		{"ID", s.ID},
		{"Task", s.TaskTitle},
		{"Worker", s.User},
		{"Email", s.Email},
		{"Status", s.Status},
		{"Proof", s.ProofText},
		{"Proof image", s.ProofImage},
		{"Rejection reason", s.RejectionReason},
		{"Submitted", s.SubmittedAt},
	}
}

func ticketFields(t models.Ticket) [][2]string {
	fields := [][2]string{
		{"ID", t.ID},
		{"Subject", t.Subject},
		{"User", t.User},
		{"Priority", t.Priority},
		{"Status", t.Status},
		{"Opened", t.CreatedAt},
	}
	for _, m := range t.Messages {
		fields = append(fields, [2]string{m.Sender, m.Message})
	}
	return fields
}
