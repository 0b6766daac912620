package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/client/output"
	"github.com/dmitrijs2005/hustleadmin/internal/client/services"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

var (
	errUsage       = errors.New("usage")
	errNoView      = errors.New("no list is open")
	errUnsupported = errors.New("not supported by this list")
)

func (a *App) usage(text string) error {
	a.printer.Error("Usage: %s", text)
	return errUsage
}

// activeView returns the open list or tells the user how to open one.
func (a *App) activeView() (view, error) {
	if a.current != nil {
		return a.current, nil
	}
	if err := a.requireLogin(common.DefaultRoute); err != nil {
		return nil, err
	}
	a.printer.Error("No list is open. Type \"open <list>\" first")
	return nil, errNoView
}

// render prints the open list.
func (a *App) render() error {
	v := a.current
	a.printer.Header(strings.ToUpper(v.Name()[:1]) + v.Name()[1:])
	if err := v.Render(a.printer.Out()); err != nil {
		a.log.Error(context.Background(), "error rendering list", "list", v.Name(), "error", err)
		return err
	}
	return nil
}

// report shows a failed record operation: validation problems as plain
// errors, everything else as an error notification.
func (a *App) report(err error, fallback string) {
	if errors.Is(err, common.ErrorValidation) {
		a.printer.Error("%s", err)
		return
	}
	if api.IsUnavailable(err) {
		a.notifier.Error("Server unavailable, check the API address and your connection")
		return
	}
	a.notifier.Error(api.Message(err, fallback))
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage("open <workers|employers|tasks|submissions <taskId>|withdrawals|kyc|tickets>")
	}

	resource, taskID := args[0], ""
	if resource == resSubmissions {
		if len(args) < 2 {
			return a.usage("open submissions <taskId>")
		}
		taskID = args[1]
	} else if _, ok := resourceRoutes[resource]; !ok {
		a.printer.Error("Unknown list %q", resource)
		return errUsage
	}

	if err := a.requireLogin(routeFor(resource, taskID)); err != nil {
		return err
	}
	if err := a.openView(ctx, resource, taskID); err != nil {
		a.printer.Error("%s", err)
		return err
	}
	if resource == resWorkers {
		a.workerSummary(ctx)
	}
	return a.render()
}

// workerSummary prints the active/suspended counts; a failure is only logged.
func (a *App) workerSummary(ctx context.Context) {
	stats, err := a.workers.Stats(ctx)
	if err != nil {
		a.log.Warn(ctx, "error loading worker stats", "error", err)
		return
	}
	a.printer.Info("Active workers: %d | Suspended: %d", stats.ActiveUsers, stats.SuspendedUsers)
}

func (a *App) Page(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.usage("page <n>")
	}
	if err := v.SetPage(n); err != nil {
		a.printer.Error("%s", err)
		return err
	}
	return a.render()
}

func (a *App) Next(ctx context.Context) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if !v.NextPage() {
		a.printer.Info("Already on the last page")
		return nil
	}
	return a.render()
}

func (a *App) Prev(ctx context.Context) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if !v.PrevPage() {
		a.printer.Info("Already on the first page")
		return nil
	}
	return a.render()
}

// Search sets the search text; without arguments it clears it.
func (a *App) Search(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	v.SetSearch(strings.Join(args, " "))
	return a.render()
}

func (a *App) Filter(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("filter <all|active|suspended>")
	}
	if err := v.SetFilter(listing.Filter(args[0])); err != nil {
		a.printer.Error("%s", err)
		return err
	}
	return a.render()
}

func (a *App) Size(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("size <10|25|50>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.usage("size <10|25|50>")
	}
	if err := v.SetPageSize(n); err != nil {
		a.printer.Error("%s", err)
		return err
	}
	return a.render()
}

func (a *App) Refresh(ctx context.Context) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	v.Refetch()
	return a.render()
}

func (a *App) Show(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("show <id>")
	}
	show := v.Actions().show
	if show == nil {
		a.printer.Error("show is not supported for %s", v.Name())
		return errUnsupported
	}

	fields, err := show(ctx, args[0])
	if err != nil {
		a.report(err, "Failed to load record")
		return err
	}
	a.printer.Header("Record " + args[0])
	return output.RenderFields(a.printer.Out(), fields)
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("toggle <id>")
	}
	toggle := v.Actions().toggle
	if toggle == nil {
		a.printer.Error("toggle is not supported for %s", v.Name())
		return errUnsupported
	}

	msg, err := toggle(ctx, args[0])
	if err != nil {
		a.report(err, "Failed to update status")
		return err
	}
	a.notifier.Success(msg)
	return a.refresh(v)
}

func (a *App) Approve(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return a.usage("approve <id>")
	}
	approve := v.Actions().approve
	if approve == nil {
		a.printer.Error("approve is not supported for %s", v.Name())
		return errUnsupported
	}

	if err := approve(ctx, args[0]); err != nil {
		a.report(err, "Failed to approve")
		return err
	}
	a.notifier.Success("Approved successfully")
	return a.refresh(v)
}

func (a *App) Reject(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return a.usage("reject <id> <reason>")
	}
	reject := v.Actions().reject
	if reject == nil {
		a.printer.Error("reject is not supported for %s", v.Name())
		return errUnsupported
	}

	if err := reject(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		a.report(err, "Failed to reject")
		return err
	}
	a.notifier.Success("Rejected successfully")
	return a.refresh(v)
}

// Reply sends a ticket reply. Without text on the command line the reply is
// read as multiple lines.
func (a *App) Reply(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) < 1 {
		return a.usage("reply <id> [text]")
	}
	reply := v.Actions().reply
	if reply == nil {
		a.printer.Error("reply is not supported for %s", v.Name())
		return errUnsupported
	}

	text := strings.Join(args[1:], " ")
	if text == "" {
		text, err = GetMultiline(a.reader, "-Enter reply", a.out)
		if err != nil {
			return err
		}
	}

	if err := reply(ctx, args[0], text); err != nil {
		a.report(err, "Failed to send reply")
		return err
	}
	a.notifier.Success("Reply sent")
	return a.refresh(v)
}

func (a *App) Status(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return a.usage("status <id> <status>")
	}
	status := v.Actions().status
	if status == nil {
		a.printer.Error("status is not supported for %s", v.Name())
		return errUnsupported
	}

	if err := status(ctx, args[0], args[1]); err != nil {
		a.report(err, "Failed to update status")
		return err
	}
	a.notifier.Success("Status updated")
	return a.refresh(v)
}

func (a *App) refresh(v view) error {
	v.Refetch()
	return a.render()
}

// Export downloads the open list as CSV, honouring its search and filter.
func (a *App) Export(ctx context.Context, args []string) error {
	v, err := a.activeView()
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return a.usage("export [file]")
	}

	spec := v.ExportSpec()
	filename := spec.Filename
	if len(args) == 1 {
		filename = args[0]
	}

	res := a.exporter.CSV(ctx, spec.Endpoint, spec.Columns, filename, exportQuery(v.Query()))
	if !res.Success {
		a.report(res.Err, "Export failed")
		return res.Err
	}
	a.notifier.Success(fmt.Sprintf("Exported %d bytes to %s", res.Bytes, res.Path))
	return nil
}

func exportQuery(q listing.Query) url.Values {
	extra := url.Values{}
	if q.Search != "" {
		extra.Set("search", q.Search)
	}
	if st := listing.StatusParam(q.Filter); st != nil {
		extra.Set("status", strconv.FormatBool(*st))
	}
	return extra
}

func (a *App) Dashboard(ctx context.Context) error {
	if err := a.requireLogin(common.DefaultRoute); err != nil {
		return err
	}

	d, err := a.dashboard.Load(ctx)
	if err != nil {
		a.report(err, "Failed to load dashboard")
		return err
	}

	a.printer.Header("Dashboard")
	if err := output.RenderFields(a.printer.Out(), [][2]string{
		{"Total users", strconv.Itoa(d.Stats.TotalUsers)},
		{"Total tasks", strconv.Itoa(d.Stats.TotalTasks)},
		{"Pending approvals", strconv.Itoa(d.Stats.PendingApprovals)},
		{"Total earnings", models.Money(d.Stats.TotalEarnings)},
	}); err != nil {
		return err
	}

	a.printer.Header("Recent activity")
	return output.RenderRows(a.printer.Out(), d.Activity, "No recent activity")
}

// Theme shows the stored theme or switches it.
func (a *App) Theme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		theme, err := a.prefs.Theme(ctx)
		if err != nil {
			a.log.Warn(ctx, "error reading theme", "error", err)
		}
		a.printer.Info("Theme: %s", theme)
		return nil
	}

	theme, err := services.ParseTheme(args[0])
	if err != nil {
		return a.usage("theme [light|dark]")
	}
	if err := a.prefs.SetTheme(ctx, theme); err != nil {
		a.log.Error(ctx, "error saving theme", "error", err)
		a.notifier.Error("Failed to save theme")
		return err
	}
	a.printer.SetTheme(string(theme))
	a.printer.Success("Theme set to %s", theme)
	return nil
}
