package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hustleadmin/internal/client/services"
	"github.com/dmitrijs2005/hustleadmin/internal/client/session"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

const codePrompt = "-Enter the 6-digit verification code (\"resend\" for a new one, empty line to cancel)"

// Login asks for the credentials and then for the verification code.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printer.Info("Already signed in as %s", a.session.Session().Identity.Email)
		return nil
	}

	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		a.log.Error(ctx, "error reading email", "error", err)
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		a.log.Error(ctx, "error reading password", "error", err)
		return err
	}
	defer wipe(password)

	res, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.notifier.Error(res.Message)
		return err
	}
	a.notifier.Success(res.Message)

	a.pendingEmail = email
	a.pendingPassword = string(password)
	return a.verify(ctx)
}

// Resend requests a new code for the pending login and asks for it again.
func (a *App) Resend(ctx context.Context) error {
	if err := a.resend(ctx); err != nil {
		return err
	}
	return a.verify(ctx)
}

func (a *App) resend(ctx context.Context) error {
	if a.session.State() != session.StateOTPPending {
		a.printer.Error("No login is waiting for a code. Type \"login\" first")
		return session.ErrNoPendingLogin
	}
	res, err := a.session.ResendCode(ctx, a.pendingEmail, a.pendingPassword)
	if err != nil {
		a.notifier.Error(res.Message)
		return err
	}
	a.notifier.Success(res.Message)
	return nil
}

// verify reads codes until one is accepted, the user cancels or the input
// ends. A rejected code may be retried.
func (a *App) verify(ctx context.Context) error {
	for {
		code, err := GetSimpleText(a.reader, codePrompt, a.out)
		if err != nil {
			return err
		}

		switch code {
		case "":
			a.session.CancelLogin()
			a.clearPending()
			a.printer.Info("Login cancelled")
			return nil
		case "resend":
			_ = a.resend(ctx)
			continue
		}

		res, err := a.session.ValidateLogin(ctx, a.pendingEmail, a.pendingPassword, code)
		if err != nil {
			a.notifier.Error(res.Message)
			if errors.Is(err, session.ErrNoPendingLogin) {
				a.clearPending()
				return err
			}
			continue
		}

		a.clearPending()
		a.notifier.Success(res.Message)
		return a.navigate(ctx, res.RedirectTo)
	}
}

func (a *App) clearPending() {
	a.pendingEmail = ""
	a.pendingPassword = ""
}

// navigate shows route: the dashboard for the default route, the matching
// list otherwise.
func (a *App) navigate(ctx context.Context, route string) error {
	resource, taskID, ok := parseRoute(route)
	if route == common.DefaultRoute || !ok {
		return a.Dashboard(ctx)
	}
	if err := a.openView(ctx, resource, taskID); err != nil {
		a.printer.Error("%s", err)
		return err
	}
	return a.render()
}

// Logout signs out and closes the open list.
func (a *App) Logout(ctx context.Context) error {
	a.closeView()
	a.clearPending()
	a.session.Logout(ctx)
	a.printer.Success("Logged out")
	return nil
}

// Reset signs out and forgets everything stored locally, the theme included.
func (a *App) Reset(ctx context.Context) error {
	a.closeView()
	a.clearPending()
	a.session.Logout(ctx)
	if err := a.prefs.Reset(ctx); err != nil {
		a.log.Error(ctx, "error clearing local store", "error", err)
		a.notifier.Error("Failed to clear local data")
		return err
	}
	a.printer.SetTheme(string(services.ThemeLight))
	a.printer.Success("Local data cleared")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Session()
	if !s.Authenticated {
		a.printer.Info("Not signed in")
		return nil
	}
	a.printer.Info("Signed in as %s", a.printer.Bold(s.Identity.Email))
	return nil
}

// requireLogin reports whether route may be shown and tells the user to sign
// in when it may not. The route is shown right after the next login.
func (a *App) requireLogin(route string) error {
	if a.session.Guard(route) {
		return nil
	}
	a.printer.Error("Please log in first")
	return common.ErrorUnauthorized
}
