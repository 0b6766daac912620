package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Resend(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Size(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Dashboard(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: login, resend, theme [light|dark], reset, help, exit"
	helpLoggedIn  = "Available commands: open <workers|employers|tasks|submissions <taskId>|withdrawals|kyc|tickets>, " +
		"page <n>, next, prev, search [text], filter <all|active|suspended>, size <10|25|50>, refresh, " +
		"show <id>, toggle <id>, approve <id>, reject <id> <reason>, reply <id> [text], status <id> <status>, " +
		"export [file], dashboard, theme [light|dark], whoami, logout, reset, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF, on a read error or when the user types "exit" or
// "quit". Handlers report their own failures, so returned errors are ignored.
//
// Commands other than help, login, resend and exit are passed through even
// when logged out: the handlers guard themselves and remember the requested
// list as the destination after login.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("hustle %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "open":
			_ = a.Open(ctx, args)

		case "page":
			_ = a.Page(ctx, args)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "search":
			_ = a.Search(ctx, args)

		case "filter":
			_ = a.Filter(ctx, args)

		case "size":
			_ = a.Size(ctx, args)

		case "refresh":
			_ = a.Refresh(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "toggle":
			_ = a.Toggle(ctx, args)

		case "approve":
			_ = a.Approve(ctx, args)

		case "reject":
			_ = a.Reject(ctx, args)

		case "reply":
			_ = a.Reply(ctx, args)

		case "status":
			_ = a.Status(ctx, args)

		case "export":
			_ = a.Export(ctx, args)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "theme":
			_ = a.Theme(ctx, args)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
