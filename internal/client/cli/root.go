package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Apple(ctx context.Context) error
	Save(ctx context.Context) error
	List(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) error
	History(ctx context.Context, page int) error
	Insights(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the journaling CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Guest:
//	  - help              — show available commands
//	  - register          — create an account
//	  - login             — authenticate
//	  - apple             — sign in with Apple
//	  - save              — save a guest entry (capped per device)
//	  - list              — list guest entries
//	  - edit <id>         — edit a guest entry
//	  - delete <id>       — delete a guest entry
//	  - exit | quit       — leave the program
//
//	Signed in:
//	  - help              — show available commands
//	  - save              — save an entry to the account
//	  - dashboard         — recent entries and streak
//	  - history [page]    — paginated history
//	  - insights          — mood insights
//	  - search <text>     — search entries
//	  - logout            — log out
//	  - exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("daiyly %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: save, dashboard, history [page], insights, search <text>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, apple, save, list, edit <id>, delete <id>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "apple":
			_ = a.Apple(ctx)

		case "save":
			_ = a.Save(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.Edit(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "history":
			page := 1
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					printlnFn("Usage: history [page]")
					continue
				}
				page = n
			}
			_ = a.History(ctx, page)

		case "insights":
			_ = a.Insights(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.Search(ctx, strings.Join(args, " "))

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	} else {
		s = "guest "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	return fmt.Sprintf("(%s)", strings.TrimSpace(s))
}

// Root runs the REPL against stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Daiyly CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
