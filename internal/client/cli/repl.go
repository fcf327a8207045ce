package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status(ctx context.Context) error
	Posts(ctx context.Context) error
	NewPost(ctx context.Context) error
	DeletePost(ctx context.Context, id string) error
	Push(ctx context.Context) error
	Pull(ctx context.Context) error
	Media(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	RemoveFile(ctx context.Context, name string) error
	Health(ctx context.Context) error
	Configure(ctx context.Context) error
	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the PaddockPress shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the replication status (from statusFn) and accepts:
//
//	help             — show available commands
//	status           — replication state and last error
//	posts            — list articles
//	newpost          — create a draft article
//	delpost <id>     — delete an article (asks for confirmation)
//	push             — push all tables now, skipping the debounce
//	pull             — replace the local data set with the remote one
//	media            — list the cached media index
//	upload <path>    — upload a file and refresh the index
//	rmfile <name>    — delete a remote file (asks for confirmation)
//	health           — probe the bridge
//	config           — set bridge endpoints and API key
//	users            — list accounts
//	adduser          — create an account
//	exit | quit      — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("press (%s) > ", statusFn()))
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
			printlnFn("Available commands: status, posts, newpost, delpost <id>, push, pull, media, upload <path>, rmfile <name>, health, config, users, adduser, exit")

		case "status":
			_ = a.Status(ctx)

		case "posts":
			_ = a.Posts(ctx)

		case "newpost":
			_ = a.NewPost(ctx)

		case "delpost":
			if len(args) == 0 {
				printlnFn("Usage: delpost <id>")
				continue
			}
			_ = a.DeletePost(ctx, args[0])

		case "push":
			_ = a.Push(ctx)

		case "pull":
			_ = a.Pull(ctx)

		case "media":
			_ = a.Media(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args[0])

		case "rmfile":
			if len(args) == 0 {
				printlnFn("Usage: rmfile <name>")
				continue
			}
			_ = a.RemoveFile(ctx, args[0])

		case "health":
			_ = a.Health(ctx)

		case "config":
			_ = a.Configure(ctx)

		case "users":
			_ = a.Users(ctx)

		case "adduser":
			_ = a.AddUser(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
