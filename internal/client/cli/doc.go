// Package cli implements the interactive PaddockPress shell: a small REPL
// over the service layer for managing articles, accounts and media, and for
// driving the replication engine by hand (push, pull, status, config).
//
// The REPL itself is dumb on purpose: it parses one command token, dispatches
// to an App method, and ignores handler errors (handlers log their own). All
// destructive commands confirm with the user before acting.
package cli
