// Package common defines shared constants and sentinel errors used across
// the client and bridge layers of PaddockPress. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("duplicate key")

	// Remote-call errors. The replication engine keeps these distinct so a
	// transport failure, a bad HTTP status and a malformed body are reported
	// as different user-visible problems.
	ErrorNetwork  = errors.New("network failure")
	ErrorProtocol = errors.New("protocol error")
	ErrorAuth     = errors.New("authentication rejected")

	// ErrorNoData marks a pull that returned no tables. It is informational:
	// local state must be left untouched.
	ErrorNoData = errors.New("remote returned no data")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)
