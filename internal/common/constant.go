package common

// KeyHeaderName is the HTTP header carrying the shared API key on file
// endpoint uploads, where the body is multipart and cannot hold it.
const KeyHeaderName = "X-Api-Key"

// TrackedTables lists every local table mirrored to the remote relational
// store. Push serializes all of them; pull only ever replaces names that
// appear here.
var TrackedTables = []string{
	"users",
	"posts",
	"teams",
	"drivers",
	"races",
	"results",
	"bets",
	"settings",
	"media",
}

// IsTrackedTable reports whether name is one of the replicated tables.
func IsTrackedTable(name string) bool {
	for _, t := range TrackedTables {
		if t == name {
			return true
		}
	}
	return false
}
