package config

import (
	"flag"
	"os"
	"time"

	"github.com/pitwall/paddockpress/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the local SQLite database (default from Config)
//	-b int      push debounce window in seconds (default from Config)
//	-r bool     reconcile the media index on startup (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.LocalDSN, "d", cfg.LocalDSN, "path of the local database file")
	debounce := fs.Int("b", int(cfg.Debounce.Seconds()), "push debounce window (in seconds)")
	fs.BoolVar(&cfg.ReconcileOnStart, "r", cfg.ReconcileOnStart, "reconcile media index on startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Debounce = time.Duration(*debounce) * time.Second
}
