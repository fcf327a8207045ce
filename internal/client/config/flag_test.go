package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-d", "/tmp/press.db", "-b", "10"}, expectPanic: false,
			expected: &Config{LocalDSN: "/tmp/press.db", Debounce: 10 * time.Second}},
		{name: "Test2 reconcile off", args: []string{"cmd", "-r=false"}, expectPanic: false,
			expected: &Config{Debounce: 0, ReconcileOnStart: false}},
		{name: "Test3 incorrect debounce", args: []string{"cmd", "-d", "/tmp/press.db", "-b", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
