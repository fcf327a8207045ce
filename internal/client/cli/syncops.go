package cli

import (
	"context"
	"fmt"
	"os"
)

// Status prints the replication state and, if any, the last error.
func (a *App) Status(ctx context.Context) error {
	fmt.Printf("Replication: %s\n", a.engine.State())
	if err := a.engine.LastError(); err != nil {
		fmt.Printf("Last error: %s\n", err)
	}
	if !a.bridge.Configured() {
		fmt.Println("No bridge configured; working locally. Use 'config' to set one up.")
	}
	return nil
}

// Push sends all tables immediately, skipping the debounce window.
func (a *App) Push(ctx context.Context) error {
	if err := a.engine.PushNow(ctx, func(msg string) { fmt.Println(msg) }); err != nil {
		a.logger.Error(ctx, "push failed", "error", err)
		return err
	}
	fmt.Println("Pushed.")
	return nil
}

// Pull replaces the whole local data set with the remote one, after
// confirmation: local rows missing remotely are gone afterwards.
func (a *App) Pull(ctx context.Context) error {
	if !GetConfirm(a.reader, "Replace ALL local data with the remote copy?", os.Stdout) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := a.engine.Pull(ctx); err != nil {
		a.logger.Error(ctx, "pull failed", "error", err)
		return err
	}
	fmt.Println("Pulled.")
	return nil
}

// Health probes the relational endpoint.
func (a *App) Health(ctx context.Context) error {
	if err := a.bridge.Health(ctx); err != nil {
		fmt.Printf("Bridge unhealthy: %s\n", err)
		return err
	}
	fmt.Println("Bridge healthy, database connected.")
	return nil
}
