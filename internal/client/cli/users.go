package cli

import (
	"context"
	"fmt"
	"os"
)

// Users lists the CMS accounts.
func (a *App) Users(ctx context.Context) error {
	users, err := a.users.List(ctx)
	if err != nil {
		a.logger.Error(ctx, "listing users", "error", err)
		return err
	}
	if len(users) == 0 {
		fmt.Println("No accounts.")
		return nil
	}
	for _, u := range users {
		fmt.Printf("%s  %-12s  %s (%s)\n", u.ID, u.Login, u.DisplayName, u.Role)
	}
	return nil
}

// AddUser interactively creates an account. The password is read without echo.
func (a *App) AddUser(ctx context.Context) error {
	login, err := GetSimpleText(a.reader, "Login", os.Stdout)
	if err != nil {
		return err
	}
	displayName, err := GetSimpleText(a.reader, "Display name", os.Stdout)
	if err != nil {
		return err
	}
	role, err := GetSimpleText(a.reader, "Role (admin/editor)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetSecret("Password", os.Stdout)
	if err != nil {
		return err
	}

	u, err := a.users.Create(ctx, login, displayName, role, string(password))
	if err != nil {
		a.logger.Error(ctx, "creating user", "error", err)
		return err
	}
	fmt.Printf("Created account %s\n", u.ID)
	return nil
}
