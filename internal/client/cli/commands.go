package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// getSimpleText, getPassword and getID are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getID         = GetID
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

// Login prompts for credentials and keeps the access token in the API
// client. The terminal buffer holding the password is wiped before
// returning; the string copy made for the JSON request is not.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, email, password); err != nil {
		a.userName = ""
		return fmt.Errorf("login unsuccessful: %w", err)
	}

	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	list, err := a.api.ListUsers(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.userName = ""
			return fmt.Errorf("session expired, please log in again: %w", err)
		}
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	return tw.Flush()
}

func (a *App) Add(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.CreateUser(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created user %d\n", u.ID)
	return nil
}

// Update replaces name and email of a user. Leaving the password empty keeps
// the current one.
func (a *App) Update(ctx context.Context) error {
	id, err := getID(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter new email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter new password (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.UpdateUser(ctx, id, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated user %d\n", u.ID)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	id, err := getID(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}

	if err := a.api.DeleteUser(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted user %d\n", id)
	return nil
}
