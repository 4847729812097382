package repl

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/csvdb/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Credentials prompts for a user name and password. It is called by the
// interpreter for the login command.
func (a *App) Credentials(ctx context.Context) (string, []byte, error) {
	name, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return name, password, nil
}

// Register prompts for a name and password and creates the account.
// An existing name is reported to the user rather than returned.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) == 0 {
		return errors.New("password must not be empty")
	}

	err = a.accounts.CreateUser(ctx, name, password)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "User '%s' registered. Use 'login' to sign in.\n", name)
		return nil
	case errors.Is(err, common.ErrAlreadyExists):
		fmt.Fprintf(a.out, "User '%s' already exists\n", name)
		return nil
	default:
		return err
	}
}

// Logout ends the interpreter session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	user := a.interp.UserName()
	a.interp.Logout()
	a.logger.Info(ctx, "user logged out", "user", user)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
