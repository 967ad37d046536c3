package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/movieapi/internal/client/client"
	"github.com/dmitrijs2005/movieapi/internal/common"
)

// getSimpleText and getPassword are indirections swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name (at least 5 letters or digits)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	birthday, err := getSimpleText(a.reader, "Enter birthday YYYY-MM-DD (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.api.Register(ctx, client.RegisterRequest{
		UserName: userName,
		Password: string(password),
		Email:    email,
		Birthday: strings.TrimSpace(birthday),
	})
	a.noteAvailability(err)
	if err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Success! You can now log in.")
	return nil
}

// Login prompts for credentials and stores the returned token.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Login(ctx, userName, password)
	a.noteAvailability(err)
	if err != nil {
		fmt.Fprintln(a.out, "Login unsuccessful:", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", u.UserName)
	return nil
}

// WhoAmI prints the logged-in user's profile as the server sees it.
func (a *App) WhoAmI(ctx context.Context) error {
	cur, ok := a.api.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	u, err := a.api.GetUser(ctx, cur.UserName)
	a.noteAvailability(err)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>", u.UserName, u.Email)
	if u.Birthday != "" {
		fmt.Fprintf(a.out, " born %s", u.Birthday)
	}
	fmt.Fprintf(a.out, ", %d favorite movie(s)\n", len(u.FavoriteMovies))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
