package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. Any guest entries saved on this device start migrating in
// the background right after.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.auth.Register(ctx, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.userEmail = s.Email
	fmt.Println("Welcome,", s.Email)
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the guest-entry migration starts in the background.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userEmail = s.Email
	fmt.Println("Welcome back,", s.Email)
	return nil
}

// Apple signs in with an Apple identity token pasted by the user.
func (a *App) Apple(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Paste Apple identity token", os.Stdout)
	if err != nil {
		return err
	}

	s, err := a.auth.AppleSignIn(ctx, token)
	if err != nil {
		log.Printf("Apple sign-in unsuccessful: %s", err.Error())
		return err
	}

	a.userEmail = s.Email
	fmt.Println("Welcome,", s.Email)
	return nil
}

// Logout drops the stored credentials and returns to the guest state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		log.Printf("Logout failed: %s", err.Error())
		return err
	}
	a.userEmail = ""
	fmt.Println("Logged out")
	return nil
}
