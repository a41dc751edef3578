package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and store the session locally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.backend.SignIn(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := app.creds.SaveSession(session.Token, session.Email, session.Name); err != nil {
				return err
			}
			fmt.Printf("signed in as %s <%s>\n", session.Name, session.Email)
			return nil
		},
	}
}

func newSignupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <name> <email> <password>",
		Short: "Register a new account and sign in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.backend.SignUp(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.creds.SaveSession(session.Token, session.Email, session.Name); err != nil {
				return err
			}
			fmt.Printf("signed up as %s <%s>\n", session.Name, session.Email)
			return nil
		},
	}
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.creds.Clear(); err != nil {
				return err
			}
			fmt.Println("signed out")
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Change the display name (and optionally the password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := app.backend.UpdateProfile(cmd.Context(), name, password); err != nil {
				return err
			}
			// локальную копию имени обновляем только после успеха на сервере
			if err := app.creds.SetName(name); err != nil {
				return err
			}
			fmt.Printf("profile updated: %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password (unchanged if omitted)")
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, name, err := app.creds.Session()
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", name, email)
			return nil
		},
	}
}
