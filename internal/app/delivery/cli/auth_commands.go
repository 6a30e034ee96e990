package cli

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"github.com/spf13/cobra"
)

func loginCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Long: `Log in to the intake service. Missing values are asked for.

Examples:
  intakectl login
  intakectl login --email doctor@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if err := app.loginInteractive(cmd.Context(), email, password); err != nil {
				return err
			}
			return runOverview(app, cmd)
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	return cmd
}

// loginInteractive logs in and, on failure, points at the matching way out:
// a wrong password offers a reset, an unknown email offers signing up.
func (a *App) loginInteractive(ctx context.Context, email, password string) error {
	email, err := a.promptIfEmpty(email, "Email")
	if err != nil {
		return err
	}
	password, err = a.secretIfEmpty(password, "Password")
	if err != nil {
		return err
	}

	err = a.Session.Login(ctx, email, password)
	if err != nil {
		a.println(exceptions.Message(err))
		switch {
		case exceptions.OffersPasswordReset(err):
			a.printf(constvars.CLIHintForgotPassword+"\n", email)
		case exceptions.OffersAccountCreation(err):
			a.printf(constvars.CLIHintCreateAccount+"\n", email)
		}
		return &reportedError{err: err}
	}

	a.printf("%s\n", constvars.LoginSuccessMessage)
	return nil
}

func signupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "signup",
		Aliases: []string{"register"},
		Short:   "Create an account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			confirmation, _ := cmd.Flags().GetString("confirm")

			email, err := app.promptIfEmpty(email, "Email")
			if err != nil {
				return err
			}
			password, err = app.secretIfEmpty(password, "Password")
			if err != nil {
				return err
			}
			confirmation, err = app.secretIfEmpty(confirmation, "Confirm password")
			if err != nil {
				return err
			}

			err = app.Session.Register(cmd.Context(), email, password, confirmation)
			if err != nil {
				return app.fail(err)
			}
			app.println(constvars.RegisterSuccessMessage)
			return runOverview(app, cmd)
		},
	}
	cmd.Flags().String("email", "", "account email")
	cmd.Flags().String("password", "", "account password")
	cmd.Flags().String("confirm", "", "password confirmation")
	return cmd
}

func logoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.resolveSession(ctx); err != nil {
				app.Log.Debug("Could not restore session before logout")
			}
			if err := app.Session.Logout(ctx); err != nil {
				return app.fail(err)
			}
			app.println(constvars.LogoutSuccessMessage)
			return nil
		},
	}
}

func forgotPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Send a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			email, err := app.promptIfEmpty(email, "Email")
			if err != nil {
				return err
			}

			err = app.Session.RequestPasswordReset(cmd.Context(), email)
			if err != nil {
				return app.fail(err)
			}
			app.println(constvars.ForgotPasswordSuccessMessage)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account email")
	return cmd
}

func resetPasswordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password with the token from the reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			password, _ := cmd.Flags().GetString("password")
			confirmation, _ := cmd.Flags().GetString("confirm")

			token, err := app.promptIfEmpty(token, "Reset token")
			if err != nil {
				return err
			}
			password, err = app.secretIfEmpty(password, "New password")
			if err != nil {
				return err
			}
			confirmation, err = app.secretIfEmpty(confirmation, "Confirm new password")
			if err != nil {
				return err
			}

			err = app.Session.ResetPassword(cmd.Context(), token, password, confirmation)
			if err != nil {
				return app.fail(err)
			}
			app.println(constvars.ResetPasswordSuccessMessage)
			return nil
		},
	}
	cmd.Flags().String("token", "", "token from the reset email")
	cmd.Flags().String("password", "", "new password")
	cmd.Flags().String("confirm", "", "new password confirmation")
	return cmd
}

func refreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Extend the current session",
		Args:  cobra.NoArgs,
		RunE: app.protected(staticLocation("/refresh"), func(cmd *cobra.Command, args []string) error {
			err := app.Session.Refresh(cmd.Context())
			if err != nil {
				return app.fail(err)
			}
			app.println(constvars.RefreshSessionSuccessMessage)
			if session := app.Session.Current(); session != nil {
				app.printf("Session valid until %s\n", session.ExpiresAt.Local().Format(constvars.SlipDateLayout))
			}
			return nil
		}),
	}
}

func whoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Long: `Show who is logged in. With --follow the command keeps running and
reports session changes made elsewhere, such as a logout from another
terminal.`,
		Args: cobra.NoArgs,
		RunE: app.protected(staticLocation("/whoami"), func(cmd *cobra.Command, args []string) error {
			follow, _ := cmd.Flags().GetBool("follow")

			unsubscribe := app.Session.Subscribe(func(session *models.Session) {
				if session == nil {
					app.println("Not logged in.")
					return
				}
				app.printf("Logged in as %s until %s\n", session.Email, session.ExpiresAt.Local().Format(constvars.SlipDateLayout))
			})
			defer unsubscribe()

			if !follow {
				return nil
			}
			err := app.Session.Follow(cmd.Context())
			if err != nil && cmd.Context().Err() == nil {
				return app.fail(err)
			}
			return nil
		}),
	}
	cmd.Flags().BoolP("follow", "f", false, "keep watching for session changes")
	return cmd
}
