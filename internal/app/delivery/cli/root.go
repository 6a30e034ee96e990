package cli

import (
	"context"
	"intake-service/internal/pkg/constvars"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the intakectl command tree around app. Running it
// with an unknown command shows the dashboard.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   constvars.CLIName,
		Short: "Patient intake from the terminal",
		Long: `intakectl records patients, lists and deletes them, and prints
intake slips through the intake service API.

Configuration is read from flags, INTAKECTL_* environment variables
(INTAKECTL_BASE_URL, INTAKECTL_API_KEY, INTAKECTL_SESSION_FILE,
INTAKECTL_DEBUG) and an optional --config file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				app.printf(constvars.CLIHintUnknownCommand+"\n", args[0])
			}
			return app.protected(staticLocation("/dashboard"), func(cmd *cobra.Command, args []string) error {
				return runOverview(app, cmd)
			})(cmd, args)
		},
	}
	root.SetOut(app.out)

	flags := root.PersistentFlags()
	flags.StringVar(&app.configFile, "config", "", "config file (yaml, json, toml or env)")
	flags.String("base-url", constvars.CLIDefaultAPIURL, "intake service API base URL")
	flags.String("api-key", "", "intake service API key")
	flags.String("session-file", "", "where the login session is kept")
	flags.Bool("debug", false, "log debug output to stderr")

	_ = app.viper.BindPFlag(constvars.CLIConfigKeyBaseURL, flags.Lookup("base-url"))
	_ = app.viper.BindPFlag(constvars.CLIConfigKeyAPIKey, flags.Lookup("api-key"))
	_ = app.viper.BindPFlag(constvars.CLIConfigKeySessionFile, flags.Lookup("session-file"))
	_ = app.viper.BindPFlag(constvars.CLIConfigKeyDebug, flags.Lookup("debug"))

	root.AddCommand(
		loginCmd(app),
		signupCmd(app),
		logoutCmd(app),
		forgotPasswordCmd(app),
		resetPasswordCmd(app),
		refreshCmd(app),
		whoamiCmd(app),
		dashboardCmd(app),
		newPatientCmd(app, "new-patient", "/new-patient"),
		previewCmd(app),
		versionCmd(app),
	)
	return root
}

// Execute runs intakectl with args.
func Execute(ctx context.Context, in io.Reader, out io.Writer, args []string) error {
	root := NewRootCommand(NewApp(in, out))
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
