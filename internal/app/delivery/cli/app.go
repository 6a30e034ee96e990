package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"intake-service/internal/app/client"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/drivers/logger"
	"intake-service/internal/app/guard"
	"intake-service/internal/app/models"
	"intake-service/internal/app/screens"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// RecordService is the record access the terminal needs, including the
// server-side slip archive.
type RecordService interface {
	contracts.PatientRecordService
	ArchiveSlip(ctx context.Context, recordID string) (*responses.PrintPatientSlip, error)
}

// App holds everything the commands share during one invocation.
type App struct {
	Log       *zap.Logger
	Config    *ClientConfig
	Session   *client.SessionAdapter
	Records   RecordService
	Workspace *screens.Workspace
	Guard     *guard.Guard

	in         *bufio.Reader
	terminal   *os.File
	out        io.Writer
	viper      *viper.Viper
	configFile string
}

func NewApp(in io.Reader, out io.Writer) *App {
	app := &App{
		Log:       zap.NewNop(),
		Workspace: screens.NewWorkspace(),
		in:        bufio.NewReader(in),
		out:       out,
		viper:     newViper(),
	}
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		app.terminal = file
	}
	return app
}

// setup resolves the configuration and builds the API client and session
// adapter. It runs once, after flags are parsed.
func (a *App) setup() error {
	if a.Session != nil {
		return nil
	}

	cfg, err := loadClientConfig(a.viper, a.configFile)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Log = logger.NewCLILogger(cfg.Debug)

	apiClient := client.NewClient(cfg.BaseURL, cfg.APIKey, a.Log)
	a.Session = client.NewSessionAdapter(a.Log, apiClient, client.NewFileSessionStore(cfg.SessionFile))
	a.Records = client.NewPatientRecords(apiClient)

	a.Guard = guard.New(a.Log, guard.ResolverFunc(a.resolveSession))
	a.Guard.OnChecking = func() { a.println(constvars.CLIHintCheckingAccess) }

	a.Log.Debug("intakectl configured",
		zap.String("base_url", cfg.BaseURL),
		zap.String("session_file", cfg.SessionFile),
	)
	return nil
}

func (a *App) resolveSession(ctx context.Context) (*models.Session, error) {
	if session := a.Session.Current(); session != nil {
		return session, nil
	}
	if err := a.Session.Restore(ctx); err != nil {
		return nil, err
	}
	return a.Session.Current(), nil
}

// protected gates run behind the route guard. When nobody is logged in the
// login flow runs first and the requested command resumes afterwards.
func (a *App) protected(location func(args []string) string, run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		requested := location(args)

		decision := a.Guard.Check(ctx, requested)
		if decision.State == guard.StateUnauthorized {
			a.println(constvars.CLIHintLoginRequired)
			if err := a.loginInteractive(ctx, "", ""); err != nil {
				return err
			}
			a.Log.Debug("Resuming after login", zap.String("next", guard.NextLocation(decision.Redirect)))
		}
		return run(cmd, args)
	}
}

func staticLocation(path string) func(args []string) string {
	return func(args []string) string { return path }
}

func (a *App) userID() string {
	return a.Session.UserID()
}

// confirm asks a yes/no question on the terminal. Anything but an explicit
// yes counts as no.
func (a *App) confirm(prompt string) bool {
	answer, err := a.prompt(prompt + " [y/N]")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (a *App) prompt(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a password without echo when stdin is a terminal.
// The value is returned exactly as typed.
func (a *App) promptSecret(label string) (string, error) {
	fmt.Fprintf(a.out, "%s: ", label)
	if a.terminal != nil {
		secret, err := term.ReadPassword(int(a.terminal.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// secretIfEmpty keeps a password given on the command line and asks otherwise.
func (a *App) secretIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	return a.promptSecret(label)
}

// promptIfEmpty keeps a value given on the command line and asks otherwise.
func (a *App) promptIfEmpty(value, label string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	return a.prompt(label)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// reportedError marks a failure whose message the user has already seen.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// fail shows err to the user and returns it marked as reported. A missing
// session also points at the login command.
func (a *App) fail(err error) error {
	a.println(exceptions.Message(err))
	if exceptions.IsAuthenticationRequired(err) {
		a.println(constvars.CLIHintSignInAgain)
	}
	return &reportedError{err: err}
}

// failMessage shows a screen's error message and returns it as an error.
func (a *App) failMessage(message string) error {
	return a.fail(errors.New(message))
}

// IsReported tells main whether err still needs printing.
func IsReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}
