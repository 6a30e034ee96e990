package cli

import (
	"context"
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/app/screens"
	"intake-service/internal/app/services/shared/printing"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/utils"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

const overviewRecentCount = 5

func dashboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard overview",
		Long: `The dashboard has three views.

Examples:
  intakectl dashboard
  intakectl dashboard new
  intakectl dashboard history`,
		Args: cobra.NoArgs,
		RunE: app.protected(staticLocation("/dashboard"), func(cmd *cobra.Command, args []string) error {
			return runOverview(app, cmd)
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Show the signed in user and the record count",
		Args:  cobra.NoArgs,
		RunE: app.protected(staticLocation("/dashboard"), func(cmd *cobra.Command, args []string) error {
			return runOverview(app, cmd)
		}),
	})
	cmd.AddCommand(newPatientCmd(app, "new", "/dashboard/new"))
	cmd.AddCommand(historyCmd(app))
	return cmd
}

func runOverview(app *App, cmd *cobra.Command) error {
	history := screens.NewHistoryScreen(cmd.Context(), app.Log, app.Records, app.Workspace, screens.ConfirmFunc(app.confirm), app.userID())
	defer history.Dispose()

	history.Mount()
	state := history.State()
	if state.Status == screens.StatusError {
		return app.failMessage(state.Error)
	}

	if session := app.Session.Current(); session != nil {
		app.printf("Signed in as %s\n", session.Email)
	}
	app.printf("Patients recorded: %d\n", state.Count)

	recent := state.Records
	if len(recent) > overviewRecentCount {
		recent = recent[:overviewRecentCount]
	}
	if len(recent) > 0 {
		app.println()
		app.println("Recent patients:")
		return app.printRecords(recent)
	}
	return nil
}

func historyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List all patient records, newest first",
		Args:  cobra.NoArgs,
		RunE: app.protected(staticLocation("/dashboard/history"), func(cmd *cobra.Command, args []string) error {
			history := screens.NewHistoryScreen(cmd.Context(), app.Log, app.Records, app.Workspace, screens.ConfirmFunc(app.confirm), app.userID())
			defer history.Dispose()

			history.Mount()
			state := history.State()
			if state.Status == screens.StatusError {
				return app.failMessage(state.Error)
			}
			if len(state.Records) == 0 {
				app.println("No patient records yet.")
				return nil
			}
			app.printf("%d patient records\n\n", state.Count)
			return app.printRecords(state.Records)
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a patient record",
		Long: `Delete a patient record permanently. The command asks for
confirmation unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: app.protected(staticLocation("/dashboard/history"), func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			confirmer := screens.ConfirmFunc(app.confirm)
			if force {
				confirmer = func(string) bool { return true }
			}

			history := screens.NewHistoryScreen(cmd.Context(), app.Log, app.Records, app.Workspace, confirmer, app.userID())
			defer history.Dispose()

			if history.Delete(args[0]) {
				app.println(constvars.DeletePatientRecordSuccessMessage)
				return nil
			}
			state := history.State()
			if state.Error == "" {
				app.println("Nothing deleted.")
				return nil
			}
			return app.failMessage(state.Error)
		}),
	}
	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	cmd.AddCommand(deleteCmd)
	return cmd
}

func newPatientCmd(app *App, use, location string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: "Record a new patient",
		Long: `Record a new patient. Missing fields are asked for.

Examples:
  intakectl new-patient
  intakectl new-patient --name "Asha Rao" --father-name "Vikram Rao" \
    --address "12 MG Road, Pune" --mobile 9876543210 --complaint "Fever" --preview`,
		Args: cobra.NoArgs,
		RunE: app.protected(staticLocation(location), func(cmd *cobra.Command, args []string) error {
			input, err := app.readPatientInput(cmd)
			if err != nil {
				return err
			}
			preview, _ := cmd.Flags().GetBool("preview")

			entry := screens.NewNewEntryScreen(cmd.Context(), app.Log, app.Records, app.Workspace, app.userID())
			defer entry.Dispose()
			entry.Mount()

			if !preview {
				recordID, ok := entry.Submit(input)
				if !ok {
					return app.entryFailed(entry)
				}
				app.println(constvars.CreatePatientRecordSuccessMessage)
				app.printf("Record id: %s\n", recordID)
				return nil
			}

			slip, ok := entry.SaveAndPreview(input)
			if !ok {
				return app.entryFailed(entry)
			}
			app.println(constvars.CreatePatientRecordSuccessMessage)
			app.println()
			app.printf("%s", slip.String())
			if slip.Provisional {
				app.println(constvars.CLIHintProvisional)
			}
			return nil
		}),
	}
	cmd.Flags().String("name", "", "patient name")
	cmd.Flags().String("father-name", "", "father's name")
	cmd.Flags().String("address", "", "address")
	cmd.Flags().String("mobile", "", "10 digit mobile number")
	cmd.Flags().String("complaint", "", "presenting complaint")
	cmd.Flags().Bool("preview", false, "show the printable slip after saving")
	return cmd
}

type patientField struct {
	flag  string
	label string
}

var patientFields = []patientField{
	{"name", "Name"},
	{"father-name", "Father name"},
	{"address", "Address"},
	{"mobile", "Mobile"},
	{"complaint", "Complaint"},
}

func (a *App) readPatientInput(cmd *cobra.Command) (models.PatientInput, error) {
	values := make(map[string]string, len(patientFields))
	for _, field := range patientFields {
		value, _ := cmd.Flags().GetString(field.flag)
		value, err := a.promptIfEmpty(value, field.label)
		if err != nil {
			return models.PatientInput{}, err
		}
		values[field.flag] = value
	}

	return models.PatientInput{
		Name:       values["name"],
		FatherName: values["father-name"],
		Address:    values["address"],
		Mobile:     values["mobile"],
		Complaint:  values["complaint"],
	}, nil
}

func (a *App) entryFailed(entry *screens.NewEntryScreen) error {
	return a.failMessage(entry.State().Error)
}

func previewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <id>",
		Short: "Show and print the slip of a patient record",
		Long: `Show the printable slip of a saved record. --print sends it to the
local printer output, --save writes it to a file in the given directory
and --archive stores it on the server.`,
		Args: cobra.ExactArgs(1),
		RunE: app.protected(func(args []string) string { return "/preview/" + args[0] }, func(cmd *cobra.Command, args []string) error {
			archive, _ := cmd.Flags().GetBool("archive")
			printSlip, _ := cmd.Flags().GetBool("print")
			saveDir, _ := cmd.Flags().GetString("save")

			var printer printing.Printer = printing.NewWriterPrinter(app.out)
			switch {
			case archive:
				printer = &archivePrinter{records: app.Records}
			case saveDir != "":
				printer = &filePrinter{dir: saveDir}
			}

			preview := screens.NewPreviewScreen(cmd.Context(), app.Log, app.Records, printer, app.userID(), args[0])
			defer preview.Dispose()
			preview.OnPrintComplete = func(location string) {
				if location != "" {
					app.printf("Slip saved to %s\n", location)
				}
			}

			preview.Mount()
			state := preview.State()
			if state.Status == screens.StatusError || state.Slip == nil {
				return app.failMessage(state.Error)
			}
			toTerminal := printSlip && !archive && saveDir == ""
			if !toTerminal {
				app.printf("%s", state.Slip.String())
			}
			if !printSlip && !archive && saveDir == "" {
				return nil
			}
			if err := preview.Print(); err != nil {
				return app.failMessage(preview.State().Error)
			}
			return nil
		}),
	}
	cmd.Flags().Bool("print", false, "print the slip")
	cmd.Flags().Bool("archive", false, "archive the slip on the server")
	cmd.Flags().String("save", "", "directory to save the slip file in")
	return cmd
}

// archivePrinter prints by asking the server to store the slip.
type archivePrinter struct {
	records RecordService
}

func (p *archivePrinter) Print(ctx context.Context, ownerID string, slip printing.Slip) (string, error) {
	result, err := p.records.ArchiveSlip(ctx, slip.RecordID)
	if err != nil {
		return "", err
	}
	return result.Bucket + "/" + result.ObjectName, nil
}

// filePrinter writes each slip to a new timestamped file in dir.
type filePrinter struct {
	dir string
}

func (p *filePrinter) Print(ctx context.Context, ownerID string, slip printing.Slip) (string, error) {
	path := filepath.Join(p.dir, utils.GenerateFileName("slip", slip.RecordID, ".txt"))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer file.Close()

	_, err = printing.NewWriterPrinter(file).Print(ctx, ownerID, slip)
	if err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) printRecords(records []models.Patient) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tMOBILE\tCOMPLAINT\tDATE")
	for _, record := range records {
		date := "-"
		if record.CreatedAt != nil {
			date = record.CreatedAt.Local().Format(constvars.SlipDateLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", record.ID, record.Name, record.Mobile, record.Complaint, date)
	}
	return w.Flush()
}
