package screens

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/printing"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type EntryState struct {
	Status        Status
	Form          models.PatientInput
	Error         string
	LastCreatedID string
}

// NewEntryScreen creates records from the intake form.
type NewEntryScreen struct {
	*screen
	Log       *zap.Logger
	records   contracts.PatientRecordService
	workspace *Workspace
	userID    string
	form      models.PatientInput
	lastID    string
	now       func() time.Time
}

func NewNewEntryScreen(ctx context.Context, logger *zap.Logger, records contracts.PatientRecordService, workspace *Workspace, userID string) *NewEntryScreen {
	return &NewEntryScreen{
		screen:    newScreen(ctx),
		Log:       logger,
		records:   records,
		workspace: workspace,
		userID:    userID,
		now:       time.Now,
	}
}

func (n *NewEntryScreen) Mount() {
	n.update(func() { n.status = StatusReady })
}

func (n *NewEntryScreen) State() EntryState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return EntryState{
		Status:        n.status,
		Form:          n.form,
		Error:         n.err,
		LastCreatedID: n.lastID,
	}
}

// SetForm keeps the form contents so a failed submission does not lose them.
func (n *NewEntryScreen) SetForm(input models.PatientInput) {
	n.update(func() { n.form = input })
}

// Submit validates the form locally and creates the record. On success the
// record is put at the top of the shared list, the counter goes up by one and
// the form is cleared; the list is not fetched again.
func (n *NewEntryScreen) Submit(input models.PatientInput) (string, bool) {
	recordID, _, ok := n.create(input)
	return recordID, ok
}

// SaveAndPreview creates the record and returns its slip. The slip starts
// from the local clock and is marked provisional; one read of the stored
// record replaces it with the server timestamp when that is available.
func (n *NewEntryScreen) SaveAndPreview(input models.PatientInput) (printing.Slip, bool) {
	recordID, record, ok := n.create(input)
	if !ok {
		return printing.Slip{}, false
	}

	slip := printing.FormatSlip(record, n.now())

	stored, err := n.records.GetRecord(n.ctx, n.userID, recordID)
	if err != nil {
		n.Log.Debug("NewEntryScreen.SaveAndPreview kept the provisional slip",
			zap.String(constvars.LoggingRecordIDKey, recordID),
			zap.Error(err),
		)
		return slip, true
	}
	if stored != nil && stored.CreatedAt != nil {
		n.update(func() { n.workspace.refresh(*stored) })
		slip = printing.FormatSlip(stored, n.now())
	}
	return slip, true
}

func (n *NewEntryScreen) create(input models.PatientInput) (string, *models.Patient, bool) {
	var rejection error
	n.update(func() {
		switch {
		case n.status == StatusLoading:
			rejection = exceptions.ErrSubmissionInFlight(nil)
		case n.userID == "":
			rejection = exceptions.ErrAuthenticationRequired(nil)
		default:
			if err := input.Validate(); err != nil {
				rejection = exceptions.ErrInputValidation(err)
			}
		}

		n.form = input
		if rejection != nil {
			n.err = exceptions.Message(rejection)
			return
		}
		n.status = StatusLoading
		n.err = ""
	})
	if rejection != nil || n.Disposed() {
		return "", nil, false
	}

	outcome, message := StatusError, constvars.ErrClientSomethingWrongWithApplication
	defer func() {
		n.update(func() {
			n.status = outcome
			n.err = message
		})
	}()

	recordID, err := n.records.CreateRecord(n.ctx, n.userID, input)
	if err != nil {
		n.Log.Debug("NewEntryScreen.create failed", zap.Error(err))
		message = exceptions.Message(err)
		return "", nil, false
	}

	record := input.ToPatient(recordID, nil)
	n.update(func() {
		n.workspace.prepend(*record)
		n.form = models.PatientInput{}
		n.lastID = recordID
	})
	outcome, message = StatusReady, ""
	return recordID, record, true
}
