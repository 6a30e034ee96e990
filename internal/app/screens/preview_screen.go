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

type PreviewState struct {
	Status Status
	Record *models.Patient
	Slip   *printing.Slip
	Error  string
}

// PreviewScreen shows the slip of one saved record and prints it on demand.
type PreviewScreen struct {
	*screen
	Log      *zap.Logger
	records  contracts.PatientRecordService
	printer  printing.Printer
	userID   string
	recordID string
	record   *models.Patient
	slip     *printing.Slip
	now      func() time.Time

	// OnPrintComplete runs after every successful print.
	OnPrintComplete func(location string)
}

func NewPreviewScreen(ctx context.Context, logger *zap.Logger, records contracts.PatientRecordService, printer printing.Printer, userID, recordID string) *PreviewScreen {
	return &PreviewScreen{
		screen:   newScreen(ctx),
		Log:      logger,
		records:  records,
		printer:  printer,
		userID:   userID,
		recordID: recordID,
		now:      time.Now,
	}
}

func (p *PreviewScreen) State() PreviewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PreviewState{
		Status: p.status,
		Record: p.record,
		Slip:   p.slip,
		Error:  p.err,
	}
}

func (p *PreviewScreen) Mount() {
	if p.userID == "" {
		p.update(func() { p.status = StatusReady })
		return
	}

	if !p.update(func() { p.status = StatusLoading }) {
		return
	}

	outcome, message := StatusError, constvars.ErrClientSomethingWrongWithApplication
	defer func() {
		p.update(func() {
			p.status = outcome
			p.err = message
		})
	}()

	record, err := p.records.GetRecord(p.ctx, p.userID, p.recordID)
	if err != nil {
		message = exceptions.Message(err)
		return
	}
	if record == nil {
		message = constvars.ErrClientPatientRecordNotFound
		return
	}

	slip := printing.FormatSlip(record, p.now())
	p.update(func() {
		p.record = record
		p.slip = &slip
	})
	outcome, message = StatusReady, ""
}

// Print sends the loaded slip to the printer.
func (p *PreviewScreen) Print() error {
	state := p.State()
	if state.Slip == nil {
		return exceptions.ErrRecordNotFound(nil)
	}

	location, err := p.printer.Print(p.ctx, p.userID, *state.Slip)
	if err != nil {
		p.update(func() { p.err = exceptions.Message(err) })
		return err
	}
	if p.OnPrintComplete != nil {
		p.OnPrintComplete(location)
	}
	return nil
}
