package controllers

import (
	"context"
	"errors"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/delivery/http/middlewares"
	"intake-service/internal/app/models"
	"intake-service/internal/app/services/shared/printing"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"intake-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type PatientController struct {
	Log            *zap.Logger
	PatientUsecase contracts.PatientRecordService
	Printer        printing.Printer
	BucketName     string
}

func NewPatientController(logger *zap.Logger, patientUsecase contracts.PatientRecordService, printer printing.Printer, bucketName string) *PatientController {
	return &PatientController{
		Log:            logger,
		PatientUsecase: patientUsecase,
		Printer:        printer,
		BucketName:     bucketName,
	}
}

// ListRecords returns the caller's records newest first. An optional limit
// query parameter bounds the result.
func (ctrl *PatientController) ListRecords(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAuthenticationRequired(nil))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		records []models.Patient
		err     error
	)
	limit := utils.ParseLimitQuery(r)
	if limit > 0 {
		records, err = ctrl.PatientUsecase.ListRecent(ctx, session.UserID, limit)
	} else {
		records, err = ctrl.PatientUsecase.ListRecords(ctx, session.UserID)
	}
	if err != nil {
		ctrl.handleUsecaseError(w, err)
		return
	}

	response := make([]responses.PatientRecord, 0, len(records))
	for i := range records {
		response = append(response, toPatientRecordResponse(&records[i]))
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientRecordsSuccessMessage, response)
}

func (ctrl *PatientController) CreateRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAuthenticationRequired(nil))
		return
	}

	// Bind body to request
	request := new(requests.CreatePatientRecord)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	recordID, err := ctrl.PatientUsecase.CreateRecord(ctx, session.UserID, models.PatientInput{
		Name:       request.Name,
		FatherName: request.FatherName,
		Address:    request.Address,
		Mobile:     request.Mobile,
		Complaint:  request.Complaint,
	})
	if err != nil {
		ctrl.handleUsecaseError(w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_record_created", utils.GetRequestID(r.Context()),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingRecordIDKey, recordID),
	)

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePatientRecordSuccessMessage, responses.CreatePatientRecord{ID: recordID})
}

func (ctrl *PatientController) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, ok := ctrl.findRecord(w, r)
	if !ok {
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPatientRecordSuccessMessage, toPatientRecordResponse(record))
}

// DeleteRecord succeeds whether or not the record still exists.
func (ctrl *PatientController) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAuthenticationRequired(nil))
		return
	}
	recordID := chi.URLParam(r, constvars.URLParamRecordID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := ctrl.PatientUsecase.DeleteRecord(ctx, session.UserID, recordID)
	if err != nil {
		ctrl.handleUsecaseError(w, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "patient_record_deleted", utils.GetRequestID(r.Context()),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.String(constvars.LoggingRecordIDKey, recordID),
	)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeletePatientRecordSuccessMessage, nil)
}

// GetSlip renders the printable slip of a record as plain text.
func (ctrl *PatientController) GetSlip(w http.ResponseWriter, r *http.Request) {
	record, ok := ctrl.findRecord(w, r)
	if !ok {
		return
	}

	slip := printing.FormatSlip(record, time.Now())
	utils.BuildTextResponse(w, constvars.StatusOK, slip.String())
}

// PrintSlip archives the slip of a record in the object store.
func (ctrl *PatientController) PrintSlip(w http.ResponseWriter, r *http.Request) {
	record, ok := ctrl.findRecord(w, r)
	if !ok {
		return
	}
	session, _ := middlewares.SessionFromContext(r.Context())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	objectName, err := ctrl.Printer.Print(ctx, session.UserID, printing.FormatSlip(record, time.Now()))
	if err != nil {
		ctrl.handleUsecaseError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PrintPatientSlipSuccessMessage, responses.PrintPatientSlip{
		Bucket:     ctrl.BucketName,
		ObjectName: objectName,
	})
}

// findRecord loads the record named in the url for the calling user and
// writes the error response itself when it cannot.
func (ctrl *PatientController) findRecord(w http.ResponseWriter, r *http.Request) (*models.Patient, bool) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrAuthenticationRequired(nil))
		return nil, false
	}
	recordID := chi.URLParam(r, constvars.URLParamRecordID)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	record, err := ctrl.PatientUsecase.GetRecord(ctx, session.UserID, recordID)
	if err != nil {
		ctrl.handleUsecaseError(w, err)
		return nil, false
	}
	if record == nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrRecordNotFound(nil))
		return nil, false
	}
	return record, true
}

func (ctrl *PatientController) handleUsecaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

func toPatientRecordResponse(record *models.Patient) responses.PatientRecord {
	return responses.PatientRecord{
		ID:         record.ID,
		Name:       record.Name,
		FatherName: record.FatherName,
		Address:    record.Address,
		Mobile:     record.Mobile,
		Complaint:  record.Complaint,
		CreatedAt:  record.CreatedAt,
	}
}
