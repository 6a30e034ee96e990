package patients

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"strings"

	"go.uber.org/zap"
)

type patientUsecase struct {
	Log               *zap.Logger
	PatientRepository contracts.PatientRepository
}

func NewPatientUsecase(log *zap.Logger, patientRepository contracts.PatientRepository) contracts.PatientRecordService {
	return &patientUsecase{
		Log:               log,
		PatientRepository: patientRepository,
	}
}

func (uc *patientUsecase) ListRecords(ctx context.Context, userID string) ([]models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}
	return uc.PatientRepository.FindAllByOwner(ctx, userID, 0)
}

func (uc *patientUsecase) ListRecent(ctx context.Context, userID string, count int) ([]models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}
	if count <= 0 {
		count = constvars.DefaultRecentRecordsCount
	}
	return uc.PatientRepository.FindAllByOwner(ctx, userID, count)
}

func (uc *patientUsecase) GetRecord(ctx context.Context, userID, recordID string) (*models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil, nil
	}
	return uc.PatientRepository.FindByID(ctx, userID, recordID)
}

func (uc *patientUsecase) CreateRecord(ctx context.Context, userID string, input models.PatientInput) (string, error) {
	if userID == "" {
		return "", exceptions.ErrAuthenticationRequired(nil)
	}

	err := input.Validate()
	if err != nil {
		return "", exceptions.ErrInputValidation(err)
	}

	recordID, err := uc.PatientRepository.Create(ctx, userID, input)
	if err != nil {
		return "", err
	}

	uc.Log.Info("patientUsecase.CreateRecord succeeded",
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingRecordIDKey, recordID),
	)
	return recordID, nil
}

func (uc *patientUsecase) DeleteRecord(ctx context.Context, userID, recordID string) error {
	if userID == "" {
		return exceptions.ErrAuthenticationRequired(nil)
	}
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil
	}

	err := uc.PatientRepository.Delete(ctx, userID, recordID)
	if err != nil {
		return err
	}

	uc.Log.Info("patientUsecase.DeleteRecord succeeded",
		zap.String(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingRecordIDKey, recordID),
	)
	return nil
}
