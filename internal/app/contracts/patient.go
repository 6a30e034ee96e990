package contracts

import (
	"context"
	"intake-service/internal/app/models"
)

// PatientRepository is the document store boundary. Every call is scoped to
// one owner; a record is never reachable through another owner id.
type PatientRepository interface {
	// FindAllByOwner returns the owner's records newest first. A limit of
	// zero returns all of them.
	FindAllByOwner(ctx context.Context, ownerID string, limit int) ([]models.Patient, error)
	FindByID(ctx context.Context, ownerID, recordID string) (*models.Patient, error)
	Create(ctx context.Context, ownerID string, input models.PatientInput) (recordID string, err error)
	Delete(ctx context.Context, ownerID, recordID string) error
}

// PatientRecordService is the record access layer used by the API handlers
// and, through the HTTP client, by the terminal screens.
type PatientRecordService interface {
	ListRecords(ctx context.Context, userID string) ([]models.Patient, error)
	ListRecent(ctx context.Context, userID string, count int) ([]models.Patient, error)
	GetRecord(ctx context.Context, userID, recordID string) (*models.Patient, error)
	CreateRecord(ctx context.Context, userID string, input models.PatientInput) (recordID string, err error)
	DeleteRecord(ctx context.Context, userID, recordID string) error
}
