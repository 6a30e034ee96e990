package client

import (
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"net/url"
)

// PatientRecords is the record access layer as seen from the terminal
// client. The server scopes every call to the session behind the token, so
// userID only guards against calls made while logged out.
type PatientRecords struct {
	client *Client
}

func NewPatientRecords(client *Client) *PatientRecords {
	return &PatientRecords{client: client}
}

var _ contracts.PatientRecordService = (*PatientRecords)(nil)

func recordPath(recordID string) string {
	return "/patients/records/" + url.PathEscape(recordID)
}

func (p *PatientRecords) ListRecords(ctx context.Context, userID string) ([]models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}
	return p.list(ctx, "/patients/records")
}

func (p *PatientRecords) ListRecent(ctx context.Context, userID string, count int) ([]models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}
	if count <= 0 {
		count = constvars.DefaultRecentRecordsCount
	}
	query := url.Values{constvars.URLQueryParamLimit: []string{fmt.Sprint(count)}}
	return p.list(ctx, "/patients/records?"+query.Encode())
}

func (p *PatientRecords) list(ctx context.Context, path string) ([]models.Patient, error) {
	var records []responses.PatientRecord
	err := p.client.do(ctx, constvars.MethodGet, path, nil, &records)
	if err != nil {
		return nil, err
	}

	patients := make([]models.Patient, 0, len(records))
	for _, record := range records {
		patients = append(patients, *toPatient(record))
	}
	return patients, nil
}

// GetRecord returns nil without error when the record does not exist.
func (p *PatientRecords) GetRecord(ctx context.Context, userID, recordID string) (*models.Patient, error) {
	if userID == "" {
		return nil, exceptions.ErrAuthenticationRequired(nil)
	}

	var record responses.PatientRecord
	err := p.client.do(ctx, constvars.MethodGet, recordPath(recordID), nil, &record)
	if err != nil {
		if exceptions.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toPatient(record), nil
}

func (p *PatientRecords) CreateRecord(ctx context.Context, userID string, input models.PatientInput) (string, error) {
	if userID == "" {
		return "", exceptions.ErrAuthenticationRequired(nil)
	}
	err := input.Validate()
	if err != nil {
		return "", exceptions.ErrInputValidation(err)
	}

	var created responses.CreatePatientRecord
	err = p.client.do(ctx, constvars.MethodPost, "/patients/records", requests.CreatePatientRecord{
		Name:       input.Name,
		FatherName: input.FatherName,
		Address:    input.Address,
		Mobile:     input.Mobile,
		Complaint:  input.Complaint,
	}, &created)
	if err != nil {
		return "", err
	}
	return created.ID, nil
}

func (p *PatientRecords) DeleteRecord(ctx context.Context, userID, recordID string) error {
	if userID == "" {
		return exceptions.ErrAuthenticationRequired(nil)
	}
	return p.client.do(ctx, constvars.MethodDelete, recordPath(recordID), nil, nil)
}

// Slip fetches the server-rendered slip text of a saved record.
func (p *PatientRecords) Slip(ctx context.Context, recordID string) (string, error) {
	return p.client.doText(ctx, constvars.MethodGet, recordPath(recordID)+"/slip")
}

// ArchiveSlip asks the server to store the slip in the object store.
func (p *PatientRecords) ArchiveSlip(ctx context.Context, recordID string) (*responses.PrintPatientSlip, error) {
	result := new(responses.PrintPatientSlip)
	err := p.client.do(ctx, constvars.MethodPost, recordPath(recordID)+"/print", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func toPatient(record responses.PatientRecord) *models.Patient {
	return &models.Patient{
		ID:         record.ID,
		Name:       record.Name,
		FatherName: record.FatherName,
		Address:    record.Address,
		Mobile:     record.Mobile,
		Complaint:  record.Complaint,
		CreatedAt:  record.CreatedAt,
	}
}
