package models

import (
	"intake-service/internal/pkg/utils"
	"time"
)

// Patient is one intake record. ID and CreatedAt are assigned by the store;
// CreatedAt stays nil until the server timestamp has been read back.
type Patient struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	FatherName string     `json:"fatherName"`
	Address    string     `json:"address"`
	Mobile     string     `json:"mobile"`
	Complaint  string     `json:"complaint"`
	CreatedAt  *time.Time `json:"createdAt"`
}

// PatientInput carries the fields a user supplies when creating a record.
type PatientInput struct {
	Name       string `json:"name" validate:"notblank"`
	FatherName string `json:"fatherName" validate:"notblank"`
	Address    string `json:"address" validate:"notblank"`
	Mobile     string `json:"mobile" validate:"notblank,mobile"`
	Complaint  string `json:"complaint" validate:"notblank"`
}

func (in PatientInput) Validate() error {
	return utils.ValidateStruct(in)
}

func (in PatientInput) ToPatient(id string, createdAt *time.Time) *Patient {
	return &Patient{
		ID:         id,
		Name:       in.Name,
		FatherName: in.FatherName,
		Address:    in.Address,
		Mobile:     in.Mobile,
		Complaint:  in.Complaint,
		CreatedAt:  createdAt,
	}
}
