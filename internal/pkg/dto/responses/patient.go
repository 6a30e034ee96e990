package responses

import "time"

type PatientRecord struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	FatherName string     `json:"fatherName"`
	Address    string     `json:"address"`
	Mobile     string     `json:"mobile"`
	Complaint  string     `json:"complaint"`
	CreatedAt  *time.Time `json:"createdAt"`
}

type CreatePatientRecord struct {
	ID string `json:"id"`
}

type PrintPatientSlip struct {
	Bucket     string `json:"bucket"`
	ObjectName string `json:"object_name"`
}
