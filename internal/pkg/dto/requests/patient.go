package requests

type CreatePatientRecord struct {
	Name       string `json:"name" validate:"notblank"`
	FatherName string `json:"fatherName" validate:"notblank"`
	Address    string `json:"address" validate:"notblank"`
	Mobile     string `json:"mobile" validate:"notblank,mobile"`
	Complaint  string `json:"complaint" validate:"notblank"`
}
