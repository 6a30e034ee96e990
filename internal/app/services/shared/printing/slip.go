package printing

import (
	"fmt"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"strings"
	"time"
)

// Slip is the fixed-layout printable view of one patient record.
type Slip struct {
	RecordID    string
	Title       string
	Name        string
	FatherName  string
	Address     string
	Mobile      string
	Complaint   string
	Date        time.Time
	Provisional bool
}

// FormatSlip lays out a patient for printing. When the record has no
// server timestamp yet the slip is dated now and marked provisional.
func FormatSlip(patient *models.Patient, now time.Time) Slip {
	slip := Slip{
		RecordID:   patient.ID,
		Title:      constvars.SlipTitle,
		Name:       patient.Name,
		FatherName: patient.FatherName,
		Address:    patient.Address,
		Mobile:     patient.Mobile,
		Complaint:  patient.Complaint,
	}

	if patient.CreatedAt != nil {
		slip.Date = *patient.CreatedAt
	} else {
		slip.Date = now
		slip.Provisional = true
	}
	return slip
}

func (s Slip) DisplayDate() string {
	date := s.Date.Local().Format(constvars.SlipDateLayout)
	if s.Provisional {
		return date + " " + constvars.SlipProvisionalMarker
	}
	return date
}

func (s Slip) String() string {
	lines := []struct {
		label string
		value string
	}{
		{"Name", s.Name},
		{"Father Name", s.FatherName},
		{"Address", s.Address},
		{"Mobile", s.Mobile},
		{"Complaint", s.Complaint},
		{"Date", s.DisplayDate()},
	}

	var b strings.Builder
	rule := strings.Repeat("=", len(s.Title))
	fmt.Fprintf(&b, "%s\n%s\n%s\n", rule, s.Title, rule)
	for _, line := range lines {
		fmt.Fprintf(&b, "%-12s %s\n", line.label+":", line.value)
	}
	b.WriteString(rule + "\n")
	return b.String()
}
