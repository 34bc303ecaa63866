package pdfexport

import (
	"bytes"
	"fmt"
	"strings"

	"carelink-backend/models"
	dbmodels "carelink-backend/models/db"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// GenerateApplicationSummary renders a one-page interview printout for a
// single application.
func GenerateApplicationSummary(rec dbmodels.ApplicationExt) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateApplicationSummary panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Caregiver Application Summary", "", 1, "L", false, 0, "")
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(4)

	stage := models.StageStatusFor(rec.Status, rec.ApplicationStep)
	writeRow(pdf, "Candidate", strings.TrimSpace(rec.UserFirstName+" "+rec.UserLastName))
	writeRow(pdf, "Email", rec.UserEmail)
	writeRow(pdf, "Preferred location", rec.PreferredWorkLocation)
	writeRow(pdf, "Experience", fmt.Sprintf("%d years", rec.YearsOfExperience))
	writeRow(pdf, "Availability", availabilityText(rec.Application))
	writeRow(pdf, "Specialties", strings.Join(rec.Specialties, ", "))
	writeRow(pdf, "Certifications", strings.Join(rec.Certifications, ", "))
	writeRow(pdf, "Step", fmt.Sprintf("%d of %d", rec.ApplicationStep, models.FinalApplicationStep))
	writeRow(pdf, "Status", string(rec.Status))
	writeRow(pdf, "Stage", string(stage))
	writeRow(pdf, "Submitted", rec.CreatedAt.Format("2006-01-02"))

	if rec.CoverLetter != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Cover letter", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, rec.CoverLetter, "", "L", false)
	}
	if rec.AdminNotes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, "Review notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, rec.AdminNotes, "", "L", false)
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(pdf *fpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func availabilityText(rec dbmodels.Application) string {
	parts := []string{}
	if rec.AvailableWeekends {
		parts = append(parts, "weekends")
	}
	if rec.AvailableNights {
		parts = append(parts, "nights")
	}
	if len(parts) == 0 {
		return "weekdays only"
	}
	return strings.Join(parts, ", ")
}
