// Package pdf renders printable documents for the API.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// ReportCard carries everything needed to render a student's report card.
type ReportCard struct {
	StudentName  string
	StudentEmail string
	GeneratedAt  time.Time
	AverageGrade float64
	Grades       []ReportGrade
	Absences     []ReportAbsence
}

type ReportGrade struct {
	Subject string
	Grade   float64
	Date    time.Time
}

type ReportAbsence struct {
	Date   time.Time
	Reason string
}

// RenderReportCard produces the PDF document as raw bytes.
func RenderReportCard(card ReportCard) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Report Card", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 12, "Report Card", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 7, fmt.Sprintf("Student: %s", card.StudentName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Email: %s", card.StudentEmail), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Generated: %s", card.GeneratedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 7, fmt.Sprintf("Average grade: %.2f / 20", card.AverageGrade), "", 1, "L", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, "Grades", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(90, 8, "Subject", "1", 0, "L", true, 0, "")
	doc.CellFormat(40, 8, "Grade", "1", 0, "C", true, 0, "")
	doc.CellFormat(50, 8, "Date", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	if len(card.Grades) == 0 {
		doc.CellFormat(180, 8, "No grades recorded", "1", 1, "C", false, 0, "")
	}
	for _, g := range card.Grades {
		doc.CellFormat(90, 8, g.Subject, "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 8, fmt.Sprintf("%.2f", g.Grade), "1", 0, "C", false, 0, "")
		doc.CellFormat(50, 8, g.Date.Format("2006-01-02"), "1", 1, "C", false, 0, "")
	}
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, fmt.Sprintf("Absences (%d)", len(card.Absences)), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	if len(card.Absences) == 0 {
		doc.CellFormat(0, 7, "No absences recorded", "", 1, "L", false, 0, "")
	}
	for _, a := range card.Absences {
		line := a.Date.Format("2006-01-02")
		if a.Reason != "" {
			line += " - " + a.Reason
		}
		doc.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
