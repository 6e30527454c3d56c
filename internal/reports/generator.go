package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/adaptfit/macrohub/internal/engine"
	"github.com/adaptfit/macrohub/internal/storage"
	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

const reportDateLayout = "2006-01-02"

// How many rows the PDF detail table shows. Older entries still count
// toward the summary.
const pdfTableRows = 28

// Generator renders weight-progress reports as PDF or CSV.
type Generator struct {
	weightsStorage  storage.WeightsStorage
	profilesStorage storage.ProfilesStorage
}

// NewGenerator creates a new report generator
func NewGenerator(weightsStorage storage.WeightsStorage, profilesStorage storage.ProfilesStorage) *Generator {
	return &Generator{
		weightsStorage:  weightsStorage,
		profilesStorage: profilesStorage,
	}
}

// reportRow is one rendered line of the report.
type reportRow struct {
	Date     string
	WeightLB float64
	WeightKG float64
	Avg7dLB  float64
	ChangeLB float64 // vs the first entry in range
}

// GenerateReport fetches the user's entries in range and renders them.
func (g *Generator) GenerateReport(ctx context.Context, userID uuid.UUID, req CreateReportRequest) ([]byte, error) {
	from, err := time.Parse(reportDateLayout, req.From)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := time.Parse(reportDateLayout, req.To)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entries, err := g.weightsStorage.ListWeightEntries(ctx, userID, &from, &to, false, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weight entries: %w", err)
	}

	profile, err := g.profilesStorage.GetBodyProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch body profile: %w", err)
	}

	rows := buildRows(entries)

	switch req.Format {
	case FormatPDF:
		return g.generatePDF(req, rows, profile)
	case FormatCSV:
		return g.generateCSV(rows)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

// buildRows computes per-entry derived columns. The 7-day average is a
// trailing window ending on the entry's date.
func buildRows(entries []storage.WeightEntry) []reportRow {
	rows := make([]reportRow, 0, len(entries))

	for i, e := range entries {
		sum, n := 0.0, 0
		windowStart := e.Date.AddDate(0, 0, -6)
		for j := i; j >= 0; j-- {
			if entries[j].Date.Before(windowStart) {
				break
			}
			sum += entries[j].WeightLB
			n++
		}

		rows = append(rows, reportRow{
			Date:     e.Date.Format(reportDateLayout),
			WeightLB: e.WeightLB,
			WeightKG: e.WeightLB * engine.LBToKG,
			Avg7dLB:  sum / float64(n),
			ChangeLB: e.WeightLB - entries[0].WeightLB,
		})
	}

	return rows
}

// generateCSV generates a CSV report
func (g *Generator) generateCSV(rows []reportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "weight_lb", "weight_kg", "avg_7d_lb", "change_lb"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range rows {
		record := []string{
			row.Date,
			fmt.Sprintf("%.1f", row.WeightLB),
			fmt.Sprintf("%.2f", row.WeightKG),
			fmt.Sprintf("%.1f", row.Avg7dLB),
			fmt.Sprintf("%+.1f", row.ChangeLB),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF generates a PDF report
func (g *Generator) generatePDF(req CreateReportRequest, rows []reportRow, profile *storage.BodyProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")

	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Weight Progress Report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", req.From, req.To))
	pdf.Ln(6)
	if profile != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Goal: %s (%s intensity)", profile.Goal, profile.Intensity))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	if len(rows) == 0 {
		pdf.Cell(0, 6, "No weight entries in this period.")
		pdf.Ln(6)
	} else {
		first, last := rows[0], rows[len(rows)-1]
		change := last.WeightLB - first.WeightLB

		spanDays := daysBetweenDates(first.Date, last.Date)
		weeklyRate := 0.0
		if spanDays > 0 {
			weeklyRate = change / (float64(spanDays) / 7.0)
		}

		pdf.Cell(0, 6, fmt.Sprintf("Entries: %d", len(rows)))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Start weight: %.1f lb (%.1f kg)", first.WeightLB, first.WeightKG))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("End weight: %.1f lb (%.1f kg)", last.WeightLB, last.WeightKG))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Total change: %+.1f lb (%+.1f kg)", change, change*engine.LBToKG))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Average weekly rate: %+.2f lb/week", weeklyRate))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 8, "Entries")
		pdf.Ln(8)

		g.drawEntriesTable(pdf, rows)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// drawEntriesTable draws the most recent entries
func (g *Generator) drawEntriesTable(pdf *gofpdf.Fpdf, rows []reportRow) {
	if len(rows) > pdfTableRows {
		rows = rows[len(rows)-pdfTableRows:]
	}

	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(30, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Weight (lb)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Weight (kg)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "7d avg (lb)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Change (lb)", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, row := range rows {
		pdf.CellFormat(30, 6, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", row.WeightLB), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.WeightKG), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f", row.Avg7dLB), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%+.1f", row.ChangeLB), "1", 1, "C", false, 0, "")
	}
}

func daysBetweenDates(from, to string) int {
	a, errA := time.Parse(reportDateLayout, from)
	b, errB := time.Parse(reportDateLayout, to)
	if errA != nil || errB != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}
