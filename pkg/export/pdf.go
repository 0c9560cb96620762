package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/jakechorley/timetable-scheduler/pkg/core/scheduler"
)

const (
	pdfLabelWidth = 22.0
	pdfCellWidth  = 51.0
	pdfHeadHeight = 8.0
	pdfLineHeight = 4.5
)

// PDFExporter renders a timetable as a weekly grid, one landscape page per semester
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the document. Each grid cell lists "subject / room / teacher" for every
// session of the semester in that period.
func (e *PDFExporter) Render(assignments []scheduler.Assignment, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 10)

	bySemester := groupBySemester(assignments)
	semesters := make([]string, 0, len(bySemester))
	for semester := range bySemester {
		semesters = append(semesters, semester)
	}
	sort.Strings(semesters)

	if len(semesters) == 0 {
		pdf.AddPage()
		e.writeTitle(pdf, title, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 10, "No sessions scheduled", "", 1, "C", false, 0, "")
	}

	for _, semester := range semesters {
		pdf.AddPage()
		e.writeTitle(pdf, title, semester)
		e.writeGrid(pdf, bySemester[semester])
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) writeTitle(pdf *gofpdf.Fpdf, title, semester string) {
	heading := title
	if semester != "" {
		heading = fmt.Sprintf("%s - %s", title, semester)
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, heading, "", 1, "C", false, 0, "")
	pdf.Ln(2)
}

func (e *PDFExporter) writeGrid(pdf *gofpdf.Fpdf, cells map[[2]int][]scheduler.Assignment) {
	// Row height fits the busiest period of the semester
	maxSessions := 1
	for _, sessions := range cells {
		maxSessions = max(maxSessions, len(sessions))
	}
	rowHeight := float64(maxSessions) * 3 * pdfLineHeight

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(pdfLabelWidth, pdfHeadHeight, "", "1", 0, "C", true, 0, "")
	for _, day := range scheduler.DayNames {
		pdf.CellFormat(pdfCellWidth, pdfHeadHeight, day, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	for t := 0; t < scheduler.TimesPerDay; t++ {
		x, y := pdf.GetXY()
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(pdfLabelWidth, rowHeight, scheduler.TimeLabels[t], "1", 0, "C", true, 0, "")

		pdf.SetFont("Arial", "", 8)
		for d := 0; d < scheduler.Days; d++ {
			cellX := x + pdfLabelWidth + float64(d)*pdfCellWidth
			pdf.Rect(cellX, y, pdfCellWidth, rowHeight, "D")

			lineY := y
			for _, a := range cells[[2]int{d, t}] {
				for _, line := range []string{a.Subject.Name, a.Slot.Room, a.Subject.Teacher} {
					pdf.SetXY(cellX+1, lineY)
					pdf.CellFormat(pdfCellWidth-2, pdfLineHeight, line, "", 0, "L", false, 0, "")
					lineY += pdfLineHeight
				}
			}
		}
		pdf.SetXY(x, y+rowHeight)
	}
}

func groupBySemester(assignments []scheduler.Assignment) map[string]map[[2]int][]scheduler.Assignment {
	grouped := make(map[string]map[[2]int][]scheduler.Assignment)
	for _, a := range assignments {
		if grouped[a.Subject.Semester] == nil {
			grouped[a.Subject.Semester] = make(map[[2]int][]scheduler.Assignment)
		}
		key := [2]int{a.Slot.Day, a.Slot.Time}
		grouped[a.Subject.Semester][key] = append(grouped[a.Subject.Semester][key], a)
	}
	return grouped
}
