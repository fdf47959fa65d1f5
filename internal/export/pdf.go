package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"advisor/internal/domain/session"
	"advisor/pkg/errors"
	"advisor/pkg/templates"
)

// RenderPDF renders the session's plan summaries as a PDF report: title
// page header, client information table, executive summary, then one
// section per selected plan, with a disclaimer footer on every page.
func RenderPDF(sess *session.Session) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Financial Planning Report", false)
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-20)
		pdf.SetDrawColor(49, 130, 206)
		left, _, right, _ := pdf.GetMargins()
		pageW, _ := pdf.GetPageSize()
		pdf.Line(left, pdf.GetY(), pageW-right, pdf.GetY())
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(113, 128, 150)
		pdf.CellFormat(0, 5, tr(disclaimer), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(0, 12, "Financial Planning Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(74, 85, 104)
	pdf.CellFormat(0, 8, "Generated on "+time.Now().Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	writeClientInfo(pdf, tr, sess)
	pdf.Ln(8)

	if summary, ok := sess.PlanSummaries[session.SummaryKey]; ok {
		writeSectionHeading(pdf, session.SummaryKey)
		writeSectionBody(pdf, tr, summary)
		pdf.AddPage()
	}

	for _, name := range planNames(sess) {
		writeSectionHeading(pdf, name)
		writeSectionBody(pdf, tr, sess.PlanSummaries[name])
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "render pdf")
	}
	return buf.Bytes(), nil
}

func writeClientInfo(pdf *fpdf.Fpdf, tr func(string) string, sess *session.Session) {
	writeSectionHeading(pdf, "Client Information")

	rows := [][2]string{
		{"Age", fmt.Sprintf("%d", sess.Profile.Age)},
		{"Annual Income", templates.FormatMoney(sess.Profile.AnnualIncome)},
		{"Current Savings", templates.FormatMoney(sess.Profile.Savings)},
		{"Goals", strings.Join(sess.SelectedPlans, ", ")},
	}

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(226, 232, 240)
	for _, row := range rows {
		pdf.SetFillColor(248, 249, 250)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(50, 9, tr(row[0]), "1", 0, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, tr(row[1]), "1", 1, "L", false, 0, "")
	}
}

func writeSectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(45, 55, 72)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

// writeSectionBody emits cleaned summary text line by line: bullets are
// indented, lines carrying dollar or percent figures render bold.
func writeSectionBody(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetTextColor(45, 55, 72)
	for _, line := range cleanLines(text) {
		switch {
		case isBullet(line):
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 6, tr("- "+bulletText(line)), "", "L", false)
		case strings.ContainsAny(line, "$%"):
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, tr(line), "", "L", false)
		}
	}
}
