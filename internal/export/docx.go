package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fumiama/go-docx"

	"advisor/internal/domain/session"
	"advisor/pkg/errors"
	"advisor/pkg/templates"
)

// Font sizes are in half-points, colors are hex RGB.
const (
	docxTitleSize   = "40"
	docxHeadingSize = "30"
	docxBodySize    = "22"

	colorNavy  = "1A365D"
	colorSlate = "2D3748"
	colorGray  = "4A5568"
	colorBlue  = "3182CE"
)

// RenderDOCX renders the session's plan summaries as a Word document with
// the same structure as the PDF report.
func RenderDOCX(sess *session.Session) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	title := doc.AddParagraph().Justification("center")
	title.AddText("Financial Planning Report").Size(docxTitleSize).Color(colorNavy).Bold()

	subtitle := doc.AddParagraph().Justification("center")
	subtitle.AddText("Generated on " + time.Now().Format("January 2, 2006")).Size(docxBodySize).Color(colorGray)

	doc.AddParagraph()
	writeDocxHeading(doc, "Client Information")

	rows := [][2]string{
		{"Age", fmt.Sprintf("%d", sess.Profile.Age)},
		{"Annual Income", templates.FormatMoney(sess.Profile.AnnualIncome)},
		{"Current Savings", templates.FormatMoney(sess.Profile.Savings)},
	}
	for _, row := range rows {
		p := doc.AddParagraph()
		p.AddText(row[0] + ": ").Size(docxBodySize).Bold()
		run := p.AddText(row[1]).Size(docxBodySize)
		if strings.HasPrefix(row[1], "$") {
			run.Color(colorBlue)
		}
	}

	if len(sess.SelectedPlans) > 0 {
		goals := doc.AddParagraph()
		goals.AddText("Goals: ").Size(docxBodySize).Bold()
		goals.AddText(strings.Join(sess.SelectedPlans, ", ")).Size(docxBodySize).Italic()
	}

	doc.AddParagraph()

	if summary, ok := sess.PlanSummaries[session.SummaryKey]; ok {
		writeDocxHeading(doc, session.SummaryKey)
		writeDocxSection(doc, summary)
		doc.AddParagraph()
	}

	for _, name := range planNames(sess) {
		writeDocxHeading(doc, name)
		writeDocxSection(doc, sess.PlanSummaries[name])
		doc.AddParagraph()
	}

	footer := doc.AddParagraph().Justification("center")
	footer.AddText(disclaimer).Size("18").Color(colorGray).Italic()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "render docx")
	}
	return buf.Bytes(), nil
}

func writeDocxHeading(doc *docx.Docx, title string) {
	p := doc.AddParagraph()
	p.AddText(title).Size(docxHeadingSize).Color(colorSlate).Bold()
}

// writeDocxSection emits cleaned summary text: bullets keep their marker,
// short colon-terminated lines become subheadings, and lines carrying
// dollar or percent figures render bold in blue.
func writeDocxSection(doc *docx.Docx, text string) {
	for _, line := range cleanLines(text) {
		p := doc.AddParagraph()
		switch {
		case isBullet(line):
			p.AddText("• " + bulletText(line)).Size(docxBodySize)
		case strings.HasSuffix(line, ":") && len(strings.Fields(line)) <= 5:
			p.AddText(line).Size("24").Color(colorBlue).Bold()
		case strings.ContainsAny(line, "$%"):
			p.AddText(line).Size(docxBodySize).Color(colorBlue).Bold()
		default:
			p.AddText(line).Size(docxBodySize)
		}
	}
}
