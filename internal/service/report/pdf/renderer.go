package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sustainamine/sustainamine/internal/service/report/types"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
)

// core fonts are cp1252, these runes have no glyph there
var asciiReplacer = strings.NewReplacer(
	"₂", "2",
	"—", "-",
	"–", "-",
	"≥", ">=",
	"≤", "<=",
)

type Renderer struct {
	// compress is turned off in tests to inspect the page content.
	compress bool
	now      func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{compress: true, now: time.Now}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatPDF
}

func (r *Renderer) ContentType() string {
	return "application/pdf"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetCreationDate(r.now())
	pdf.SetTitle(data.Title, false)
	pdf.SetCreator("sustainamine", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(asciiReplacer.Replace(s))
	}

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 12)
	pdf.CellFormat(0, 8, text(data.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.MultiCell(0, lineHeight, text(fieldBlock("Inputs:", data.Inputs)), "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, lineHeight, text(fieldBlock("Estimated outputs (illustrative):", data.Outputs)), "", "L", false)
	pdf.MultiCell(0, lineHeight, text(data.ByProduct+"\n"), "", "L", false)

	r.section(pdf, "Compliance flags")
	if len(data.ComplianceFlags) == 0 {
		pdf.MultiCell(0, lineHeight, "No compliance flags raised.", "", "L", false)
	}
	for _, f := range data.ComplianceFlags {
		pdf.MultiCell(0, lineHeight, text(fmt.Sprintf("[%s] %s: %s", f.Severity, f.Topic, f.Message)), "", "L", false)
	}

	r.section(pdf, "Recommendations")
	for _, rec := range data.Recommendations {
		pdf.MultiCell(0, lineHeight, text("- "+rec), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "I", 9)
	pdf.MultiCell(0, 5, text(data.Disclaimer), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF document: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *Renderer) section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 12)
}

func fieldBlock(heading string, fields []types.Field) string {
	var sb strings.Builder
	sb.WriteString(heading)
	sb.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&sb, "%s: %s\n", f.Label, f.Value)
	}
	return sb.String()
}
