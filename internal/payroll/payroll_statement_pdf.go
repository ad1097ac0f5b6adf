package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

type statementRow struct {
	Label string
	Value string
	Bold  bool
}

const (
	pageWidth   = 612
	pageHeight  = 792
	leftMargin  = 56
	valueColumn = 360
	rowHeight   = 18
)

// renderStatementPDF lays out a single US-letter page: a title followed by
// label/value rows. It writes the objects and xref table directly so no
// external renderer is needed.
func renderStatementPDF(title string, rows []statementRow) []byte {
	var content strings.Builder
	y := pageHeight - 72
	fmt.Fprintf(&content, "BT /F2 16 Tf %d %d Td (%s) Tj ET\n", leftMargin, y, pdfEscape(title))
	y -= 2 * rowHeight

	for _, row := range rows {
		if row.Label == "" && row.Value == "" {
			y -= rowHeight / 2
			continue
		}
		font := "/F1"
		if row.Bold {
			font = "/F2"
		}
		fmt.Fprintf(&content, "BT %s 11 Tf %d %d Td (%s) Tj ET\n", font, leftMargin, y, pdfEscape(row.Label))
		if row.Value != "" {
			fmt.Fprintf(&content, "BT %s 11 Tf %d %d Td (%s) Tj ET\n", font, valueColumn, y, pdfEscape(row.Value))
		}
		y -= rowHeight
	}

	stream := content.String()
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] "+
			"/Resources << /Font << /F1 4 0 R /F2 5 0 R >> >> /Contents 6 0 R >>", pageWidth, pageHeight),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

func pdfEscape(v string) string {
	return strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`).Replace(v)
}
