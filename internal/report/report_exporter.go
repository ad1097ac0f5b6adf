package report

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Exporter renders a report as an .xlsx workbook.
type Exporter interface {
	Hiring(r HiringReport) ([]byte, error)
	MonthlyPay(r MonthlyPayReport) ([]byte, error)
}

type column struct {
	header string
	width  float64
}

type xlsxExporter struct{}

func NewExporter() Exporter {
	return xlsxExporter{}
}

func (xlsxExporter) Hiring(r HiringReport) ([]byte, error) {
	cols := []column{
		{"Employee #", 14}, {"Name", 28}, {"Email", 32}, {"Hire Date", 12},
		{"Status", 12}, {"Division", 22}, {"Job Title", 26},
	}
	rows := make([][]any, len(r.Rows))
	for i, h := range r.Rows {
		rows[i] = []any{h.EmployeeNumber, h.Name, h.Email, h.HireDate, h.Status, h.Division, h.JobTitle}
	}
	title := fmt.Sprintf("Hires %s to %s", r.Start, r.End)
	return writeSheet("Hiring", title, cols, rows, nil)
}

func (xlsxExporter) MonthlyPay(r MonthlyPayReport) ([]byte, error) {
	label := "Division"
	if r.GroupBy == ByJobTitle {
		label = "Job Title"
	}
	cols := []column{{label, 28}, {"Employees", 12}, {"Gross Pay", 16}, {"Net Pay", 16}}

	rows := make([][]any, len(r.Rows))
	for i, p := range r.Rows {
		rows[i] = []any{p.Group, p.Employees, amountCell(p.GrossPay), amountCell(p.NetPay)}
	}
	total := []any{"Total", nil, amountCell(r.TotalGross), amountCell(r.TotalNet)}
	title := fmt.Sprintf("Monthly pay by %s, %s", label, r.Month)
	return writeSheet("Monthly Pay", title, cols, rows, total)
}

// amountCell keeps money numeric in the sheet so it can be summed.
func amountCell(v string) any {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return v
	}
	return d.InexactFloat64()
}

func writeSheet(sheet, title string, cols []column, rows [][]any, footer []any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}
	_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	for i, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		if err := f.SetCellValue(sheet, cell, c.header); err != nil {
			return nil, err
		}
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, name, name, c.width)
	}

	if footer != nil {
		rows = append(rows, footer)
	}
	for r, values := range rows {
		for c, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+4)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
			if _, ok := v.(float64); ok {
				_ = f.SetCellStyle(sheet, cell, cell, moneyStyle)
			}
		}
	}

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
