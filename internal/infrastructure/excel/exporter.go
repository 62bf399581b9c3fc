// Package excel genera exportaciones .xlsx con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/fletes-api/internal/application/billing"
)

var _ billing.SpreadsheetExporter = (*Exporter)(nil)

const (
	numFmtMonto = 4 // #,##0.00
	anchoMinimo = 12
	anchoMaximo = 48
)

// Exporter escribe un libro de una sola hoja: fila de encabezados en negrita y congelada,
// montos (float64) con formato de dos decimales.
type Exporter struct{}

func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) Export(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("nombrar hoja: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
	})
	if err != nil {
		return nil, err
	}
	montoStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMonto})
	if err != nil {
		return nil, err
	}

	anchos := make([]int, len(headers))
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
		anchos[i] = max(anchoMinimo, len(h)+2)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("escribir encabezados: %w", err)
	}
	if len(headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("escribir fila %d: %w", r+2, err)
		}
		for c, v := range row {
			if c < len(anchos) {
				anchos[c] = min(anchoMaximo, max(anchos[c], len(fmt.Sprint(v))+2))
			}
			if _, ok := v.(float64); !ok {
				continue
			}
			name, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellStyle(sheet, name, name, montoStyle); err != nil {
				return nil, err
			}
		}
	}

	for i, w := range anchos {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(w)); err != nil {
			return nil, err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
