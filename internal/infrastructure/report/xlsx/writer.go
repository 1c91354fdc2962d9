package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

const SheetName = "Hazard Register"

var columns = []string{
	"CAS Number",
	"Name",
	"GHS Category",
	"Flash Point (°F)",
	"Boiling Point (°F)",
	"Signal Word",
	"Pictograms",
	"Hazard Statements",
	"NFPA Class",
	"NFPA Flammability",
	"Fire Code Type",
	"Classified At",
}

// flammabilityCol is the 1-based column of the NFPA Flammability cell.
const flammabilityCol = 10

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) WriteRegister(out io.Writer, rows []domain.HazardRegisterRow) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9D9D9"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	for i, title := range columns {
		if err := setCell(f, i+1, 1, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeaderCell(), header); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	ratingStyles := map[string]int{}
	for i, row := range rows {
		r := i + 2
		values := []any{
			row.CASNumber,
			row.Name,
			row.HazardClass,
			optionalFloat(row.FlashPointF),
			optionalFloat(row.BoilingPointF),
			row.SignalWord,
			strings.Join(row.Pictograms, ", "),
			strings.Join(row.HazardStatements, "\n"),
			row.NFPA.NFPAClass,
			row.NFPA.Flammability,
			row.NFPA.FireCodeType,
			"",
		}
		if row.ClassifiedAt != nil {
			values[len(values)-1] = row.ClassifiedAt.UTC().Format("2006-01-02 15:04:05")
		}
		for c, v := range values {
			if err := setCell(f, c+1, r, v); err != nil {
				return err
			}
		}

		style, err := ratingStyle(f, ratingStyles, row.NFPA.Color)
		if err != nil {
			return err
		}
		cell, _ := excelize.CoordinatesToCellName(flammabilityCol, r)
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("style rating cell: %w", err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}

// ratingStyle caches one fill style per NFPA color.
func ratingStyle(f *excelize.File, cache map[string]int, color string) (int, error) {
	if color == "" {
		color = "#808080"
	}
	if id, ok := cache[color]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("create rating style: %w", err)
	}
	cache[color] = id
	return id, nil
}

func lastHeaderCell() string {
	cell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	return cell
}

func optionalFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
