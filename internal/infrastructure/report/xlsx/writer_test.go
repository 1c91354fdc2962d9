package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

func TestWriteRegisterProducesReadableWorkbook(t *testing.T) {
	fp := -4.0
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []domain.HazardRegisterRow{
		{
			CASNumber:        "67-64-1",
			Name:             "Acetone",
			HazardClass:      "Category 2",
			FlashPointF:      &fp,
			SignalWord:       domain.SignalDanger,
			Pictograms:       []string{"GHS02", "GHS07"},
			HazardStatements: []string{"H225", "H319"},
			ClassifiedAt:     &at,
			NFPA:             domain.NFPARating{NFPAClass: "Class IB", Flammability: 3, FireCodeType: "Flammable Liquid", Color: "#FFFF00"},
		},
		{CASNumber: "7732-18-5", Name: "Water", NFPA: domain.NFPARating{NFPAClass: "Not classified", Color: "#FFFFFF"}},
	}

	var buf bytes.Buffer
	if err := NewWriter().WriteRegister(&buf, rows); err != nil {
		t.Fatalf("WriteRegister() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(got))
	}
	if got[0][0] != "CAS Number" || got[1][0] != "67-64-1" || got[2][1] != "Water" {
		t.Fatalf("unexpected cells %v", got)
	}
	if got[1][6] != "GHS02, GHS07" || got[1][8] != "Class IB" || got[1][9] != "3" {
		t.Fatalf("unexpected acetone row %v", got[1])
	}
	if got[1][11] != "2026-03-01 10:00:00" {
		t.Fatalf("unexpected classified at %q", got[1][11])
	}
}

func TestWriteRegisterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWriter().WriteRegister(&buf, nil); err != nil {
		t.Fatalf("WriteRegister() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a workbook even without rows")
	}
}
