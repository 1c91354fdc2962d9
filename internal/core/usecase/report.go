package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

type HazardReportUseCase struct {
	chemicals ports.ChemicalRepository
	rater     *NFPAUseCase
	writer    ports.HazardRegisterWriter
}

func NewHazardReportUseCase(
	chemicals ports.ChemicalRepository,
	rater *NFPAUseCase,
	writer ports.HazardRegisterWriter,
) *HazardReportUseCase {
	return &HazardReportUseCase{
		chemicals: chemicals,
		rater:     rater,
		writer:    writer,
	}
}

func (uc *HazardReportUseCase) Rows(ctx context.Context) ([]domain.HazardRegisterRow, error) {
	entries, err := uc.chemicals.ListHazardRegister(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hazard register: %w", err)
	}

	rows := make([]domain.HazardRegisterRow, 0, len(entries))
	for i := range entries {
		chem := entries[i].Chemical
		row := domain.HazardRegisterRow{
			CASNumber:        chem.CASNumber,
			Name:             chem.Name,
			HazardClass:      chem.HazardClass,
			FlashPointF:      chem.FlashPointF,
			BoilingPointF:    chem.BoilingPointF,
			Pictograms:       []string{},
			HazardStatements: []string{},
			NFPA:             uc.rater.RateLoaded(&chem, ""),
		}
		if cls := entries[i].Classification; cls != nil {
			row.SignalWord = cls.Hazard.SignalWord
			row.Pictograms = domain.NormalizeHazardList(cls.Hazard.Pictograms)
			row.HazardStatements = domain.NormalizeHazardList(cls.Hazard.HazardStatements)
			classifiedAt := cls.ClassifiedAt
			row.ClassifiedAt = &classifiedAt
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (uc *HazardReportUseCase) WriteRegister(ctx context.Context, w io.Writer) error {
	rows, err := uc.Rows(ctx)
	if err != nil {
		return err
	}
	if err := uc.writer.WriteRegister(w, rows); err != nil {
		return fmt.Errorf("render hazard register: %w", err)
	}
	return nil
}
