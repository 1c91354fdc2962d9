package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/nfpa"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

type NFPAUseCase struct {
	translator *nfpa.Translator
	chemicals  ports.ChemicalRepository
}

func NewNFPAUseCase(translator *nfpa.Translator, chemicals ports.ChemicalRepository) *NFPAUseCase {
	return &NFPAUseCase{
		translator: translator,
		chemicals:  chemicals,
	}
}

func (uc *NFPAUseCase) Categories() []string {
	return uc.translator.Categories()
}

// Translate never fails: an unknown category or an unmatched property set
// yields the not-classified rating.
func (uc *NFPAUseCase) Translate(category string, flashPointF, boilingPointF *float64) domain.NFPARating {
	category = strings.TrimSpace(category)
	cls, ok := uc.translator.Translate(category, nfpa.Properties{
		FlashPointF:   flashPointF,
		BoilingPointF: boilingPointF,
	})
	if !ok {
		cls = nfpa.NotClassified()
	}
	return domain.NFPARating{
		Category:                category,
		FlashPointF:             flashPointF,
		BoilingPointF:           boilingPointF,
		Classified:              ok,
		NFPAClass:               cls.NFPAClass,
		Flammability:            cls.Flammability,
		FireCodeType:            cls.FireCodeType,
		FlashPointDescription:   cls.FlashPointDescription,
		BoilingPointDescription: cls.BoilingPointDescription,
		Color:                   nfpa.FlammabilityColor(cls.Flammability),
		Description:             nfpa.FlammabilityDescription(cls.Flammability),
	}
}

// RateChemical translates the stored properties of a chemical. An empty
// category falls back to the chemical's hazard class.
func (uc *NFPAUseCase) RateChemical(ctx context.Context, cas, category string) (domain.NFPARating, error) {
	chem, err := uc.chemicals.GetByCAS(ctx, strings.TrimSpace(cas))
	if err != nil {
		return domain.NFPARating{}, fmt.Errorf("load chemical: %w", err)
	}
	return uc.RateLoaded(chem, category), nil
}

func (uc *NFPAUseCase) RateLoaded(chem *domain.Chemical, category string) domain.NFPARating {
	if strings.TrimSpace(category) == "" {
		category = chem.HazardClass
	}
	return uc.Translate(category, chem.FlashPointF, chem.BoilingPointF)
}
