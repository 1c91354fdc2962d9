package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

type ChemicalUseCase struct {
	repo ports.ChemicalRepository
}

func NewChemicalUseCase(repo ports.ChemicalRepository) *ChemicalUseCase {
	return &ChemicalUseCase{repo: repo}
}

func (uc *ChemicalUseCase) GetByCAS(ctx context.Context, cas string) (*domain.Chemical, error) {
	cas = strings.TrimSpace(cas)
	if cas == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "get chemical", fmt.Errorf("cas number is required"))
	}
	return uc.repo.GetByCAS(ctx, cas)
}

func (uc *ChemicalUseCase) Upsert(ctx context.Context, chem *domain.Chemical) error {
	chem.CASNumber = strings.TrimSpace(chem.CASNumber)
	chem.Name = strings.TrimSpace(chem.Name)
	chem.HazardClass = strings.TrimSpace(chem.HazardClass)
	if chem.CASNumber == "" || chem.Name == "" {
		return domain.WrapError(domain.ErrInvalidInput, "upsert chemical", fmt.Errorf("cas number and name are required"))
	}
	if err := uc.repo.Upsert(ctx, chem); err != nil {
		return fmt.Errorf("upsert chemical: %w", err)
	}
	return nil
}
