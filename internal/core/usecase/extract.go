package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ghs"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

type HazardExtractionUseCase struct {
	classifications ports.HazardClassificationRepository
	sdsFiles        ports.SDSFileRepository
	textSource      ports.DocumentTextSource
	now             func() time.Time
}

func NewHazardExtractionUseCase(
	classifications ports.HazardClassificationRepository,
	sdsFiles ports.SDSFileRepository,
	textSource ports.DocumentTextSource,
) *HazardExtractionUseCase {
	return &HazardExtractionUseCase{
		classifications: classifications,
		sdsFiles:        sdsFiles,
		textSource:      textSource,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Preview extracts hazard data from text without touching storage.
func (uc *HazardExtractionUseCase) Preview(text string) domain.HazardInfo {
	return ghs.Extract(text)
}

// ExtractAndStore extracts hazard data from text and replaces the stored
// classification of the chemical identified by cas.
func (uc *HazardExtractionUseCase) ExtractAndStore(ctx context.Context, cas, text string) (*domain.GHSClassification, error) {
	info := ghs.Extract(text)
	chemicalID, err := uc.resolveChemical(ctx, cas)
	if err != nil {
		return nil, err
	}
	return uc.replace(ctx, chemicalID, info, domain.SourceTextExtraction)
}

// ExtractAndStoreFromSDS reads the chemical's latest SDS and stores the
// extracted hazard data.
func (uc *HazardExtractionUseCase) ExtractAndStoreFromSDS(ctx context.Context, cas string) (*domain.GHSClassification, error) {
	chemicalID, err := uc.resolveChemical(ctx, cas)
	if err != nil {
		return nil, err
	}

	sds, err := uc.sdsFiles.LatestSDSFile(ctx, chemicalID)
	if err != nil {
		return nil, fmt.Errorf("load latest sds: %w", err)
	}

	text, err := uc.textSource.ExtractText(ctx, sds.FilePath)
	if err != nil {
		if !domain.IsKind(err, domain.ErrSourceUnavailable) {
			err = domain.WrapError(domain.ErrSourceUnavailable, "extract sds text", err)
		}
		return nil, err
	}

	return uc.replace(ctx, chemicalID, ghs.Extract(text), domain.SourcePDFExtraction)
}

// StoreManual stores a caller-supplied record with the same replace semantics.
func (uc *HazardExtractionUseCase) StoreManual(ctx context.Context, cas string, info domain.HazardInfo) (*domain.GHSClassification, error) {
	if info.SignalWord != "" && info.SignalWord != domain.SignalDanger && info.SignalWord != domain.SignalWarning {
		return nil, domain.WrapError(domain.ErrInvalidInput, "store manual classification",
			fmt.Errorf("signal word must be %s or %s, got %q", domain.SignalDanger, domain.SignalWarning, info.SignalWord))
	}
	info.HazardStatements = domain.NormalizeHazardList(info.HazardStatements)
	info.PrecautionaryStatements = domain.NormalizeHazardList(info.PrecautionaryStatements)
	info.Pictograms = domain.NormalizeHazardList(info.Pictograms)
	info.HazardClasses = domain.NormalizeHazardList(info.HazardClasses)

	chemicalID, err := uc.resolveChemical(ctx, cas)
	if err != nil {
		return nil, err
	}
	return uc.replace(ctx, chemicalID, info, domain.SourceManual)
}

func (uc *HazardExtractionUseCase) Latest(ctx context.Context, cas string) (*domain.GHSClassification, error) {
	chemicalID, err := uc.resolveChemical(ctx, cas)
	if err != nil {
		return nil, err
	}
	cls, err := uc.classifications.LatestClassification(ctx, chemicalID)
	if err != nil {
		return nil, fmt.Errorf("load classification: %w", err)
	}
	return cls, nil
}

func (uc *HazardExtractionUseCase) resolveChemical(ctx context.Context, cas string) (int64, error) {
	cas = strings.TrimSpace(cas)
	if cas == "" {
		return 0, domain.WrapError(domain.ErrInvalidInput, "resolve chemical", fmt.Errorf("cas number is required"))
	}
	id, err := uc.classifications.FindChemicalIDByCAS(ctx, cas)
	if err != nil {
		return 0, fmt.Errorf("find chemical %s: %w", cas, err)
	}
	return id, nil
}

func (uc *HazardExtractionUseCase) replace(ctx context.Context, chemicalID int64, info domain.HazardInfo, source string) (*domain.GHSClassification, error) {
	cls := domain.GHSClassification{
		ChemicalID:   chemicalID,
		Hazard:       info,
		Source:       source,
		ClassifiedAt: uc.now(),
	}
	id, err := uc.classifications.ReplaceClassification(ctx, chemicalID, cls)
	if err != nil {
		return nil, fmt.Errorf("replace classification: %w", err)
	}
	cls.ID = id
	return &cls, nil
}
