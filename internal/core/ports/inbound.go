package ports

import (
	"context"
	"io"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

// HazardExtractionService extracts GHS hazard data and stores it per chemical.
type HazardExtractionService interface {
	Preview(text string) domain.HazardInfo
	ExtractAndStore(ctx context.Context, cas, text string) (*domain.GHSClassification, error)
	ExtractAndStoreFromSDS(ctx context.Context, cas string) (*domain.GHSClassification, error)
	StoreManual(ctx context.Context, cas string, info domain.HazardInfo) (*domain.GHSClassification, error)
	Latest(ctx context.Context, cas string) (*domain.GHSClassification, error)
}

// NFPAService exposes the GHS to NFPA translation.
type NFPAService interface {
	Categories() []string
	Translate(category string, flashPointF, boilingPointF *float64) domain.NFPARating
	RateChemical(ctx context.Context, cas, category string) (domain.NFPARating, error)
}

// SDSIngestor is the inbound contract for SDS upload orchestration.
type SDSIngestor interface {
	Upload(ctx context.Context, cas, filename string, body io.Reader) (*domain.SDSFile, error)
}

// HazardReporter writes the hazard register report.
type HazardReporter interface {
	WriteRegister(ctx context.Context, w io.Writer) error
}

// ChemicalStore is the read/write model for chemical master data.
type ChemicalStore interface {
	GetByCAS(ctx context.Context, cas string) (*domain.Chemical, error)
	Upsert(ctx context.Context, chem *domain.Chemical) error
}
