package ports

import (
	"context"
	"io"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

// ChemicalRepository persists chemical master data.
type ChemicalRepository interface {
	GetByCAS(ctx context.Context, cas string) (*domain.Chemical, error)
	Upsert(ctx context.Context, chem *domain.Chemical) error
	ListHazardRegister(ctx context.Context) ([]domain.HazardRegisterEntry, error)
}

// HazardClassificationRepository stores one GHS classification per chemical.
// ReplaceClassification deletes the previous record and inserts the new one
// in a single transaction.
type HazardClassificationRepository interface {
	FindChemicalIDByCAS(ctx context.Context, cas string) (int64, error)
	ReplaceClassification(ctx context.Context, chemicalID int64, cls domain.GHSClassification) (int64, error)
	LatestClassification(ctx context.Context, chemicalID int64) (*domain.GHSClassification, error)
}

// SDSFileRepository tracks uploaded safety data sheets.
type SDSFileRepository interface {
	CreateSDSFile(ctx context.Context, file *domain.SDSFile) error
	LatestSDSFile(ctx context.Context, chemicalID int64) (*domain.SDSFile, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes SDS upload events keyed by CAS number.
type MessageQueue interface {
	PublishSDSUploaded(ctx context.Context, cas string) error
	SubscribeSDSUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// DocumentTextSource returns the plain text of a stored document. It fails
// with domain.ErrSourceUnavailable when the document is missing or unreadable.
type DocumentTextSource interface {
	ExtractText(ctx context.Context, storageKey string) (string, error)
}

// HazardRegisterWriter renders report rows to an output format.
type HazardRegisterWriter interface {
	WriteRegister(w io.Writer, rows []domain.HazardRegisterRow) error
}
