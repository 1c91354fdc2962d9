package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

type SDSFileRepository struct {
	db *sql.DB
}

func NewSDSFileRepository(db *sql.DB) *SDSFileRepository {
	return &SDSFileRepository{db: db}
}

func (r *SDSFileRepository) CreateSDSFile(ctx context.Context, file *domain.SDSFile) error {
	err := r.db.QueryRowContext(ctx, `
INSERT INTO sds_files (chemical_id, file_name, file_path, file_size, checksum, source, uploaded_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id
`, file.ChemicalID, file.FileName, file.FilePath, file.FileSize, file.Checksum, file.Source, file.UploadedAt).Scan(&file.ID)
	if err != nil {
		return fmt.Errorf("insert sds file: %w", err)
	}
	return nil
}

func (r *SDSFileRepository) LatestSDSFile(ctx context.Context, chemicalID int64) (*domain.SDSFile, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, chemical_id, file_name, file_path, file_size, checksum, source, uploaded_at
FROM sds_files
WHERE chemical_id = $1
ORDER BY uploaded_at DESC, id DESC
LIMIT 1
`, chemicalID)

	var file domain.SDSFile
	err := row.Scan(&file.ID, &file.ChemicalID, &file.FileName, &file.FilePath, &file.FileSize, &file.Checksum, &file.Source, &file.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrSDSNotFound, "latest sds file", fmt.Errorf("chemical_id=%d", chemicalID))
		}
		return nil, fmt.Errorf("scan sds file: %w", err)
	}
	return &file, nil
}
