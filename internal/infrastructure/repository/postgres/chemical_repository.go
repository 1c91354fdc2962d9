package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

type ChemicalRepository struct {
	db *sql.DB
}

func NewChemicalRepository(db *sql.DB) *ChemicalRepository {
	return &ChemicalRepository{db: db}
}

func (r *ChemicalRepository) GetByCAS(ctx context.Context, cas string) (*domain.Chemical, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, cas_number, name, molecular_formula, hazard_class, flash_point_f, boiling_point_f, created_at, updated_at
FROM chemicals
WHERE cas_number = $1
`, cas)

	var chem domain.Chemical
	var flash, boil sql.NullFloat64
	err := row.Scan(
		&chem.ID, &chem.CASNumber, &chem.Name, &chem.MolecularFormula, &chem.HazardClass,
		&flash, &boil, &chem.CreatedAt, &chem.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrChemicalNotFound, "get chemical", fmt.Errorf("cas=%s", cas))
		}
		return nil, fmt.Errorf("scan chemical: %w", err)
	}
	chem.FlashPointF = floatPtr(flash)
	chem.BoilingPointF = floatPtr(boil)
	return &chem, nil
}

func (r *ChemicalRepository) Upsert(ctx context.Context, chem *domain.Chemical) error {
	now := time.Now().UTC()
	row := r.db.QueryRowContext(ctx, `
INSERT INTO chemicals (
	cas_number, name, molecular_formula, hazard_class, flash_point_f, boiling_point_f, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
ON CONFLICT (cas_number) DO UPDATE SET
	name = EXCLUDED.name,
	molecular_formula = EXCLUDED.molecular_formula,
	hazard_class = EXCLUDED.hazard_class,
	flash_point_f = EXCLUDED.flash_point_f,
	boiling_point_f = EXCLUDED.boiling_point_f,
	updated_at = EXCLUDED.updated_at
RETURNING id, created_at, updated_at
`, chem.CASNumber, chem.Name, chem.MolecularFormula, chem.HazardClass, chem.FlashPointF, chem.BoilingPointF, now)

	if err := row.Scan(&chem.ID, &chem.CreatedAt, &chem.UpdatedAt); err != nil {
		return fmt.Errorf("upsert chemical: %w", err)
	}
	return nil
}

// ListHazardRegister returns every chemical ordered by CAS number together
// with its stored classification summary, if any.
func (r *ChemicalRepository) ListHazardRegister(ctx context.Context) ([]domain.HazardRegisterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.cas_number, c.name, c.molecular_formula, c.hazard_class, c.flash_point_f, c.boiling_point_f,
	c.created_at, c.updated_at,
	g.id, g.signal_word, g.pictograms, g.hazard_statements, g.classification_source, g.classified_at
FROM chemicals c
LEFT JOIN ghs_classifications g ON g.chemical_id = c.id
ORDER BY c.cas_number
`)
	if err != nil {
		return nil, fmt.Errorf("list hazard register: %w", err)
	}
	defer rows.Close()

	out := make([]domain.HazardRegisterEntry, 0)
	for rows.Next() {
		var (
			entry        domain.HazardRegisterEntry
			flash, boil  sql.NullFloat64
			clsID        sql.NullInt64
			signalWord   sql.NullString
			source       sql.NullString
			classifiedAt sql.NullTime
			pictograms   []byte
			statements   []byte
		)
		chem := &entry.Chemical
		err := rows.Scan(
			&chem.ID, &chem.CASNumber, &chem.Name, &chem.MolecularFormula, &chem.HazardClass, &flash, &boil,
			&chem.CreatedAt, &chem.UpdatedAt,
			&clsID, &signalWord, &pictograms, &statements, &source, &classifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hazard register row: %w", err)
		}
		chem.FlashPointF = floatPtr(flash)
		chem.BoilingPointF = floatPtr(boil)

		if clsID.Valid {
			cls := &domain.GHSClassification{
				ID:           clsID.Int64,
				ChemicalID:   chem.ID,
				Source:       source.String,
				ClassifiedAt: classifiedAt.Time,
			}
			cls.Hazard.SignalWord = signalWord.String
			if cls.Hazard.Pictograms, err = decodeList(pictograms); err != nil {
				return nil, fmt.Errorf("decode pictograms: %w", err)
			}
			if cls.Hazard.HazardStatements, err = decodeList(statements); err != nil {
				return nil, fmt.Errorf("decode hazard statements: %w", err)
			}
			entry.Classification = cls
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hazard register: %w", err)
	}
	return out, nil
}
