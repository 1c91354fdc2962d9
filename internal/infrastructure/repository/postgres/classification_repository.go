package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
)

type ClassificationRepository struct {
	db *sql.DB
}

func NewClassificationRepository(db *sql.DB) *ClassificationRepository {
	return &ClassificationRepository{db: db}
}

func (r *ClassificationRepository) FindChemicalIDByCAS(ctx context.Context, cas string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM chemicals WHERE cas_number = $1`, cas).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.WrapError(domain.ErrChemicalNotFound, "find chemical", fmt.Errorf("cas=%s", cas))
		}
		return 0, fmt.Errorf("find chemical id: %w", err)
	}
	return id, nil
}

// ReplaceClassification deletes any stored record for the chemical and
// inserts cls in one transaction. The chemical row is locked first so that
// concurrent replaces for one chemical serialize and the last commit wins.
func (r *ClassificationRepository) ReplaceClassification(ctx context.Context, chemicalID int64, cls domain.GHSClassification) (int64, error) {
	lists, err := encodeLists(cls.Hazard)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var locked int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM chemicals WHERE id = $1 FOR UPDATE`, chemicalID).Scan(&locked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.WrapError(domain.ErrChemicalNotFound, "replace classification", fmt.Errorf("chemical_id=%d", chemicalID))
		}
		return 0, fmt.Errorf("lock chemical: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ghs_classifications WHERE chemical_id = $1`, chemicalID); err != nil {
		return 0, fmt.Errorf("delete previous classification: %w", err)
	}

	h := cls.Hazard
	var id int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO ghs_classifications (
	chemical_id, signal_word, hazard_statements, precautionary_statements, pictograms, hazard_classes,
	flammable, explosive, oxidizing, toxic, corrosive,
	acute_toxicity, serious_eye_damage, skin_corrosion, reproductive_toxicity,
	carcinogenicity, germ_cell_mutagenicity, respiratory_sensitization, aquatic_toxicity,
	classification_source, classified_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
RETURNING id
`,
		chemicalID, h.SignalWord, lists[0], lists[1], lists[2], lists[3],
		h.Flammable, h.Explosive, h.Oxidizing, h.Toxic, h.Corrosive,
		h.AcuteToxicity, h.SeriousEyeDamage, h.SkinCorrosion, h.ReproductiveToxicity,
		h.Carcinogenicity, h.GermCellMutagenicity, h.RespiratorySensitization, h.AquaticToxicity,
		cls.Source, cls.ClassifiedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert classification: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace tx: %w", err)
	}
	return id, nil
}

func (r *ClassificationRepository) LatestClassification(ctx context.Context, chemicalID int64) (*domain.GHSClassification, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, chemical_id, signal_word, hazard_statements, precautionary_statements, pictograms, hazard_classes,
	flammable, explosive, oxidizing, toxic, corrosive,
	acute_toxicity, serious_eye_damage, skin_corrosion, reproductive_toxicity,
	carcinogenicity, germ_cell_mutagenicity, respiratory_sensitization, aquatic_toxicity,
	classification_source, classified_at
FROM ghs_classifications
WHERE chemical_id = $1
ORDER BY classified_at DESC
LIMIT 1
`, chemicalID)

	var cls domain.GHSClassification
	var raw [4][]byte
	h := &cls.Hazard
	err := row.Scan(
		&cls.ID, &cls.ChemicalID, &h.SignalWord, &raw[0], &raw[1], &raw[2], &raw[3],
		&h.Flammable, &h.Explosive, &h.Oxidizing, &h.Toxic, &h.Corrosive,
		&h.AcuteToxicity, &h.SeriousEyeDamage, &h.SkinCorrosion, &h.ReproductiveToxicity,
		&h.Carcinogenicity, &h.GermCellMutagenicity, &h.RespiratorySensitization, &h.AquaticToxicity,
		&cls.Source, &cls.ClassifiedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrClassificationNotFound, "latest classification", fmt.Errorf("chemical_id=%d", chemicalID))
		}
		return nil, fmt.Errorf("scan classification: %w", err)
	}

	targets := [4]*[]string{&h.HazardStatements, &h.PrecautionaryStatements, &h.Pictograms, &h.HazardClasses}
	for i, target := range targets {
		if *target, err = decodeList(raw[i]); err != nil {
			return nil, fmt.Errorf("decode classification lists: %w", err)
		}
	}
	return &cls, nil
}

func encodeLists(h domain.HazardInfo) ([4][]byte, error) {
	var out [4][]byte
	for i, list := range [][]string{h.HazardStatements, h.PrecautionaryStatements, h.Pictograms, h.HazardClasses} {
		raw, err := json.Marshal(domain.NormalizeHazardList(list))
		if err != nil {
			return out, fmt.Errorf("marshal hazard list: %w", err)
		}
		out[i] = raw
	}
	return out, nil
}

// decodeList accepts every shape older rows may hold: a JSON array, a JSON
// string carrying an encoded array, or a comma-joined string.
func decodeList(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var list domain.HazardList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return domain.NormalizeHazardList(list), nil
}
