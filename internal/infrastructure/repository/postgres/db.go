package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const schemaLockKey int64 = 2026101501

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, schemaLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS chemicals (
	id BIGSERIAL PRIMARY KEY,
	cas_number TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	molecular_formula TEXT NOT NULL DEFAULT '',
	hazard_class TEXT NOT NULL DEFAULT '',
	flash_point_f DOUBLE PRECISION,
	boiling_point_f DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS sds_files (
	id BIGSERIAL PRIMARY KEY,
	chemical_id BIGINT NOT NULL REFERENCES chemicals(id) ON DELETE CASCADE,
	file_name TEXT NOT NULL,
	file_path TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	checksum TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	uploaded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sds_files_chemical ON sds_files(chemical_id, uploaded_at DESC);

CREATE TABLE IF NOT EXISTS ghs_classifications (
	id BIGSERIAL PRIMARY KEY,
	chemical_id BIGINT NOT NULL UNIQUE REFERENCES chemicals(id) ON DELETE CASCADE,
	signal_word TEXT NOT NULL DEFAULT '',
	hazard_statements JSONB NOT NULL DEFAULT '[]'::jsonb,
	precautionary_statements JSONB NOT NULL DEFAULT '[]'::jsonb,
	pictograms JSONB NOT NULL DEFAULT '[]'::jsonb,
	hazard_classes JSONB NOT NULL DEFAULT '[]'::jsonb,
	flammable BOOLEAN NOT NULL DEFAULT FALSE,
	explosive BOOLEAN NOT NULL DEFAULT FALSE,
	oxidizing BOOLEAN NOT NULL DEFAULT FALSE,
	toxic BOOLEAN NOT NULL DEFAULT FALSE,
	corrosive BOOLEAN NOT NULL DEFAULT FALSE,
	acute_toxicity TEXT NOT NULL DEFAULT '',
	serious_eye_damage TEXT NOT NULL DEFAULT '',
	skin_corrosion TEXT NOT NULL DEFAULT '',
	reproductive_toxicity TEXT NOT NULL DEFAULT '',
	carcinogenicity TEXT NOT NULL DEFAULT '',
	germ_cell_mutagenicity TEXT NOT NULL DEFAULT '',
	respiratory_sensitization TEXT NOT NULL DEFAULT '',
	aquatic_toxicity TEXT NOT NULL DEFAULT '',
	classification_source TEXT NOT NULL,
	classified_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
