package db

import (
	"database/sql"
	_ "embed"
)

//go:embed seeds/templates.sql
var seedTemplatesSQL string

func MigrateUp(db *sql.DB) error {
	// pgvector is required: wardrobe item and slot embeddings are vector columns.
	if _, err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return err
	}

	// Note: vector(512) matches the CLIP image encoder output. The dimension
	// is fixed at the schema level; inserts with other dimensions fail early.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS wardrobe_items (
    id              UUID PRIMARY KEY,
    owner_id        UUID NOT NULL,
    embedding       vector(512) NOT NULL,
    clothing_type   VARCHAR(20) NOT NULL,
    style           VARCHAR(20) NOT NULL DEFAULT '',
    description     TEXT NOT NULL DEFAULT '',
    image_ref       TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS outfit_templates (
    id                 UUID PRIMARY KEY,
    style              VARCHAR(20) NOT NULL DEFAULT '',
    preview_image_ref  TEXT NOT NULL DEFAULT '',
    active             BOOLEAN NOT NULL DEFAULT TRUE,
    deactivated_reason TEXT
)`); err != nil {
		return err
	}

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS outfit_slots (
    id              UUID PRIMARY KEY,
    outfit_id       UUID NOT NULL REFERENCES outfit_templates(id) ON DELETE CASCADE,
    position        INT NOT NULL,
    clothing_type   VARCHAR(20) NOT NULL,
    embedding       vector(512) NOT NULL,
    external_url    TEXT,
    external_image  TEXT,
    external_label  TEXT,
    UNIQUE(outfit_id, position)
)`); err != nil {
		return err
	}

	indexes := []string{
		// Per-owner candidate partition scan: WHERE owner_id = $ AND clothing_type = $
		`CREATE INDEX IF NOT EXISTS idx_wardrobe_items_owner_type ON wardrobe_items(owner_id, clothing_type)`,
		// Slot loading for active templates
		`CREATE INDEX IF NOT EXISTS idx_outfit_slots_outfit_id ON outfit_slots(outfit_id)`,
		// Active catalog listing, optionally filtered by style
		`CREATE INDEX IF NOT EXISTS idx_outfit_templates_active ON outfit_templates(active) WHERE active = TRUE`,
		`CREATE INDEX IF NOT EXISTS idx_outfit_templates_style ON outfit_templates(style)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// IVFFlat index for cosine nearest-neighbour search.
	// Errors are ignored: building it needs table data on some pgvector
	// versions, and sequential scan stays correct without it.
	// lists=100 suits wardrobes well below 1M rows.
	_, _ = db.Exec(`
CREATE INDEX IF NOT EXISTS idx_wardrobe_items_embedding
    ON wardrobe_items USING ivfflat (embedding vector_cosine_ops)
    WITH (lists = 100)`)

	// Seed starter templates. Duplicates are skipped.
	if _, err := db.Exec(seedTemplatesSQL); err != nil {
		return err
	}

	return nil
}

// MigrateDown rolls back the database schema.
// Tables are dropped in reverse dependency order.
// Use with caution: this deletes all wardrobe and catalog data.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_wardrobe_items_embedding`,
		`DROP INDEX IF EXISTS idx_wardrobe_items_owner_type`,
		`DROP TABLE IF EXISTS outfit_slots CASCADE`,
		`DROP TABLE IF EXISTS outfit_templates CASCADE`,
		`DROP TABLE IF EXISTS wardrobe_items CASCADE`,
	}

	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// The vector extension is left installed: other schemas may depend on it.

	return nil
}
