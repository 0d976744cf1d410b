package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cv-builder/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

const cvColumns = `id, owner_id, title, template_id, document, pdf_path, created_at, updated_at`

type CVRepo struct {
	db DBTX
}

func NewCVRepo(db DBTX) *CVRepo {
	return &CVRepo{db: db}
}

func (r *CVRepo) Create(ctx context.Context, rec *domain.CVRecord) error {
	doc, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO cvs (`+cvColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		rec.ID, rec.OwnerID, rec.Title, rec.TemplateID, doc, rec.PDFPath, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert cv: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Get returns the CV when it exists and belongs to owner.
func (r *CVRepo) Get(ctx context.Context, owner, id uuid.UUID) (*domain.CVRecord, error) {
	var (
		rec domain.CVRecord
		doc []byte
	)
	err := r.db.QueryRow(ctx, `SELECT `+cvColumns+` FROM cvs WHERE id = $1 AND owner_id = $2`, id, owner).
		Scan(&rec.ID, &rec.OwnerID, &rec.Title, &rec.TemplateID, &doc, &rec.PDFPath, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("cv %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: select cv: %v", domain.ErrPersistence, err)
	}
	if err := json.Unmarshal(doc, &rec.Document); err != nil {
		return nil, fmt.Errorf("decode document of cv %s: %w", id, err)
	}
	return &rec, nil
}

// Save overwrites title, template and document of an owned CV.
func (r *CVRepo) Save(ctx context.Context, rec *domain.CVRecord) error {
	doc, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tag, err := r.db.Exec(ctx, `UPDATE cvs SET title = $3, template_id = $4, document = $5, updated_at = $6
		WHERE id = $1 AND owner_id = $2`,
		rec.ID, rec.OwnerID, rec.Title, rec.TemplateID, doc, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: update cv: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cv %s: %w", rec.ID, domain.ErrNotFound)
	}
	return nil
}

// List returns the owner's CVs, most recently updated first.
func (r *CVRepo) List(ctx context.Context, owner uuid.UUID) ([]domain.CVSummary, error) {
	out := []domain.CVSummary{}
	err := queryJSON(ctx, r.db, &out, `SELECT coalesce(json_agg(json_build_object(
			'id', c.id, 'title', c.title, 'template_id', c.template_id, 'updated_at', c.updated_at
		) ORDER BY c.updated_at DESC), '[]') FROM cvs c WHERE c.owner_id = $1`, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: list cvs: %v", domain.ErrPersistence, err)
	}
	return out, nil
}

func (r *CVRepo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1 AND owner_id = $2`, id, owner)
	if err != nil {
		return fmt.Errorf("%w: delete cv: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cv %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *CVRepo) SetPDFPath(ctx context.Context, owner, id uuid.UUID, path string) error {
	tag, err := r.db.Exec(ctx, `UPDATE cvs SET pdf_path = $3 WHERE id = $1 AND owner_id = $2`, id, owner, path)
	if err != nil {
		return fmt.Errorf("%w: update pdf path: %v", domain.ErrPersistence, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cv %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
