package domain

import (
	"time"

	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// CVRecord is a stored CV owned by one user.
type CVRecord struct {
	ID         uuid.UUID        `json:"id"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	Title      string           `json:"title"`
	TemplateID int              `json:"template_id"`
	Document   model.CVDocument `json:"document"`
	PDFPath    string           `json:"pdf_path,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// CVSummary is the list view of a stored CV.
type CVSummary struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	TemplateID int       `json:"template_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Principal is the authenticated caller as read from the access token.
type Principal struct {
	UserID  uuid.UUID
	Premium bool
}
