package usecase

import (
	"context"
	"errors"

	"cv-builder/internal/model"

	"github.com/google/uuid"
)

// Persistence stores whole documents for one owner. The server implements it
// over the repository and pkg/persistence implements it over HTTP.
type Persistence interface {
	Load(ctx context.Context, id uuid.UUID) (model.CVDocument, error)
	Save(ctx context.Context, id uuid.UUID, doc model.CVDocument) error
	Create(ctx context.Context, doc model.CVDocument) (uuid.UUID, error)
}

// PDFRecorder is implemented by persistence backends that remember where the
// last export of a CV was written.
type PDFRecorder interface {
	RecordPDF(ctx context.Context, id uuid.UUID, path string) error
}

// AcceptMode says how an accepted summary suggestion combines with the
// current summary.
type AcceptMode string

const (
	AcceptReplace AcceptMode = "replace"
	AcceptAppend  AcceptMode = "append"
)

var (
	ErrAcceptMode = errors.New("accept mode must be replace or append")
	ErrStepRange  = errors.New("step out of range")
)

// ParseAcceptMode defaults to replace when s is empty.
func ParseAcceptMode(s string) (AcceptMode, error) {
	switch AcceptMode(s) {
	case "", AcceptReplace:
		return AcceptReplace, nil
	case AcceptAppend:
		return AcceptAppend, nil
	}
	return "", ErrAcceptMode
}
