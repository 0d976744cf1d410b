package ai

import (
	"context"

	"cv-builder/pkg/ai/formatters"

	"go.uber.org/zap"
)

// minBullets is the fewest suggestions worth returning from the model; short
// answers are topped up from the fallback list.
const minBullets = 3

// Suggester answers suggestion requests. It never fails: when the
// ai-service is missing or errors it answers from the fallback lists.
type Suggester struct {
	client *Client
	logger *zap.Logger
}

// NewSuggester wraps client; a nil client always uses the fallbacks.
func NewSuggester(client *Client, logger *zap.Logger) *Suggester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggester{client: client, logger: logger}
}

// Summary returns a suggested summary and whether it came from the model.
func (s *Suggester) Summary(ctx context.Context, req formatters.SummaryRequest) (string, bool) {
	if s.client != nil {
		text, err := s.client.SuggestSummary(ctx, req)
		if err == nil {
			return text, true
		}
		s.logger.Warn("ai: summary suggestion failed, using fallback", zap.Error(err))
	}
	return FallbackSummary(req.FullName), false
}

// Bullets returns at most formatters.MaxBullets suggestions and whether the
// model produced them.
func (s *Suggester) Bullets(ctx context.Context, req formatters.BulletsRequest) ([]string, bool) {
	if s.client != nil {
		got, err := s.client.SuggestBullets(ctx, req)
		if err == nil && len(got) > 0 {
			got = fill(nil, got, req.CurrentDescriptions, formatters.MaxBullets)
			if len(got) < minBullets {
				got = fill(got, FallbackBullets(req.JobTitle, req.Company, req.CurrentDescriptions, formatters.MaxBullets), req.CurrentDescriptions, formatters.MaxBullets)
			}
			return got, true
		}
		if err != nil {
			s.logger.Warn("ai: bullet suggestions failed, using fallback", zap.Error(err))
		}
	}
	return FallbackBullets(req.JobTitle, req.Company, req.CurrentDescriptions, formatters.MaxBullets), false
}
