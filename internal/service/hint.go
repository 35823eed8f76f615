package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/repo"
)

// candidateLimit bounds how many rows are read per hint lookup. The store
// applies the ranking tiers before cutting, so this only needs headroom for
// points repeated once per containing area.
const candidateLimit = 60

// HintService serves location autocomplete for the search and routing boxes.
type HintService struct {
	hints    repo.HintRepo
	prefixes domain.AdminPrefixes
	log      *slog.Logger
}

// NewHintService constructs a HintService. prefixes is the table of
// administrative-unit qualifiers used to rank containing areas.
func NewHintService(hints repo.HintRepo, prefixes domain.AdminPrefixes, log *slog.Logger) *HintService {
	return &HintService{hints: hints, prefixes: prefixes, log: log}
}

// PointHints returns at most domain.PointHintLimit points of interest whose
// name starts with prefix, best match first.
// A prefix shorter than domain.MinHintPrefixLength returns an empty slice
// without querying.
func (s *HintService) PointHints(ctx context.Context, prefix string) ([]domain.PointHint, error) {
	if !domain.HintPrefixLongEnough(prefix) {
		return []domain.PointHint{}, nil
	}
	candidates, err := s.hints.PointCandidates(ctx, prefix, s.prefixes, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("service.HintService.PointHints: %w", err)
	}
	hints := RankPointHints(candidates, s.prefixes, domain.PointHintLimit)
	s.log.DebugContext(ctx, "point hints", "prefix", prefix, "candidates", len(candidates), "returned", len(hints))
	return hints, nil
}

// RegionHints returns at most domain.RegionHintLimit points or polygons
// whose name starts with prefix, settlements first.
func (s *HintService) RegionHints(ctx context.Context, prefix string) ([]domain.RegionHint, error) {
	if !domain.HintPrefixLongEnough(prefix) {
		return []domain.RegionHint{}, nil
	}
	candidates, err := s.hints.RegionCandidates(ctx, prefix, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("service.HintService.RegionHints: %w", err)
	}
	hints := RankRegionHints(candidates, domain.RegionHintLimit)
	s.log.DebugContext(ctx, "region hints", "prefix", prefix, "candidates", len(candidates), "returned", len(hints))
	return hints, nil
}

// RegionHintByID resolves a hint picked earlier by the user.
// Returns domain.ErrValidation for an unknown type and domain.ErrNotFound
// when no such OSM object exists.
func (s *HintService) RegionHintByID(ctx context.Context, id int64, rawType string) (domain.RegionHint, error) {
	typ, err := domain.ParseHintType(rawType)
	if err != nil {
		return domain.RegionHint{}, fmt.Errorf("service.HintService.RegionHintByID: %w", err)
	}
	h, err := s.hints.RegionByID(ctx, id, typ)
	if err != nil {
		return domain.RegionHint{}, fmt.Errorf("service.HintService.RegionHintByID: %w", err)
	}
	return h, nil
}
