package service

import (
	"cmp"
	"slices"
	"unicode/utf8"

	"github.com/pkordes/trailfinder/internal/domain"
)

// PointCategoryTier scores a point by its best category tag, lower is better:
// natural, ele and historic are 1; place, tourism and leisure are 2;
// amenity is 3; anything else is 4.
func PointCategoryTier(tags []string) int {
	tier := 4
	for _, tag := range tags {
		switch tag {
		case domain.TagNatural, domain.TagEle, domain.TagHistoric:
			return 1
		case domain.TagPlace, domain.TagTourism, domain.TagLeisure:
			tier = min(tier, 2)
		case domain.TagAmenity:
			tier = min(tier, 3)
		}
	}
	return tier
}

// RegionTier scores a region candidate: settlement points are 1,
// settlement polygons 2, everything else 3.
func RegionTier(c domain.RegionHintCandidate) int {
	switch {
	case c.Settlement && c.Hint.Type == domain.HintPlace:
		return 1
	case c.Settlement:
		return 2
	default:
		return 3
	}
}

type rankedPoint struct {
	hint     domain.PointHint
	tier     int
	areaRank int
	length   int
}

// RankPointHints orders point candidates by category tier, then by the
// rank of the containing area name, then by name length, and keeps the
// best entry per point id. At most limit hints are returned.
func RankPointHints(candidates []domain.PointHintCandidate, prefixes domain.AdminPrefixes, limit int) []domain.PointHint {
	ranked := make([]rankedPoint, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, rankedPoint{
			hint:     c.Hint,
			tier:     PointCategoryTier(c.Tags),
			areaRank: prefixes.Rank(c.Hint.City),
			length:   utf8.RuneCountInString(c.Hint.Name),
		})
	}

	slices.SortStableFunc(ranked, func(a, b rankedPoint) int {
		return cmp.Or(
			cmp.Compare(a.tier, b.tier),
			cmp.Compare(a.areaRank, b.areaRank),
			cmp.Compare(a.length, b.length),
			cmp.Compare(a.hint.Name, b.hint.Name),
			cmp.Compare(a.hint.ID, b.hint.ID),
		)
	})

	out := []domain.PointHint{}
	seen := make(map[int64]bool, len(ranked))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		if seen[r.hint.ID] {
			continue
		}
		seen[r.hint.ID] = true
		out = append(out, r.hint)
	}
	return out
}

// RankRegionHints orders region candidates by tier and name length and
// returns at most limit hints.
func RankRegionHints(candidates []domain.RegionHintCandidate, limit int) []domain.RegionHint {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b domain.RegionHintCandidate) int {
		return cmp.Or(
			cmp.Compare(RegionTier(a), RegionTier(b)),
			cmp.Compare(utf8.RuneCountInString(a.Hint.Name), utf8.RuneCountInString(b.Hint.Name)),
			cmp.Compare(a.Hint.Name, b.Hint.Name),
			cmp.Compare(a.Hint.ID, b.Hint.ID),
		)
	})

	out := []domain.RegionHint{}
	for _, c := range sorted {
		if len(out) == limit {
			break
		}
		out = append(out, c.Hint)
	}
	return out
}
