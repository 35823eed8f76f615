package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/query"
)

// HintRepo reads autocomplete candidates from the osm2pgsql tables.
// Candidates come back unranked; ordering and truncation are the caller's job.
type HintRepo interface {
	// PointCandidates returns named OSM points starting with prefix
	// (case-insensitive) that carry at least one category tag, paired with
	// each settlement polygon they lie in. A point inside several
	// settlements appears once per settlement. Rows come ordered by category
	// tier, then by the rank of the area name in areas, then by name length,
	// and are cut after limit rows.
	PointCandidates(ctx context.Context, prefix string, areas domain.AdminPrefixes, limit int) ([]domain.PointHintCandidate, error)

	// RegionCandidates returns OSM points (with a category tag) and polygons
	// whose name starts with prefix. Rows come ordered by tier (settlement
	// points, settlement polygons, the rest), then by name length, and are
	// cut after limit rows.
	RegionCandidates(ctx context.Context, prefix string, limit int) ([]domain.RegionHintCandidate, error)

	// RegionByID returns the point or polygon with the given osm_id.
	// Returns domain.ErrNotFound if it does not exist.
	RegionByID(ctx context.Context, id int64, typ domain.HintType) (domain.RegionHint, error)
}

// pgHintRepo is the Postgres implementation of HintRepo.
type pgHintRepo struct {
	db db
}

// NewHintRepo constructs a HintRepo backed by the provided db connection.
func NewHintRepo(db db) HintRepo {
	return &pgHintRepo{db: db}
}

// pointHasCategory is true for OSM points carrying any category tag worth
// suggesting. "natural" is a reserved word and must stay quoted.
const pointHasCategory = `(pt."natural" IS NOT NULL
	      OR pt.ele IS NOT NULL
	      OR pt.historic IS NOT NULL
	      OR pt.place IS NOT NULL
	      OR pt.tourism IS NOT NULL
	      OR pt.leisure IS NOT NULL
	      OR pt.amenity IS NOT NULL
	      OR pt.sport IS NOT NULL)`

// PointCandidates fetches point hint candidates with their category flags.
// The area rank is 1 for a plain name and 1+n when the name starts with the
// n-th entry of areas, matching domain.AdminPrefixes.Rank.
func (r *pgHintRepo) PointCandidates(ctx context.Context, prefix string, areas domain.AdminPrefixes, limit int) ([]domain.PointHintCandidate, error) {
	const q = `
		SELECT pt.osm_id, pt.name, pg.name,
		       ST_AsGeoJSON(ST_Transform(pt.way, 4326)),
		       pt."natural" IS NOT NULL, pt.ele IS NOT NULL, pt.historic IS NOT NULL,
		       pt.place IS NOT NULL, pt.tourism IS NOT NULL, pt.leisure IS NOT NULL,
		       pt.amenity IS NOT NULL, pt.sport IS NOT NULL
		FROM planet_osm_polygon pg
		JOIN planet_osm_point pt ON ST_Intersects(pt.way, pg.way)
		WHERE pt.name ILIKE @prefix ESCAPE '\'
		  AND pt.name <> pg.name
		  AND ` + pointHasCategory + `
		  AND (pg.population IS NOT NULL OR pg.place IN ('village', 'town', 'city'))
		ORDER BY
		      CASE
		        WHEN pt."natural" IS NOT NULL OR pt.ele IS NOT NULL OR pt.historic IS NOT NULL THEN 1
		        WHEN pt.place IS NOT NULL OR pt.tourism IS NOT NULL OR pt.leisure IS NOT NULL THEN 2
		        WHEN pt.amenity IS NOT NULL THEN 3
		        ELSE 4
		      END,
		      COALESCE((SELECT MIN(a.pos) + 1
		                FROM unnest(@areas::text[]) WITH ORDINALITY AS a(prefix, pos)
		                WHERE starts_with(lower(pg.name), lower(a.prefix))), 1),
		      LENGTH(pt.name), pt.osm_id
		LIMIT @limit`

	args := pgx.NamedArgs{
		"prefix": query.PrefixPattern(prefix),
		"areas":  []string(areas),
		"limit":  limit,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.HintRepo.PointCandidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.PointHintCandidate{}
	for rows.Next() {
		var (
			c     domain.PointHintCandidate
			point pgtype.Text
			flags [8]bool
		)
		err := rows.Scan(&c.Hint.ID, &c.Hint.Name, &c.Hint.City, &point,
			&flags[0], &flags[1], &flags[2], &flags[3], &flags[4], &flags[5], &flags[6], &flags[7])
		if err != nil {
			return nil, fmt.Errorf("repo.HintRepo.PointCandidates: scan: %w", err)
		}
		if point.Valid {
			c.Hint.Point = []byte(point.String)
		}
		for i, tag := range pointTagOrder {
			if flags[i] {
				c.Tags = append(c.Tags, tag)
			}
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HintRepo.PointCandidates: rows: %w", err)
	}
	return candidates, nil
}

// pointTagOrder matches the order of the flag columns in PointCandidates.
var pointTagOrder = [8]string{
	domain.TagNatural, domain.TagEle, domain.TagHistoric, domain.TagPlace,
	domain.TagTourism, domain.TagLeisure, domain.TagAmenity, domain.TagSport,
}

// RegionCandidates fetches point and polygon region hint candidates.
// tier is 1 for settlement points, 2 for settlement polygons and 3 for
// everything else.
func (r *pgHintRepo) RegionCandidates(ctx context.Context, prefix string, limit int) ([]domain.RegionHintCandidate, error) {
	const q = `
		SELECT pt.osm_id, pt.name, ST_AsGeoJSON(ST_Transform(pt.way, 4326)) AS way, 'place' AS type,
		       (pt.population IS NOT NULL OR pt.place IN ('village', 'town', 'city')) AS settlement,
		       CASE WHEN pt.population IS NOT NULL OR pt.place IN ('village', 'town', 'city') THEN 1 ELSE 3 END AS tier,
		       LENGTH(pt.name) AS name_length
		FROM planet_osm_point pt
		WHERE pt.name ILIKE @prefix ESCAPE '\'
		  AND ` + pointHasCategory + `

		UNION ALL

		SELECT pg.osm_id, pg.name, ST_AsGeoJSON(ST_Transform(pg.way, 4326)) AS way, 'polygon' AS type,
		       (pg.population IS NOT NULL OR pg.place IN ('village', 'town', 'city')) AS settlement,
		       CASE WHEN pg.population IS NOT NULL OR pg.place IN ('village', 'town', 'city') THEN 2 ELSE 3 END AS tier,
		       LENGTH(pg.name) AS name_length
		FROM planet_osm_polygon pg
		WHERE pg.name ILIKE @prefix ESCAPE '\'

		ORDER BY tier, name_length, osm_id
		LIMIT @limit`

	args := pgx.NamedArgs{
		"prefix": query.PrefixPattern(prefix),
		"limit":  limit,
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.HintRepo.RegionCandidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.RegionHintCandidate{}
	for rows.Next() {
		var (
			c          domain.RegionHintCandidate
			way        pgtype.Text
			typ        string
			tier       int32
			nameLength int32
		)
		if err := rows.Scan(&c.Hint.ID, &c.Hint.Name, &way, &typ, &c.Settlement, &tier, &nameLength); err != nil {
			return nil, fmt.Errorf("repo.HintRepo.RegionCandidates: scan: %w", err)
		}
		if way.Valid {
			c.Hint.Way = []byte(way.String)
		}
		c.Hint.Type = domain.HintType(typ)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HintRepo.RegionCandidates: rows: %w", err)
	}
	return candidates, nil
}

// RegionByID looks a region hint up by its composite key. The table name is
// picked from a closed switch, never from input.
func (r *pgHintRepo) RegionByID(ctx context.Context, id int64, typ domain.HintType) (domain.RegionHint, error) {
	var q string
	switch typ {
	case domain.HintPlace:
		q = `SELECT osm_id, name, ST_AsGeoJSON(ST_Transform(way, 4326)) FROM planet_osm_point WHERE osm_id = @id LIMIT 1`
	case domain.HintPolygon:
		q = `SELECT osm_id, name, ST_AsGeoJSON(ST_Transform(way, 4326)) FROM planet_osm_polygon WHERE osm_id = @id LIMIT 1`
	default:
		return domain.RegionHint{}, fmt.Errorf("repo.HintRepo.RegionByID: %w: unknown hint type %q", domain.ErrValidation, typ)
	}

	var (
		h    = domain.RegionHint{Type: typ}
		name pgtype.Text
		way  pgtype.Text
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}).Scan(&h.ID, &name, &way)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RegionHint{}, fmt.Errorf("repo.HintRepo.RegionByID: %w", domain.ErrNotFound)
		}
		return domain.RegionHint{}, fmt.Errorf("repo.HintRepo.RegionByID: %w", err)
	}
	h.Name = name.String
	if way.Valid {
		h.Way = []byte(way.String)
	}
	return h, nil
}
