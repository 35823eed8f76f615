// Package repo contains all database access logic for the trail search API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/trailfinder/internal/domain"
	"github.com/pkordes/trailfinder/internal/query"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the read operations behind trip search.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Find runs a selection statement produced by CompileTripSearch and
	// returns the base trips in statement order, without sub-collections.
	Find(ctx context.Context, st query.Statement) ([]domain.Trip, error)

	// Count runs a count statement produced by CompileTripSearch.
	Count(ctx context.Context, st query.Statement) (int64, error)

	// ImagesByTripIDs returns the photos of all given trips in one query.
	ImagesByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripImage, error)

	// PointsByTripIDs returns the waypoints of all given trips in one query,
	// ordered by their "order" attribute.
	PointsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripPoint, error)

	// CommentsByTripIDs returns the comments of all given trips in one query,
	// oldest first.
	CommentsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripComment, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Find runs a compiled selection statement.
func (r *pgTripRepo) Find(ctx context.Context, st query.Statement) ([]domain.Trip, error) {
	rows, err := r.db.Query(ctx, st.SQL, st.Args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Find: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.Find: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.Find: rows: %w", err)
	}
	return trips, nil
}

// Count runs a compiled count statement.
func (r *pgTripRepo) Count(ctx context.Context, st query.Statement) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, st.SQL, st.Args).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.TripRepo.Count: %w", err)
	}
	return n, nil
}

// ImagesByTripIDs fetches the photos of a set of trips.
func (r *pgTripRepo) ImagesByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripImage, error) {
	st := query.Select{
		Columns: []string{"id", "trip_id", "name"},
		From:    "trip_photos",
		Clauses: query.Where(query.InSet{Column: "trip_id", Values: tripIDs}),
		OrderBy: []query.Order{{Column: pgx.Identifier{"id"}}},
	}.Statement()

	rows, err := r.db.Query(ctx, st.SQL, st.Args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ImagesByTripIDs: %w", err)
	}
	defer rows.Close()

	images := []domain.TripImage{}
	for rows.Next() {
		var id, tripID pgtype.UUID
		var img domain.TripImage
		if err := rows.Scan(&id, &tripID, &img.Name); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ImagesByTripIDs: scan: %w", err)
		}
		img.ID = uuid.UUID(id.Bytes)
		img.TripID = uuid.UUID(tripID.Bytes)
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ImagesByTripIDs: rows: %w", err)
	}
	return images, nil
}

// PointsByTripIDs fetches the waypoints of a set of trips. Waypoints that
// reference an OSM point take their name and geometry from planet_osm_point;
// the others use their custom coordinates.
func (r *pgTripRepo) PointsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripPoint, error) {
	var clauses query.ClauseSet
	clauses.Join("LEFT JOIN planet_osm_point pop ON pop.osm_id = tp.osm_point_id")
	clauses.And(query.InSet{Column: "tp.trip_id", Values: tripIDs})

	st := query.Select{
		Columns: []string{
			"tp.id",
			"tp.trip_id",
			"tp.osm_point_id",
			"pop.name",
			"ST_AsGeoJSON(COALESCE(ST_Transform(pop.way, 4326), tp.custom_coordinates))",
			`tp."order"`,
		},
		From:    "trip_points tp",
		Clauses: clauses,
		OrderBy: []query.Order{
			{Column: pgx.Identifier{"tp", "trip_id"}},
			{Column: pgx.Identifier{"tp", "order"}},
		},
	}.Statement()

	rows, err := r.db.Query(ctx, st.SQL, st.Args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.PointsByTripIDs: %w", err)
	}
	defer rows.Close()

	points := []domain.TripPoint{}
	for rows.Next() {
		var (
			p           domain.TripPoint
			id, tripID  pgtype.UUID
			osmPointID  pgtype.Int8
			name        pgtype.Text
			coordinates pgtype.Text
			order       int32
		)
		if err := rows.Scan(&id, &tripID, &osmPointID, &name, &coordinates, &order); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.PointsByTripIDs: scan: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes)
		p.TripID = uuid.UUID(tripID.Bytes)
		if osmPointID.Valid {
			v := osmPointID.Int64
			p.OSMPointID = &v
		}
		p.Name = name.String
		if coordinates.Valid {
			p.Coordinates = []byte(coordinates.String)
		}
		p.Order = int(order)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.PointsByTripIDs: rows: %w", err)
	}
	return points, nil
}

// CommentsByTripIDs fetches the comments of a set of trips.
func (r *pgTripRepo) CommentsByTripIDs(ctx context.Context, tripIDs []uuid.UUID) ([]domain.TripComment, error) {
	st := query.Select{
		Columns: []string{"id", "trip_id", "user_id", "content", "date_add"},
		From:    "trip_comments",
		Clauses: query.Where(query.InSet{Column: "trip_id", Values: tripIDs}),
		OrderBy: []query.Order{
			{Column: pgx.Identifier{"date_add"}},
			{Column: pgx.Identifier{"id"}},
		},
	}.Statement()

	rows, err := r.db.Query(ctx, st.SQL, st.Args)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.CommentsByTripIDs: %w", err)
	}
	defer rows.Close()

	comments := []domain.TripComment{}
	for rows.Next() {
		var (
			c                  domain.TripComment
			id, tripID, userID pgtype.UUID
		)
		if err := rows.Scan(&id, &tripID, &userID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.CommentsByTripIDs: scan: %w", err)
		}
		c.ID = uuid.UUID(id.Bytes)
		c.TripID = uuid.UUID(tripID.Bytes)
		c.UserID = uuid.UUID(userID.Bytes)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.CommentsByTripIDs: rows: %w", err)
	}
	return comments, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single row selected with tripColumns into a domain.Trip.
// It handles the UUID and nullable route conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t           domain.Trip
		id, ownerID pgtype.UUID
		route       pgtype.Text
	)

	err := s.Scan(&id, &ownerID, &t.Name, &t.Description, &t.Type, &t.Color, &t.Public,
		&route, &t.Distance, &t.Ascend, &t.Descend, &t.Time)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	if route.Valid {
		t.Route = []byte(route.String)
	}
	return t, nil
}
