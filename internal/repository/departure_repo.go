package repository

import (
	"context"
	"database/sql"
	"fmt"

	"railboard/internal/models"
)

// DepartureRepository persists observed departures.
type DepartureRepository struct {
	db *sql.DB
}

// NewDepartureRepository returns repository.
func NewDepartureRepository(db *sql.DB) *DepartureRepository {
	return &DepartureRepository{db: db}
}

// InsertBatch stores a station batch inside one transaction. A departure
// already present under the (station, train_id, departure_time) constraint
// is skipped by the database and excluded from the returned count; any other
// insert failure rolls back the whole batch. The batch commits once at the
// end, so a mid-batch failure commits nothing.
func (r *DepartureRepository) InsertBatch(ctx context.Context, departures []*models.Departure) (int, error) {
	if len(departures) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: begin: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO departures (station, train_id, departure_time, delay_seconds, platform, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (station, train_id, departure_time) DO NOTHING
	`

	inserted := 0
	for _, d := range departures {
		result, err := tx.ExecContext(ctx, query,
			d.Station,
			d.TrainID,
			d.DepartureTime,
			d.DelaySeconds,
			platformValue(d.Platform),
		)
		if err != nil {
			return 0, fmt.Errorf("repository: insert departure: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("repository: rows affected: %w", err)
		}
		if affected > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: commit: %w", err)
	}
	return inserted, nil
}

// CountByStation returns how many departures are recorded for a station.
func (r *DepartureRepository) CountByStation(ctx context.Context, station string) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM departures
		WHERE station = $1
	`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, station).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// platformValue maps an absent upstream platform onto NULL.
func platformValue(platform string) sql.NullString {
	return sql.NullString{String: platform, Valid: platform != ""}
}
