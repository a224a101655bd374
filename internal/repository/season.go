package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/compliance"
	"github.com/milesmeow/tll-scorekeeper-tools-sub000/internal/domain"
)

// pgDate converts a calendar date to the midnight-UTC timestamp pgx encodes
// into a DATE column.
func pgDate(d compliance.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

type seasonRepo struct{}

// NewSeasonRepository returns a pgx-backed SeasonRepository.
func NewSeasonRepository() SeasonRepository {
	return &seasonRepo{}
}

func (r *seasonRepo) Create(ctx context.Context, db DBTX, season *domain.Season) error {
	_, err := db.Exec(ctx, `
		INSERT INTO seasons (id, name, year, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)`,
		season.ID, season.Name, season.Year, pgDate(season.StartDate), pgDate(season.EndDate))
	if err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *seasonRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Season, error) {
	row := db.QueryRow(ctx, `
		SELECT id, name, year, start_date, end_date, created_at
		FROM seasons WHERE id = $1`, id)
	return scanSeason(row)
}

func (r *seasonRepo) List(ctx context.Context, db DBTX) ([]domain.Season, error) {
	rows, err := db.Query(ctx, `
		SELECT id, name, year, start_date, end_date, created_at
		FROM seasons ORDER BY year DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []domain.Season
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, *s)
	}
	return seasons, rows.Err()
}

func scanSeason(row pgx.Row) (*domain.Season, error) {
	var s domain.Season
	var start, end time.Time
	err := row.Scan(&s.ID, &s.Name, &s.Year, &start, &end, &s.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan season: %w", err)
	}
	s.StartDate = compliance.DateOf(start)
	s.EndDate = compliance.DateOf(end)
	return &s, nil
}
