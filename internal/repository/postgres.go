package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

var (
	_ OrchidRepository   = (*PostgresOrchidRepository)(nil)
	_ CalendarRepository = (*PostgresCalendarRepository)(nil)
)

const uniqueViolation = "23505"

type PostgresOrchidRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrchidRepository(pool *pgxpool.Pool) *PostgresOrchidRepository {
	return &PostgresOrchidRepository{pool: pool}
}

func (repository *PostgresOrchidRepository) Create(ctx context.Context, profile models.OrchidProfile) (models.OrchidProfile, error) {
	profile = prepareOrchid(profile, time.Now())
	specialNeeds, err := encodeSpecialNeeds(profile.SpecialNeeds)
	if err != nil {
		return models.OrchidProfile{}, err
	}

	_, err = repository.pool.Exec(ctx,
		`INSERT INTO orchids (`+orchidColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		profile.ID, profile.Name, profile.Genus, profile.Species, string(profile.GrowthStage), profile.Location,
		profile.PotType, profile.PottingMedium, profile.LastRepotted, profile.HealthStatus, specialNeeds,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.OrchidProfile{}, fmt.Errorf("%w: orchid %s", ErrConflict, profile.ID)
		}
		return models.OrchidProfile{}, fmt.Errorf("creating orchid: %w", err)
	}
	return profile, nil
}

func (repository *PostgresOrchidRepository) FindByID(ctx context.Context, id string) (models.OrchidProfile, error) {
	row := repository.pool.QueryRow(ctx, "SELECT "+orchidColumns+" FROM orchids WHERE id = $1", id)
	profile, err := scanPostgresOrchid(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.OrchidProfile{}, fmt.Errorf("%w: orchid %s", ErrNotFound, id)
		}
		return models.OrchidProfile{}, fmt.Errorf("finding orchid by id: %w", err)
	}
	return profile, nil
}

func (repository *PostgresOrchidRepository) FindAll(ctx context.Context) ([]models.OrchidProfile, error) {
	rows, err := repository.pool.Query(ctx, "SELECT "+orchidColumns+" FROM orchids ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("finding all orchids: %w", err)
	}
	defer rows.Close()

	var profiles []models.OrchidProfile
	for rows.Next() {
		profile, err := scanPostgresOrchid(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning orchid: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func scanPostgresOrchid(row pgx.Row) (models.OrchidProfile, error) {
	var (
		profile      models.OrchidProfile
		growthStage  string
		lastRepotted pgtype.Date
		specialNeeds string
	)
	err := row.Scan(&profile.ID, &profile.Name, &profile.Genus, &profile.Species, &growthStage,
		&profile.Location, &profile.PotType, &profile.PottingMedium, &lastRepotted, &profile.HealthStatus,
		&specialNeeds, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return models.OrchidProfile{}, err
	}

	profile.GrowthStage = models.GrowthStage(growthStage)
	profile.CreatedAt = profile.CreatedAt.UTC()
	profile.UpdatedAt = profile.UpdatedAt.UTC()
	if lastRepotted.Valid {
		date := lastRepotted.Time.UTC()
		profile.LastRepotted = &date
	}
	if err := json.Unmarshal([]byte(specialNeeds), &profile.SpecialNeeds); err != nil {
		return models.OrchidProfile{}, fmt.Errorf("decoding special needs: %w", err)
	}
	return profile, nil
}

type PostgresCalendarRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCalendarRepository(pool *pgxpool.Pool) *PostgresCalendarRepository {
	return &PostgresCalendarRepository{pool: pool}
}

func (repository *PostgresCalendarRepository) Save(ctx context.Context, calendar *models.CareCalendar) error {
	payload, err := export.JSON(calendar)
	if err != nil {
		return fmt.Errorf("encoding calendar %s: %w", calendar.ID, err)
	}

	_, err = repository.pool.Exec(ctx,
		`INSERT INTO calendars (id, orchid_id, start_date, end_date, auto_adaptation, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			auto_adaptation = EXCLUDED.auto_adaptation,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at`,
		calendar.ID, calendar.OrchidID, calendar.StartDate, calendar.EndDate,
		calendar.AutoAdaptation, string(payload), calendar.CreatedAt, calendar.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("saving calendar %s: %w", calendar.ID, err)
	}
	return nil
}

func (repository *PostgresCalendarRepository) FindByID(ctx context.Context, id string) (*models.CareCalendar, error) {
	var payload string
	err := repository.pool.QueryRow(ctx, "SELECT payload::text FROM calendars WHERE id = $1", id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: calendar %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("finding calendar by id: %w", err)
	}
	return decodeCalendar(payload)
}

func (repository *PostgresCalendarRepository) FindByOrchidID(ctx context.Context, orchidID string) ([]*models.CareCalendar, error) {
	rows, err := repository.pool.Query(ctx,
		"SELECT payload::text FROM calendars WHERE orchid_id = $1 ORDER BY start_date, created_at", orchidID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding calendars by orchid: %w", err)
	}
	defer rows.Close()

	var calendars []*models.CareCalendar
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning calendar: %w", err)
		}
		calendar, err := decodeCalendar(payload)
		if err != nil {
			return nil, err
		}
		calendars = append(calendars, calendar)
	}
	return calendars, rows.Err()
}

func (repository *PostgresCalendarRepository) Delete(ctx context.Context, id string) error {
	commandTag, err := repository.pool.Exec(ctx, "DELETE FROM calendars WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: calendar %s", ErrNotFound, id)
	}
	return nil
}
