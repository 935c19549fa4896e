package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// CalendarRepository stores whole calendars. The payload is the structured
// JSON export, so a stored calendar reloads exactly as it was saved.
type CalendarRepository interface {
	Save(ctx context.Context, calendar *models.CareCalendar) error
	FindByID(ctx context.Context, id string) (*models.CareCalendar, error)
	FindByOrchidID(ctx context.Context, orchidID string) ([]*models.CareCalendar, error)
	Delete(ctx context.Context, id string) error
}

type SQLiteCalendarRepository struct {
	database *sql.DB
}

func NewCalendarRepository(database *sql.DB) *SQLiteCalendarRepository {
	return &SQLiteCalendarRepository{database: database}
}

func (repository *SQLiteCalendarRepository) Save(ctx context.Context, calendar *models.CareCalendar) error {
	payload, err := export.JSON(calendar)
	if err != nil {
		return fmt.Errorf("encoding calendar %s: %w", calendar.ID, err)
	}

	_, err = repository.database.ExecContext(ctx,
		`INSERT INTO calendars (id, orchid_id, start_date, end_date, auto_adaptation, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			auto_adaptation = excluded.auto_adaptation,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		calendar.ID, calendar.OrchidID,
		calendar.StartDate.Format(models.DateLayout), calendar.EndDate.Format(models.DateLayout),
		calendar.AutoAdaptation, string(payload), calendar.CreatedAt, calendar.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("saving calendar %s: %w", calendar.ID, err)
	}
	return nil
}

func (repository *SQLiteCalendarRepository) FindByID(ctx context.Context, id string) (*models.CareCalendar, error) {
	var payload string
	err := repository.database.QueryRowContext(ctx,
		"SELECT payload FROM calendars WHERE id = ?", id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: calendar %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("finding calendar by id: %w", err)
	}
	return decodeCalendar(payload)
}

func (repository *SQLiteCalendarRepository) FindByOrchidID(ctx context.Context, orchidID string) ([]*models.CareCalendar, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT payload FROM calendars WHERE orchid_id = ? ORDER BY start_date, created_at", orchidID,
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

func (repository *SQLiteCalendarRepository) Delete(ctx context.Context, id string) error {
	result, err := repository.database.ExecContext(ctx, "DELETE FROM calendars WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting calendar: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: calendar %s", ErrNotFound, id)
	}
	return nil
}

func decodeCalendar(payload string) (*models.CareCalendar, error) {
	calendar, err := export.ParseJSON([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("decoding stored calendar: %w", err)
	}
	return calendar, nil
}
