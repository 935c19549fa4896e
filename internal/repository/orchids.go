package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

type OrchidRepository interface {
	Create(ctx context.Context, profile models.OrchidProfile) (models.OrchidProfile, error)
	FindByID(ctx context.Context, id string) (models.OrchidProfile, error)
	FindAll(ctx context.Context) ([]models.OrchidProfile, error)
}

type SQLiteOrchidRepository struct {
	database *sql.DB
}

func NewOrchidRepository(database *sql.DB) *SQLiteOrchidRepository {
	return &SQLiteOrchidRepository{database: database}
}

const orchidColumns = `id, name, genus, species, growth_stage, location, pot_type, potting_medium,
	last_repotted, health_status, special_needs, created_at, updated_at`

func (repository *SQLiteOrchidRepository) Create(ctx context.Context, profile models.OrchidProfile) (models.OrchidProfile, error) {
	profile = prepareOrchid(profile, time.Now())
	specialNeeds, err := encodeSpecialNeeds(profile.SpecialNeeds)
	if err != nil {
		return models.OrchidProfile{}, err
	}

	var lastRepotted sql.NullString
	if profile.LastRepotted != nil {
		lastRepotted = sql.NullString{String: profile.LastRepotted.Format(models.DateLayout), Valid: true}
	}

	_, err = repository.database.ExecContext(ctx,
		`INSERT INTO orchids (`+orchidColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Name, profile.Genus, profile.Species, profile.GrowthStage, profile.Location,
		profile.PotType, profile.PottingMedium, lastRepotted, profile.HealthStatus, specialNeeds,
		profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isSQLiteConflict(err) {
			return models.OrchidProfile{}, fmt.Errorf("%w: orchid %s", ErrConflict, profile.ID)
		}
		return models.OrchidProfile{}, fmt.Errorf("creating orchid: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteOrchidRepository) FindByID(ctx context.Context, id string) (models.OrchidProfile, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+orchidColumns+" FROM orchids WHERE id = ?", id,
	)
	profile, err := scanOrchid(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.OrchidProfile{}, fmt.Errorf("%w: orchid %s", ErrNotFound, id)
		}
		return models.OrchidProfile{}, fmt.Errorf("finding orchid by id: %w", err)
	}
	return profile, nil
}

func (repository *SQLiteOrchidRepository) FindAll(ctx context.Context) ([]models.OrchidProfile, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+orchidColumns+" FROM orchids ORDER BY name, id",
	)
	if err != nil {
		return nil, fmt.Errorf("finding all orchids: %w", err)
	}
	defer rows.Close()

	var profiles []models.OrchidProfile
	for rows.Next() {
		profile, err := scanOrchid(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning orchid: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrchid(row rowScanner) (models.OrchidProfile, error) {
	var (
		profile      models.OrchidProfile
		lastRepotted sql.NullString
		specialNeeds string
	)
	err := row.Scan(&profile.ID, &profile.Name, &profile.Genus, &profile.Species, &profile.GrowthStage,
		&profile.Location, &profile.PotType, &profile.PottingMedium, &lastRepotted, &profile.HealthStatus,
		&specialNeeds, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return models.OrchidProfile{}, err
	}

	if lastRepotted.Valid {
		date, err := time.Parse(models.DateLayout, lastRepotted.String)
		if err != nil {
			return models.OrchidProfile{}, fmt.Errorf("parsing last repotted date: %w", err)
		}
		profile.LastRepotted = &date
	}
	if err := json.Unmarshal([]byte(specialNeeds), &profile.SpecialNeeds); err != nil {
		return models.OrchidProfile{}, fmt.Errorf("decoding special needs: %w", err)
	}
	return profile, nil
}

// prepareOrchid fills the id and timestamps of a profile about to be stored.
func prepareOrchid(profile models.OrchidProfile, now time.Time) models.OrchidProfile {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now = now.UTC().Truncate(time.Second)
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.LastRepotted != nil {
		day := profile.LastRepotted.UTC()
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		profile.LastRepotted = &day
	}
	return profile
}

func encodeSpecialNeeds(specialNeeds []string) (string, error) {
	if specialNeeds == nil {
		specialNeeds = []string{}
	}
	encoded, err := json.Marshal(specialNeeds)
	if err != nil {
		return "", fmt.Errorf("encoding special needs: %w", err)
	}
	return string(encoded), nil
}
