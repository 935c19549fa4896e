package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

type GenerateRequest struct {
	Profile        models.OrchidProfile
	StartDate      time.Time
	EndDate        time.Time
	Weather        []models.WeatherPattern
	Preferences    *models.UserPreferences
	AutoAdaptation bool
}

// Engine runs the care scheduling pipeline. It holds no mutable state, so one
// instance can serve any number of goroutines.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	reactor *WeatherReactor
}

type EngineOption func(*Engine)

func WithClock(now func() time.Time) EngineOption {
	return func(engine *Engine) { engine.now = now }
}

// WithCalendarIDs replaces the random calendar id source.
func WithCalendarIDs(newID func() string) EngineOption {
	return func(engine *Engine) { engine.newID = newID }
}

func NewEngine(cat *catalog.Catalog, logger *slog.Logger, options ...EngineOption) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	engine := &Engine{
		catalog: cat,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, option := range options {
		option(engine)
	}
	engine.reactor = NewWeatherReactor(cat.Thresholds(), engine.now)
	return engine
}

func (engine *Engine) Catalog() *catalog.Catalog {
	return engine.catalog
}

// Today is the current civil date according to the engine clock.
func (engine *Engine) Today() time.Time {
	return civilDate(engine.now())
}

// Generate builds a complete calendar or fails with a single error; it never
// returns a partially built calendar.
func (engine *Engine) Generate(request GenerateRequest) (*models.CareCalendar, error) {
	if request.Preferences != nil {
		if err := ValidatePreferences(*request.Preferences); err != nil {
			return nil, err
		}
	}

	start, end := civilDate(request.StartDate), civilDate(request.EndDate)
	if request.StartDate.IsZero() || request.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidDateRange, end.Format(models.DateLayout), start.Format(models.DateLayout))
	}

	var warnings []string
	protocol, found := engine.catalog.Protocol(request.Profile.Genus)
	if !found {
		warning := UnknownGenusWarning{Genus: request.Profile.Genus}
		engine.logger.Warn("generating with reduced confidence", "error", warning, "orchid_id", request.Profile.ID)
		warnings = append(warnings, warning.Error())
	}

	tasks := GenerateBaseSchedule(request.Profile, start, end, engine.catalog)

	adapters := []Adapter{
		WeatherAdapter{
			Patterns:   request.Weather,
			Protocol:   protocol,
			Thresholds: engine.catalog.Thresholds(),
			Logger:     engine.logger,
		},
		SeasonalAdapter{Catalog: engine.catalog},
		GenusAdapter{Protocol: protocol},
		GrowthStageAdapter{Stage: request.Profile.GrowthStage, Catalog: engine.catalog},
	}
	var careTimes []models.CareTime
	if request.Preferences != nil {
		adapters = append(adapters, PreferenceAdapter{Preferences: *request.Preferences})
		careTimes = request.Preferences.PreferredCareTimes
	}

	tasks, err := RunPipeline(tasks, adapters...)
	if err != nil {
		return nil, err
	}
	SortTasks(tasks)

	now := engine.now().UTC()
	calendar := &models.CareCalendar{
		ID:                 engine.newID(),
		OrchidID:           request.Profile.ID,
		Profile:            request.Profile,
		StartDate:          start,
		EndDate:            end,
		Tasks:              tasks,
		WeatherIntegration: len(request.Weather) > 0,
		AutoAdaptation:     request.AutoAdaptation,
		PreferredCareTimes: careTimes,
		Warnings:           warnings,
		CreatedAt:          now,
		LastUpdated:        now,
	}

	engine.logger.Debug("generated care calendar",
		"calendar_id", calendar.ID, "orchid_id", calendar.OrchidID, "tasks", len(tasks))
	return calendar, nil
}

// ApplyWeather runs the weather reactor against an existing calendar.
func (engine *Engine) ApplyWeather(calendar *models.CareCalendar, pattern models.WeatherPattern) (int, error) {
	changed, err := engine.reactor.Apply(calendar, pattern, engine.now())
	if err != nil {
		return 0, err
	}
	engine.logger.Info("applied weather update", "calendar_id", calendar.ID, "changed", changed)
	return changed, nil
}

func (engine *Engine) CompleteTask(calendar *models.CareCalendar, taskID string) (models.CareTask, error) {
	return CompleteTask(calendar, taskID, engine.now())
}

func (engine *Engine) Export(calendar *models.CareCalendar, formats ...export.Format) []export.Result {
	results := export.All(calendar, formats...)
	for _, result := range results {
		if result.Err != nil {
			engine.logger.Error("exporting calendar", "error", result.Err, "format", result.Format, "calendar_id", calendar.ID)
		}
	}
	return results
}

// ValidatePreferences fails fast on preferences that can never be satisfied.
func ValidatePreferences(preferences models.UserPreferences) error {
	unavailable := make(map[time.Weekday]bool)
	for _, day := range preferences.UnavailableDays {
		if day < time.Sunday || day > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrConfiguration, day)
		}
		unavailable[day] = true
	}
	if len(unavailable) == 7 {
		return fmt.Errorf("%w: all seven weekdays are marked unavailable", ErrConfiguration)
	}
	if preferences.SkillLevel != "" && !preferences.SkillLevel.Valid() {
		return fmt.Errorf("%w: unknown skill level %q", ErrConfiguration, preferences.SkillLevel)
	}
	for _, careTime := range preferences.PreferredCareTimes {
		if !careTime.Valid() {
			return fmt.Errorf("%w: unknown care time %q", ErrConfiguration, careTime)
		}
	}
	if preferences.MaxDailyMinutes < 0 {
		return fmt.Errorf("%w: negative daily time budget", ErrConfiguration)
	}
	return nil
}
