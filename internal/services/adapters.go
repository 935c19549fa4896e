package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// Adapter is one stage of the adaptation pipeline. Adapters may change a
// task's priority, date, duration or action, append notes, or drop the task.
type Adapter interface {
	Name() string
	Adapt(tasks []models.CareTask) ([]models.CareTask, error)
}

// RunPipeline applies adapters in order to a copy of tasks.
func RunPipeline(tasks []models.CareTask, adapters ...Adapter) ([]models.CareTask, error) {
	current := cloneTasks(tasks)
	for _, adapter := range adapters {
		adapted, err := adapter.Adapt(current)
		if err != nil {
			return nil, fmt.Errorf("running %s adapter: %w", adapter.Name(), err)
		}
		current = adapted
	}
	return current, nil
}

func cloneTasks(tasks []models.CareTask) []models.CareTask {
	cloned := make([]models.CareTask, len(tasks))
	for i, task := range tasks {
		task.Notes = append([]string(nil), task.Notes...)
		if task.Weather != nil {
			snapshot := *task.Weather
			task.Weather = &snapshot
		}
		if task.CompletedAt != nil {
			completedAt := *task.CompletedAt
			task.CompletedAt = &completedAt
		}
		cloned[i] = task
	}
	return cloned
}

type WeatherAdapter struct {
	Patterns   []models.WeatherPattern
	Protocol   catalog.GenusProtocol
	Thresholds catalog.WeatherThresholds
	Logger     *slog.Logger
}

func (adapter WeatherAdapter) Name() string { return "weather" }

func (adapter WeatherAdapter) Adapt(tasks []models.CareTask) ([]models.CareTask, error) {
	logger := adapter.Logger
	if logger == nil {
		logger = slog.Default()
	}

	patterns := usablePatterns(adapter.Patterns, logger)
	if len(patterns) == 0 {
		return tasks, nil
	}

	ambiguous := make(map[string]bool)
	for i := range tasks {
		task := &tasks[i]
		if !task.WeatherDependent {
			continue
		}

		pattern, matches := matchPattern(patterns, task.ScheduledDate)
		if matches > 1 {
			day := task.ScheduledDate.Format(models.DateLayout)
			if !ambiguous[day] {
				ambiguous[day] = true
				logger.Warn("skipping weather adaptation for overlapping patterns",
					"date", day, "patterns", matches)
			}
			continue
		}
		if matches == 0 {
			continue
		}

		adapter.apply(task, pattern)
		task.Weather = pattern.Snapshot()
	}
	return tasks, nil
}

func (adapter WeatherAdapter) apply(task *models.CareTask, pattern models.WeatherPattern) {
	thresholds := adapter.Thresholds

	if pattern.RainfallMM > thresholds.HeavyRainfallMM &&
		(task.Action == models.ActionWatering || task.Action == models.ActionMisting) {
		task.Priority = task.Priority.Lower(models.PriorityLow)
		task.AddNote(fmt.Sprintf("Heavy rainfall expected (%.1fmm): reduce watering", pattern.RainfallMM))
	}

	if pattern.HumidityAvg < thresholds.DryHumidity && task.Action == models.ActionWatering {
		task.Priority = models.PriorityCritical
		task.AddNote(fmt.Sprintf("Low humidity (%.0f%%): watering is critical", pattern.HumidityAvg))
	}

	if task.Action == models.ActionMisting {
		switch {
		case pattern.HumidityAvg > thresholds.HumidMistingHumidity:
			task.Priority = task.Priority.Lower(models.PriorityLow)
			task.AddNote(fmt.Sprintf("High humidity (%.0f%%): misting less important", pattern.HumidityAvg))
		case pattern.HumidityAvg < thresholds.DryMistingHumidity:
			task.Priority = task.Priority.Raise(models.PriorityHigh)
			task.AddNote(fmt.Sprintf("Dry air (%.0f%%): mist more often", pattern.HumidityAvg))
		}
	}

	if task.Action == models.ActionTemperatureMonitoring {
		tolerance := thresholds.TemperatureTolerance
		switch {
		case pattern.TemperatureAvg < adapter.Protocol.OptimalTempMinC-tolerance:
			task.Priority = task.Priority.Raise(models.PriorityHigh)
			task.AddNote(fmt.Sprintf("Cold spell (%.1f°C): protect from chill", pattern.TemperatureAvg))
		case pattern.TemperatureAvg > adapter.Protocol.OptimalTempMaxC+tolerance:
			task.Priority = task.Priority.Raise(models.PriorityHigh)
			task.AddNote(fmt.Sprintf("Heat wave (%.1f°C): increase shading and airflow", pattern.TemperatureAvg))
		}
	}
}

// ValidateWeatherPattern rejects inverted ranges and physically impossible readings.
func ValidateWeatherPattern(pattern models.WeatherPattern) error {
	switch {
	case pattern.StartDate.IsZero() || pattern.EndDate.IsZero():
		return fmt.Errorf("%w: missing start or end date", ErrMalformedWeatherRange)
	case civilDate(pattern.EndDate).Before(civilDate(pattern.StartDate)):
		return fmt.Errorf("%w: end %s before start %s", ErrMalformedWeatherRange,
			pattern.EndDate.Format(models.DateLayout), pattern.StartDate.Format(models.DateLayout))
	case pattern.HumidityAvg < 0 || pattern.HumidityAvg > 100:
		return fmt.Errorf("%w: humidity %.1f outside 0..100", ErrMalformedWeatherRange, pattern.HumidityAvg)
	case pattern.RainfallMM < 0:
		return fmt.Errorf("%w: negative rainfall %.1f", ErrMalformedWeatherRange, pattern.RainfallMM)
	}
	return nil
}

func usablePatterns(patterns []models.WeatherPattern, logger *slog.Logger) []models.WeatherPattern {
	usable := make([]models.WeatherPattern, 0, len(patterns))
	for _, pattern := range patterns {
		if err := ValidateWeatherPattern(pattern); err != nil {
			logger.Warn("ignoring weather pattern", "error", err)
			continue
		}
		pattern.StartDate = civilDate(pattern.StartDate)
		pattern.EndDate = civilDate(pattern.EndDate)
		usable = append(usable, pattern)
	}
	return usable
}

func matchPattern(patterns []models.WeatherPattern, date time.Time) (models.WeatherPattern, int) {
	var found models.WeatherPattern
	matches := 0
	for _, pattern := range patterns {
		if pattern.Covers(date) {
			if matches == 0 {
				found = pattern
			}
			matches++
		}
	}
	return found, matches
}

type SeasonalAdapter struct {
	Catalog *catalog.Catalog
}

func (adapter SeasonalAdapter) Name() string { return "seasonal" }

func (adapter SeasonalAdapter) Adapt(tasks []models.CareTask) ([]models.CareTask, error) {
	kept := tasks[:0]
	for _, task := range tasks {
		rule := adapter.Catalog.Season(models.SeasonFor(task.ScheduledDate.Month()))

		switch task.Action {
		case models.ActionWatering:
			if containsWeekday(rule.SkipWateringWeekdays, task.ScheduledDate.Weekday()) {
				continue
			}
		case models.ActionFertilizing:
			if rule.FertilizerBoost {
				task.Priority = task.Priority.Raise(rule.FertilizerPriority)
				task.AddNote(rule.Note)
			} else if rule.FertilizerPriority != "" {
				task.Priority = task.Priority.Lower(rule.FertilizerPriority)
				task.AddNote(rule.Note)
			}
		}
		kept = append(kept, task)
	}
	return kept, nil
}

func containsWeekday(weekdays []time.Weekday, day time.Weekday) bool {
	for _, weekday := range weekdays {
		if weekday == day {
			return true
		}
	}
	return false
}

type GenusAdapter struct {
	Protocol catalog.GenusProtocol
}

func (adapter GenusAdapter) Name() string { return "genus" }

func (adapter GenusAdapter) Adapt(tasks []models.CareTask) ([]models.CareTask, error) {
	kept := tasks[:0]
	for _, task := range tasks {
		switch task.Action {
		case models.ActionWatering:
			// Sunday is weekday 0, so even weekdays are Sun, Tue, Thu and Sat.
			if adapter.Protocol.WaterFrequencyModifier < 1.0 && int(task.ScheduledDate.Weekday())%2 == 0 {
				continue
			}
		case models.ActionFertilizing:
			if adapter.Protocol.FertilizerConcentration != "" {
				task.AddNote(fmt.Sprintf("%s fertilizer: %s", adapter.Protocol.Genus, adapter.Protocol.FertilizerConcentration))
			}
		}
		kept = append(kept, task)
	}
	return kept, nil
}

const minimumMistingMinutes = 5

type GrowthStageAdapter struct {
	Stage   models.GrowthStage
	Catalog *catalog.Catalog
}

func (adapter GrowthStageAdapter) Name() string { return "growth stage" }

func (adapter GrowthStageAdapter) Adapt(tasks []models.CareTask) ([]models.CareTask, error) {
	kept := tasks[:0]
	for _, task := range tasks {
		switch adapter.Stage {
		case models.StageSeedling:
			switch task.Action {
			case models.ActionWatering:
				task.Action = models.ActionMisting
				task.Description = adapter.Catalog.Action(models.ActionMisting).Description + " (seedling)"
				task.DurationMinutes = max(task.DurationMinutes/2, minimumMistingMinutes)
				task.AddNote("Seedling: gentle misting instead of full watering")
			case models.ActionFertilizing:
				task.AddNote("Seedling: dilute fertilizer to 1/4 strength")
			}

		case models.StageMatureBlooming:
			if task.Action == models.ActionWatering || task.Action == models.ActionTemperatureMonitoring {
				task.Priority = task.Priority.Raise(models.PriorityHigh)
				task.AddNote("Blooming: keep conditions stable to protect buds")
			}

		case models.StageDormant:
			switch task.Action {
			case models.ActionFertilizing:
				continue
			case models.ActionWatering:
				task.Priority = task.Priority.Lower(models.PriorityLow)
				task.AddNote("Dormant: water sparingly")
			}
		}
		kept = append(kept, task)
	}
	return kept, nil
}

const (
	maxWeekdayShifts         = 7
	beginnerRepotNumerator   = 3
	beginnerRepotDenominator = 2
)

type PreferenceAdapter struct {
	Preferences models.UserPreferences
}

func (adapter PreferenceAdapter) Name() string { return "user preference" }

func (adapter PreferenceAdapter) Adapt(tasks []models.CareTask) ([]models.CareTask, error) {
	for i := range tasks {
		task := &tasks[i]

		if adapter.Preferences.Unavailable(task.ScheduledDate.Weekday()) {
			shifted, err := nextAvailableDay(task.ScheduledDate, adapter.Preferences)
			if err != nil {
				return nil, err
			}
			task.AddNote(fmt.Sprintf("Moved from %s: you are unavailable on %s",
				task.ScheduledDate.Format(models.DateLayout), task.ScheduledDate.Weekday()))
			task.ScheduledDate = shifted
		}

		if adapter.Preferences.SkillLevel == models.SkillBeginner && task.Action == models.ActionRepotting {
			task.DurationMinutes = (task.DurationMinutes*beginnerRepotNumerator + beginnerRepotDenominator - 1) / beginnerRepotDenominator
			task.AddNote("Beginner tip: watch a repotting guide first and keep fresh medium ready")
		}
	}
	return ResolveConflicts(tasks, adapter.Preferences.MaxDailyMinutes), nil
}

func nextAvailableDay(date time.Time, preferences models.UserPreferences) (time.Time, error) {
	candidate := date
	for shift := 0; shift < maxWeekdayShifts; shift++ {
		candidate = candidate.AddDate(0, 0, 1)
		if !preferences.Unavailable(candidate.Weekday()) {
			return candidate, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: every weekday is marked unavailable", ErrConfiguration)
}
