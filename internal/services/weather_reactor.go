package services

import (
	"fmt"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// WeatherReactor nudges an already delivered calendar when one new weather
// observation arrives. It never regenerates the calendar, never moves a task
// backwards and never touches completed tasks. Callers must serialize calls
// per calendar.
type WeatherReactor struct {
	thresholds catalog.WeatherThresholds
	now        func() time.Time
}

func NewWeatherReactor(thresholds catalog.WeatherThresholds, now func() time.Time) *WeatherReactor {
	if now == nil {
		now = time.Now
	}
	return &WeatherReactor{thresholds: thresholds, now: now}
}

// Apply returns the number of tasks it changed.
func (reactor *WeatherReactor) Apply(
	calendar *models.CareCalendar,
	pattern models.WeatherPattern,
	today time.Time,
) (int, error) {
	if err := ValidateWeatherPattern(pattern); err != nil {
		return 0, err
	}
	if !calendar.AutoAdaptation {
		return 0, fmt.Errorf("%w: %s", ErrAutoAdaptationDisabled, calendar.ID)
	}

	today = civilDate(today)
	pattern.StartDate = civilDate(pattern.StartDate)
	pattern.EndDate = civilDate(pattern.EndDate)

	changed := 0
	for i := range calendar.Tasks {
		task := &calendar.Tasks[i]
		if task.Completed || !task.WeatherDependent || task.ScheduledDate.Before(today) {
			continue
		}
		if !pattern.Covers(task.ScheduledDate) {
			continue
		}
		if reactor.react(task, pattern) {
			task.Weather = pattern.Snapshot()
			changed++
		}
	}

	if changed > 0 {
		SortTasks(calendar.Tasks)
	}
	calendar.LastUpdated = reactor.now().UTC()
	return changed, nil
}

func (reactor *WeatherReactor) react(task *models.CareTask, pattern models.WeatherPattern) bool {
	switch {
	case task.Action == models.ActionWatering && pattern.RainfallMM > reactor.thresholds.ReactorRainfallMM:
		previous := task.ScheduledDate
		task.ScheduledDate = previous.AddDate(0, 0, 1)
		task.AddNote(fmt.Sprintf("Postponed from %s: %.1fmm rainfall forecast",
			previous.Format(models.DateLayout), pattern.RainfallMM))
		return true
	case task.Action == models.ActionMisting && pattern.HumidityAvg > reactor.thresholds.ReactorMistingHumidity:
		task.Priority = models.PriorityOptional
		task.AddNote(fmt.Sprintf("Humidity %.0f%%: misting optional", pattern.HumidityAvg))
		return true
	}
	return false
}
