package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// weeklyEstimateSample is how many leading tasks feed EstimatedWeeklyMinutes.
// It counts tasks, not days.
const weeklyEstimateSample = 7

// SortTasks orders tasks by date, then by priority rank. Equal keys keep their order.
func SortTasks(tasks []models.CareTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left, right := tasks[i], tasks[j]
		if !left.ScheduledDate.Equal(right.ScheduledDate) {
			return left.ScheduledDate.Before(right.ScheduledDate)
		}
		return left.Priority.Rank() < right.Priority.Rank()
	})
}

// UpcomingTasks returns incomplete tasks dated within [from, from+days).
func UpcomingTasks(calendar *models.CareCalendar, from time.Time, days int) []models.CareTask {
	from = civilDate(from)
	until := from.AddDate(0, 0, days)

	var upcoming []models.CareTask
	for _, task := range calendar.Tasks {
		if task.Completed {
			continue
		}
		if task.ScheduledDate.Before(from) || !task.ScheduledDate.Before(until) {
			continue
		}
		upcoming = append(upcoming, task)
	}
	SortTasks(upcoming)
	return upcoming
}

func Summarize(calendar *models.CareCalendar) models.CalendarSummary {
	summary := models.CalendarSummary{
		ByPriority:      make(map[models.Priority]int),
		ByAction:        make(map[models.CareAction]int),
		WeeklyHistogram: make(map[string]int),
	}

	for i, task := range calendar.Tasks {
		summary.TotalTasks++
		summary.TotalMinutes += task.DurationMinutes
		summary.ByPriority[task.Priority]++
		summary.ByAction[task.Action]++
		summary.WeeklyHistogram[weekStart(task.ScheduledDate).Format(models.DateLayout)]++
		if task.Completed {
			summary.CompletedTasks++
		}
		if task.WeatherDependent {
			summary.WeatherDependentTasks++
		}
		if i < weeklyEstimateSample {
			summary.EstimatedWeeklyMinutes += task.DurationMinutes
		}
	}
	return summary
}

// CompleteTask marks the task completed at the given instant.
func CompleteTask(calendar *models.CareCalendar, taskID string, at time.Time) (models.CareTask, error) {
	for i := range calendar.Tasks {
		task := &calendar.Tasks[i]
		if task.ID != taskID {
			continue
		}
		if task.Completed {
			return *task, ErrTaskAlreadyComplete
		}
		completedAt := at.UTC()
		task.Completed = true
		task.CompletedAt = &completedAt
		calendar.LastUpdated = completedAt
		return *task, nil
	}
	return models.CareTask{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}
