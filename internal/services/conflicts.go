package services

import (
	"fmt"
	"sort"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// ResolveConflicts enforces a per-day time budget in a single pass. On a day
// whose total duration exceeds maxDailyMinutes, critical and high tasks stay
// and every other task moves forward by its overflow index plus one day.
// Moved tasks can still overload their new day. A budget <= 0 disables it.
func ResolveConflicts(tasks []models.CareTask, maxDailyMinutes int) []models.CareTask {
	if maxDailyMinutes <= 0 {
		return tasks
	}

	byDate := make(map[string][]int)
	for i, task := range tasks {
		key := task.ScheduledDate.Format(models.DateLayout)
		byDate[key] = append(byDate[key], i)
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		indexes := byDate[key]
		date := tasks[indexes[0]].ScheduledDate

		total := 0
		for _, index := range indexes {
			total += tasks[index].DurationMinutes
		}
		if total <= maxDailyMinutes {
			continue
		}

		overflow := 0
		for _, index := range indexes {
			task := &tasks[index]
			if task.Priority.Rank() <= models.PriorityHigh.Rank() {
				continue
			}
			overflow++
			task.ScheduledDate = date.AddDate(0, 0, overflow)
			task.AddNote(fmt.Sprintf("Rescheduled from %s: daily limit of %d minutes exceeded",
				date.Format(models.DateLayout), maxDailyMinutes))
		}
	}
	return tasks
}
