package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

const (
	fertilizingDayInterval = 14
	repotEvaluationDays    = 548
)

// taskNamespace seeds the deterministic task ids.
var taskNamespace = uuid.MustParse("6f1c1b0e-3d4a-5b8e-9c2f-0a7d4e6b1c3a")

// GenerateBaseSchedule walks [start, end] day by day and emits the unadapted
// task sequence. Identical inputs always produce an identical sequence.
func GenerateBaseSchedule(
	profile models.OrchidProfile,
	start, end time.Time,
	cat *catalog.Catalog,
) []models.CareTask {
	start, end = civilDate(start), civilDate(end)
	if end.Before(start) {
		return nil
	}

	protocol, _ := cat.Protocol(profile.Genus)
	builder := taskBuilder{profile: profile, catalog: cat, seen: make(map[string]int)}
	repotYears := make(map[int]bool)

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		builder.add(protocol.DailyAction, day, "")

		if day.Weekday() == protocol.WeeklyWeekday {
			builder.add(protocol.WeeklyAction, day, "")
		}

		if isWateringSlot(day, protocol.WateringIntervalDays) {
			builder.add(models.ActionWatering, day,
				fmt.Sprintf("every %d days within the week", protocol.WateringIntervalDays))
		}

		if day.Day()%fertilizingDayInterval == 0 && inGrowingSeason(day.Month()) {
			builder.add(models.ActionFertilizing, day, protocol.FertilizerConcentration)
		}

		if day.Day() == 1 {
			builder.add(protocol.MonthlyAction, day, "monthly review")
		}

		if day.Month() == time.March && !repotYears[day.Year()] {
			repotYears[day.Year()] = true
			if needsRepotEvaluation(profile.LastRepotted, day) {
				builder.add(models.ActionRepotting, day, repotReason(profile.LastRepotted))
			}
		}
	}

	return builder.tasks
}

// isWateringSlot anchors slots on each week's Monday, then every interval days
// while still inside that week.
func isWateringSlot(day time.Time, intervalDays int) bool {
	if intervalDays < 1 {
		intervalDays = 1
	}
	offset := daysBetween(weekStart(day), day)
	return offset%intervalDays == 0
}

func inGrowingSeason(month time.Month) bool {
	return month >= time.March && month <= time.September
}

func needsRepotEvaluation(lastRepotted *time.Time, day time.Time) bool {
	if lastRepotted == nil {
		return true
	}
	return daysBetween(*lastRepotted, day) >= repotEvaluationDays
}

func repotReason(lastRepotted *time.Time) string {
	if lastRepotted == nil {
		return "no repotting on record"
	}
	return "last repotted " + lastRepotted.Format(models.DateLayout)
}

type taskBuilder struct {
	profile models.OrchidProfile
	catalog *catalog.Catalog
	tasks   []models.CareTask
	seen    map[string]int
}

func (builder *taskBuilder) add(action models.CareAction, day time.Time, detail string) {
	defaults := builder.catalog.Action(action)

	description := defaults.Description
	if name := displayName(builder.profile); name != "" {
		description += " (" + name + ")"
	}
	if detail != "" {
		description += ": " + detail
	}

	key := day.Format("20060102") + "-" + string(action)
	ordinal := builder.seen[key]
	builder.seen[key] = ordinal + 1

	builder.tasks = append(builder.tasks, models.CareTask{
		ID:               taskID(builder.profile.ID, key, ordinal),
		Action:           action,
		Priority:         defaults.Priority,
		ScheduledDate:    day,
		Description:      description,
		WeatherDependent: action.WeatherDependent(),
		DurationMinutes:  defaults.DurationMinutes,
	})
}

func taskID(orchidID string, key string, ordinal int) string {
	name := fmt.Sprintf("%s/%s/%d", orchidID, key, ordinal)
	return uuid.NewSHA1(taskNamespace, []byte(name)).String()
}

func displayName(profile models.OrchidProfile) string {
	if profile.Name != "" {
		return profile.Name
	}
	return strings.TrimSpace(profile.Genus + " " + profile.Species)
}
