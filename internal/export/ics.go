package export

import (
	"fmt"
	"strconv"
	"strings"

	ical "github.com/arran4/golang-ical"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

const uidDomain = "orchid-care"

// iCalendar PRIORITY: 1 is highest, 9 lowest.
var icalPriorities = map[models.Priority]int{
	models.PriorityCritical: 1,
	models.PriorityHigh:     3,
	models.PriorityMedium:   5,
	models.PriorityLow:      7,
	models.PriorityOptional: 9,
}

// ICS renders one all-day VEVENT per task. UIDs are derived from the orchid,
// the date and the action, so re-exporting the same calendar yields the same
// events for subscribers.
func ICS(calendar *models.CareCalendar) ([]byte, error) {
	name := calendarName(calendar.Profile)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//Orchid Care//Care Calendar//EN")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(name)

	seen := make(map[string]int)
	for _, task := range calendar.Tasks {
		if !task.Action.Valid() {
			return nil, fmt.Errorf("exporting ics: task %s has unknown action %q", task.ID, task.Action)
		}

		uid := eventUID(calendar.OrchidID, task, seen)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(calendar.LastUpdated.UTC())
		event.SetAllDayStartAt(task.ScheduledDate)
		event.SetAllDayEndAt(task.ScheduledDate.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("[%s] %s", capitalizeFirst(string(task.Priority)), actionLabel(task.Action)))
		event.SetDescription(eventDescription(task))
		event.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(task.Action)))
		event.SetProperty(ical.ComponentPropertyPriority, strconv.Itoa(icalPriorities[task.Priority]))
		if task.Completed {
			event.SetProperty(ical.ComponentProperty("X-ORCHID-COMPLETED"), "TRUE")
		}
	}

	return []byte(cal.Serialize()), nil
}

func eventUID(orchidID string, task models.CareTask, seen map[string]int) string {
	base := fmt.Sprintf("%s-%s-%s", orchidID, task.ScheduledDate.Format("20060102"), task.Action)
	seen[base]++
	if count := seen[base]; count > 1 {
		base += "-" + strconv.Itoa(count)
	}
	return base + "@" + uidDomain
}

func eventDescription(task models.CareTask) string {
	var builder strings.Builder
	builder.WriteString(task.Description)
	builder.WriteString(fmt.Sprintf("\nDuration: %d minutes", task.DurationMinutes))
	for _, note := range task.Notes {
		builder.WriteString("\n- ")
		builder.WriteString(note)
	}
	return builder.String()
}

func calendarName(profile models.OrchidProfile) string {
	if profile.Name != "" {
		return profile.Name + " Care"
	}
	if genus := strings.TrimSpace(profile.Genus + " " + profile.Species); genus != "" {
		return genus + " Care"
	}
	return "Orchid Care"
}

func actionLabel(action models.CareAction) string {
	return capitalizeFirst(strings.ReplaceAll(string(action), "_", " "))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
