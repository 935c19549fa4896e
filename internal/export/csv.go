package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// CSVHeader is the fixed column order of the tabular export.
var CSVHeader = []string{
	"id",
	"date",
	"action",
	"priority",
	"duration_minutes",
	"weather_dependent",
	"completed",
	"description",
	"notes",
}

const noteSeparator = " | "

// CSV renders one row per task. Description and notes are always quoted.
func CSV(calendar *models.CareCalendar) ([]byte, error) {
	var builder strings.Builder
	builder.WriteString(strings.Join(CSVHeader, ","))
	builder.WriteString("\n")

	for _, task := range calendar.Tasks {
		if task.ScheduledDate.IsZero() {
			return nil, fmt.Errorf("exporting csv: task %s has no scheduled date", task.ID)
		}
		row := []string{
			task.ID,
			task.ScheduledDate.Format(models.DateLayout),
			string(task.Action),
			string(task.Priority),
			strconv.Itoa(task.DurationMinutes),
			strconv.FormatBool(task.WeatherDependent),
			strconv.FormatBool(task.Completed),
			quoteField(task.Description),
			quoteField(strings.Join(task.Notes, noteSeparator)),
		}
		builder.WriteString(strings.Join(row, ","))
		builder.WriteString("\n")
	}
	return []byte(builder.String()), nil
}

func quoteField(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
