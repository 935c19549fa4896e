package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

var priorityColors = map[models.Priority]lipgloss.Color{
	models.PriorityCritical: lipgloss.Color("196"),
	models.PriorityHigh:     lipgloss.Color("208"),
	models.PriorityMedium:   lipgloss.Color("220"),
	models.PriorityLow:      lipgloss.Color("70"),
	models.PriorityOptional: lipgloss.Color("240"),
}

const (
	dateColumnWidth     = 12
	priorityColumnWidth = 10
	actionColumnWidth   = 24
)

func RenderCalendar(calendar *models.CareCalendar) string {
	var b strings.Builder
	writeSectionHeader(&b, "Care calendar")
	writeLabeledLine(&b, "Orchid", orchidLabel(calendar.Profile))
	writeLabeledLine(&b, "Range", calendar.StartDate.Format(models.DateLayout)+" to "+calendar.EndDate.Format(models.DateLayout))
	writeLabeledLine(&b, "Tasks", fmt.Sprintf("%d", len(calendar.Tasks)))
	for _, warning := range calendar.Warnings {
		writeLabeledLine(&b, "Warning", warning)
	}
	b.WriteString("\n")
	b.WriteString(RenderTasks(calendar.Tasks))
	return b.String()
}

// RenderTasks lays tasks out one per line, grouped visually by date.
func RenderTasks(tasks []models.CareTask) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(
		pad("DATE", dateColumnWidth) + pad("PRIORITY", priorityColumnWidth) + pad("ACTION", actionColumnWidth) + "MIN"))
	b.WriteString("\n")

	previous := ""
	for _, task := range tasks {
		date := task.ScheduledDate.Format(models.DateLayout)
		shown := date
		if date == previous {
			shown = ""
		}
		previous = date

		priority := lipgloss.NewStyle().Foreground(priorityColors[task.Priority]).Render(pad(string(task.Priority), priorityColumnWidth))
		line := pad(shown, dateColumnWidth) + priority + pad(string(task.Action), actionColumnWidth) + fmt.Sprintf("%d", task.DurationMinutes)
		if task.Completed {
			line = doneStyle.Render(pad(shown, dateColumnWidth) + pad(string(task.Priority), priorityColumnWidth) +
				pad(string(task.Action), actionColumnWidth) + fmt.Sprintf("%d", task.DurationMinutes))
		}
		b.WriteString(line)
		b.WriteString("\n")

		for _, note := range task.Notes {
			b.WriteString(pad("", dateColumnWidth+priorityColumnWidth))
			b.WriteString(mutedStyle.Render("- " + note))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func RenderSummary(calendar *models.CareCalendar, summary models.CalendarSummary) string {
	var b strings.Builder
	writeSectionHeader(&b, "Summary")
	writeLabeledLine(&b, "Orchid", orchidLabel(calendar.Profile))
	writeLabeledLine(&b, "Tasks", fmt.Sprintf("%d (%d completed)", summary.TotalTasks, summary.CompletedTasks))
	writeLabeledLine(&b, "Total minutes", fmt.Sprintf("%d", summary.TotalMinutes))
	writeLabeledLine(&b, "Weekly estimate", fmt.Sprintf("%d min", summary.EstimatedWeeklyMinutes))
	writeLabeledLine(&b, "Weather dependent", fmt.Sprintf("%d", summary.WeatherDependentTasks))
	b.WriteString("\n")

	writeSectionHeader(&b, "By priority")
	for _, priority := range models.Priorities {
		if count := summary.ByPriority[priority]; count > 0 {
			writeLabeledLine(&b, string(priority), fmt.Sprintf("%d", count))
		}
	}
	b.WriteString("\n")

	writeSectionHeader(&b, "By action")
	for _, action := range models.CareActions {
		if count := summary.ByAction[action]; count > 0 {
			writeLabeledLine(&b, string(action), fmt.Sprintf("%d", count))
		}
	}
	b.WriteString("\n")

	writeSectionHeader(&b, "By week")
	weeks := make([]string, 0, len(summary.WeeklyHistogram))
	for week := range summary.WeeklyHistogram {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)
	for _, week := range weeks {
		count := summary.WeeklyHistogram[week]
		writeLabeledLine(&b, week, strings.Repeat("#", count)+" "+mutedStyle.Render(fmt.Sprintf("%d", count)))
	}
	return b.String()
}

func orchidLabel(profile models.OrchidProfile) string {
	label := strings.TrimSpace(profile.Genus + " " + profile.Species)
	if profile.Name != "" {
		label = profile.Name + " (" + label + ")"
	}
	return label + ", " + string(profile.GrowthStage)
}

func pad(value string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(value)
}

func writeSectionHeader(b *strings.Builder, title string) {
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
}

func writeLabeledLine(b *strings.Builder, label string, value string) {
	b.WriteString(labelStyle.Render(label + ": "))
	b.WriteString(value)
	b.WriteString("\n")
}
