package export_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

func day(value string) time.Time {
	parsed, _ := time.Parse(models.DateLayout, value)
	return parsed
}

func sampleCalendar() *models.CareCalendar {
	lastRepotted := day("2024-03-02")
	completedAt := time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)
	stamp := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	return &models.CareCalendar{
		ID:       "calendar-1",
		OrchidID: "orchid-1",
		Profile: models.OrchidProfile{
			ID:           "orchid-1",
			Name:         "Kitchen Phal",
			Genus:        "Phalaenopsis",
			GrowthStage:  models.StageMatureBlooming,
			LastRepotted: &lastRepotted,
		},
		StartDate:          day("2025-06-02"),
		EndDate:            day("2025-06-03"),
		WeatherIntegration: true,
		AutoAdaptation:     true,
		CreatedAt:          stamp,
		LastUpdated:        stamp,
		Tasks: []models.CareTask{
			{
				ID:               "task-1",
				Action:           models.ActionWatering,
				Priority:         models.PriorityCritical,
				ScheduledDate:    day("2025-06-02"),
				Description:      `Water thoroughly, then "drain" fully`,
				WeatherDependent: true,
				DurationMinutes:  15,
				Notes:            []string{"Low humidity (30%): watering is critical", "Blooming: keep conditions stable"},
				Completed:        true,
				CompletedAt:      &completedAt,
				Weather:          &models.WeatherSnapshot{TemperatureAvg: 24, HumidityAvg: 30, Season: models.SeasonSummer},
			},
			{
				ID:              "task-2",
				Action:          models.ActionPestInspection,
				Priority:        models.PriorityMedium,
				ScheduledDate:   day("2025-06-02"),
				Description:     "Inspect leaves and roots",
				DurationMinutes: 15,
			},
			{
				ID:              "task-3",
				Action:          models.ActionPestInspection,
				Priority:        models.PriorityLow,
				ScheduledDate:   day("2025-06-02"),
				Description:     "Second look after spraying",
				DurationMinutes: 5,
			},
		},
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	calendar := sampleCalendar()

	data, err := export.JSON(calendar)
	if err != nil {
		t.Fatalf("exporting json: %v", err)
	}
	if !bytes.Contains(data, []byte(`"date": "2025-06-02"`)) {
		t.Errorf("expected plain dates in document, got %s", data)
	}

	parsed, err := export.ParseJSON(data)
	if err != nil {
		t.Fatalf("parsing json: %v", err)
	}
	if !reflect.DeepEqual(parsed.Tasks[0], calendar.Tasks[0]) {
		t.Errorf("expected first task preserved\nwant %+v\ngot  %+v", calendar.Tasks[0], parsed.Tasks[0])
	}
	if len(parsed.Tasks) != 3 || parsed.Tasks[1].Notes == nil {
		t.Errorf("expected all tasks with non-nil notes, got %+v", parsed.Tasks)
	}
	if !parsed.Profile.LastRepotted.Equal(*calendar.Profile.LastRepotted) {
		t.Errorf("expected last repotted preserved, got %v", parsed.Profile.LastRepotted)
	}
	if !parsed.StartDate.Equal(calendar.StartDate) || !parsed.LastUpdated.Equal(calendar.LastUpdated) {
		t.Error("expected calendar dates preserved")
	}

	again, err := export.JSON(parsed)
	if err != nil {
		t.Fatalf("re-exporting json: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Errorf("expected identical bytes after round trip\nfirst:\n%s\nsecond:\n%s", data, again)
	}
}

func TestParseJSON_RejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name     string
		document string
	}{
		{"not json", `{`},
		{"bad start date", `{"start_date": "June 2", "end_date": "2025-06-03"}`},
		{"unknown action", `{"start_date": "2025-06-02", "end_date": "2025-06-03", "tasks": [{"date": "2025-06-02", "action": "dancing", "priority": "high"}]}`},
		{"unknown priority", `{"start_date": "2025-06-02", "end_date": "2025-06-03", "tasks": [{"date": "2025-06-02", "action": "watering", "priority": "urgent"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := export.ParseJSON([]byte(tt.document)); !errors.Is(err, export.ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestICS(t *testing.T) {
	data, err := export.ICS(sampleCalendar())
	if err != nil {
		t.Fatalf("exporting ics: %v", err)
	}

	parsed, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parsing exported ics: %v", err)
	}

	events := parsed.Events()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	uids := make(map[string]bool)
	for _, event := range events {
		uid := event.GetProperty(ical.ComponentPropertyUniqueId).Value
		if uids[uid] {
			t.Errorf("duplicate uid %s", uid)
		}
		uids[uid] = true
	}
	if !uids["orchid-1-20250602-watering@orchid-care"] || !uids["orchid-1-20250602-pest_inspection-2@orchid-care"] {
		t.Errorf("unexpected uids %v", uids)
	}

	summary := events[0].GetProperty(ical.ComponentPropertySummary).Value
	if summary != "[Critical] Watering" {
		t.Errorf("expected summary [Critical] Watering, got %q", summary)
	}
	if priority := events[0].GetProperty(ical.ComponentPropertyPriority).Value; priority != "1" {
		t.Errorf("expected priority 1, got %q", priority)
	}
	start := events[0].GetProperty(ical.ComponentPropertyDtStart)
	if start == nil || start.Value != "20250602" {
		t.Errorf("expected all-day start 20250602, got %+v", start)
	}
	if !strings.Contains(string(data), "X-ORCHID-COMPLETED:TRUE") {
		t.Error("expected completion marker on completed task")
	}
}

func TestICS_IsStable(t *testing.T) {
	first, err := export.ICS(sampleCalendar())
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	second, err := export.ICS(sampleCalendar())
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected identical ics output for identical calendars")
	}
}

func TestCSV(t *testing.T) {
	data, err := export.CSV(sampleCalendar())
	if err != nil {
		t.Fatalf("exporting csv: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d records", len(records))
	}
	if !reflect.DeepEqual(records[0], export.CSVHeader) {
		t.Errorf("unexpected header %v", records[0])
	}

	first := records[1]
	if first[1] != "2025-06-02" || first[2] != "watering" || first[3] != "critical" || first[6] != "true" {
		t.Errorf("unexpected first row %v", first)
	}
	if first[7] != `Water thoroughly, then "drain" fully` {
		t.Errorf("expected description with comma and quotes preserved, got %q", first[7])
	}
	if first[8] != "Low humidity (30%): watering is critical | Blooming: keep conditions stable" {
		t.Errorf("unexpected notes column %q", first[8])
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if !strings.HasSuffix(lines[2], `,"Inspect leaves and roots",""`) {
		t.Errorf("expected description and notes always quoted, got %s", lines[2])
	}
}

func TestParseFormat(t *testing.T) {
	format, err := export.ParseFormat(" ICS ")
	if err != nil || format != export.FormatICS {
		t.Errorf("expected ics, got %q (%v)", format, err)
	}
	if _, err := export.ParseFormat("pdf"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestAll_FailuresAreIndependent(t *testing.T) {
	calendar := sampleCalendar()
	calendar.Tasks[0].Weather.RainfallMM = math.NaN()

	results := export.All(calendar)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for _, result := range results {
		switch result.Format {
		case export.FormatJSON:
			if result.Err == nil {
				t.Error("expected json export to fail on NaN rainfall")
			}
		default:
			if result.Err != nil || len(result.Data) == 0 {
				t.Errorf("expected %s export to succeed, got %v", result.Format, result.Err)
			}
		}
	}
}
