package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

var ErrInvalidDocument = errors.New("invalid calendar document")

type calendarDocument struct {
	ID                 string            `json:"id"`
	OrchidID           string            `json:"orchid_id"`
	Profile            profileDocument   `json:"profile"`
	StartDate          string            `json:"start_date"`
	EndDate            string            `json:"end_date"`
	WeatherIntegration bool              `json:"weather_integration"`
	AutoAdaptation     bool              `json:"auto_adaptation"`
	PreferredCareTimes []models.CareTime `json:"preferred_care_times"`
	Warnings           []string          `json:"warnings"`
	CreatedAt          time.Time         `json:"created_at"`
	LastUpdated        time.Time         `json:"last_updated"`
	Tasks              []TaskDocument    `json:"tasks"`
}

type profileDocument struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Genus         string             `json:"genus"`
	Species       string             `json:"species"`
	GrowthStage   models.GrowthStage `json:"growth_stage"`
	Location      string             `json:"location"`
	PotType       string             `json:"pot_type"`
	PottingMedium string             `json:"potting_medium"`
	LastRepotted  *string            `json:"last_repotted"`
	HealthStatus  string             `json:"health_status"`
	SpecialNeeds  []string           `json:"special_needs"`
	CreatedAt     *time.Time         `json:"created_at,omitempty"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

type TaskDocument struct {
	ID               string            `json:"id"`
	Date             string            `json:"date"`
	Action           models.CareAction `json:"action"`
	Priority         models.Priority   `json:"priority"`
	Description      string            `json:"description"`
	WeatherDependent bool              `json:"weather_dependent"`
	DurationMinutes  int               `json:"duration_minutes"`
	Notes            []string          `json:"notes"`
	Completed        bool              `json:"completed"`
	CompletedAt      *time.Time        `json:"completed_at"`
	Weather          *WeatherDocument  `json:"weather"`
}

type WeatherDocument struct {
	TemperatureAvg float64       `json:"temperature_avg"`
	HumidityAvg    float64       `json:"humidity_avg"`
	RainfallMM     float64       `json:"rainfall_mm"`
	SunlightHours  float64       `json:"sunlight_hours"`
	WindSpeed      float64       `json:"wind_speed"`
	Pressure       float64       `json:"pressure"`
	Season         models.Season `json:"season,omitempty"`
}

// JSON renders the fully detailed structured form of a calendar.
func JSON(calendar *models.CareCalendar) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toDocument(calendar)); err != nil {
		return nil, fmt.Errorf("encoding calendar json: %w", err)
	}
	return buffer.Bytes(), nil
}

// ParseJSON reads the structured form produced by JSON.
func ParseJSON(data []byte) (*models.CareCalendar, error) {
	var document calendarDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return fromDocument(document)
}

func toDocument(calendar *models.CareCalendar) calendarDocument {
	document := calendarDocument{
		ID:                 calendar.ID,
		OrchidID:           calendar.OrchidID,
		Profile:            toProfileDocument(calendar.Profile),
		StartDate:          calendar.StartDate.Format(models.DateLayout),
		EndDate:            calendar.EndDate.Format(models.DateLayout),
		WeatherIntegration: calendar.WeatherIntegration,
		AutoAdaptation:     calendar.AutoAdaptation,
		PreferredCareTimes: nonNil(calendar.PreferredCareTimes),
		Warnings:           nonNil(calendar.Warnings),
		CreatedAt:          calendar.CreatedAt.UTC(),
		LastUpdated:        calendar.LastUpdated.UTC(),
		Tasks:              make([]TaskDocument, 0, len(calendar.Tasks)),
	}

	for _, task := range calendar.Tasks {
		document.Tasks = append(document.Tasks, NewTaskDocument(task))
	}
	return document
}

// NewTaskDocument is the wire form of a single task, as embedded in the
// calendar document.
func NewTaskDocument(task models.CareTask) TaskDocument {
	document := TaskDocument{
		ID:               task.ID,
		Date:             task.ScheduledDate.Format(models.DateLayout),
		Action:           task.Action,
		Priority:         task.Priority,
		Description:      task.Description,
		WeatherDependent: task.WeatherDependent,
		DurationMinutes:  task.DurationMinutes,
		Notes:            nonNil(task.Notes),
		Completed:        task.Completed,
	}
	if task.CompletedAt != nil {
		completedAt := task.CompletedAt.UTC()
		document.CompletedAt = &completedAt
	}
	if task.Weather != nil {
		document.Weather = &WeatherDocument{
			TemperatureAvg: task.Weather.TemperatureAvg,
			HumidityAvg:    task.Weather.HumidityAvg,
			RainfallMM:     task.Weather.RainfallMM,
			SunlightHours:  task.Weather.SunlightHours,
			WindSpeed:      task.Weather.WindSpeed,
			Pressure:       task.Weather.Pressure,
			Season:         task.Weather.Season,
		}
	}
	return document
}

func toProfileDocument(profile models.OrchidProfile) profileDocument {
	document := profileDocument{
		ID:            profile.ID,
		Name:          profile.Name,
		Genus:         profile.Genus,
		Species:       profile.Species,
		GrowthStage:   profile.GrowthStage,
		Location:      profile.Location,
		PotType:       profile.PotType,
		PottingMedium: profile.PottingMedium,
		HealthStatus:  profile.HealthStatus,
		SpecialNeeds:  nonNil(profile.SpecialNeeds),
	}
	if profile.LastRepotted != nil {
		lastRepotted := profile.LastRepotted.Format(models.DateLayout)
		document.LastRepotted = &lastRepotted
	}
	if !profile.CreatedAt.IsZero() {
		createdAt := profile.CreatedAt.UTC()
		document.CreatedAt = &createdAt
	}
	if !profile.UpdatedAt.IsZero() {
		updatedAt := profile.UpdatedAt.UTC()
		document.UpdatedAt = &updatedAt
	}
	return document
}

func fromDocument(document calendarDocument) (*models.CareCalendar, error) {
	start, err := parseDate("start_date", document.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", document.EndDate)
	if err != nil {
		return nil, err
	}
	profile, err := fromProfileDocument(document.Profile)
	if err != nil {
		return nil, err
	}

	calendar := &models.CareCalendar{
		ID:                 document.ID,
		OrchidID:           document.OrchidID,
		Profile:            profile,
		StartDate:          start,
		EndDate:            end,
		WeatherIntegration: document.WeatherIntegration,
		AutoAdaptation:     document.AutoAdaptation,
		PreferredCareTimes: document.PreferredCareTimes,
		Warnings:           document.Warnings,
		CreatedAt:          document.CreatedAt,
		LastUpdated:        document.LastUpdated,
		Tasks:              make([]models.CareTask, 0, len(document.Tasks)),
	}

	for i, taskDoc := range document.Tasks {
		date, err := parseDate(fmt.Sprintf("tasks[%d].date", i), taskDoc.Date)
		if err != nil {
			return nil, err
		}
		if !taskDoc.Action.Valid() {
			return nil, fmt.Errorf("%w: tasks[%d] has unknown action %q", ErrInvalidDocument, i, taskDoc.Action)
		}
		if !taskDoc.Priority.Valid() {
			return nil, fmt.Errorf("%w: tasks[%d] has unknown priority %q", ErrInvalidDocument, i, taskDoc.Priority)
		}

		task := models.CareTask{
			ID:               taskDoc.ID,
			Action:           taskDoc.Action,
			Priority:         taskDoc.Priority,
			ScheduledDate:    date,
			Description:      taskDoc.Description,
			WeatherDependent: taskDoc.WeatherDependent,
			DurationMinutes:  taskDoc.DurationMinutes,
			Notes:            taskDoc.Notes,
			Completed:        taskDoc.Completed,
			CompletedAt:      taskDoc.CompletedAt,
		}
		if taskDoc.Weather != nil {
			task.Weather = &models.WeatherSnapshot{
				TemperatureAvg: taskDoc.Weather.TemperatureAvg,
				HumidityAvg:    taskDoc.Weather.HumidityAvg,
				RainfallMM:     taskDoc.Weather.RainfallMM,
				SunlightHours:  taskDoc.Weather.SunlightHours,
				WindSpeed:      taskDoc.Weather.WindSpeed,
				Pressure:       taskDoc.Weather.Pressure,
				Season:         taskDoc.Weather.Season,
			}
		}
		calendar.Tasks = append(calendar.Tasks, task)
	}
	return calendar, nil
}

func fromProfileDocument(document profileDocument) (models.OrchidProfile, error) {
	profile := models.OrchidProfile{
		ID:            document.ID,
		Name:          document.Name,
		Genus:         document.Genus,
		Species:       document.Species,
		GrowthStage:   document.GrowthStage,
		Location:      document.Location,
		PotType:       document.PotType,
		PottingMedium: document.PottingMedium,
		HealthStatus:  document.HealthStatus,
		SpecialNeeds:  document.SpecialNeeds,
	}
	if document.LastRepotted != nil {
		lastRepotted, err := parseDate("profile.last_repotted", *document.LastRepotted)
		if err != nil {
			return models.OrchidProfile{}, err
		}
		profile.LastRepotted = &lastRepotted
	}
	if document.CreatedAt != nil {
		profile.CreatedAt = *document.CreatedAt
	}
	if document.UpdatedAt != nil {
		profile.UpdatedAt = *document.UpdatedAt
	}
	return profile, nil
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", ErrInvalidDocument, field, value)
	}
	return date, nil
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
