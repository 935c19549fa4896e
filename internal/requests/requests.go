package requests

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

var ErrBadRequest = errors.New("bad request")

// Orchid is the wire form of an orchid profile in requests.
type Orchid struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Genus         string   `json:"genus"`
	Species       string   `json:"species"`
	GrowthStage   string   `json:"growth_stage"`
	Location      string   `json:"location"`
	PotType       string   `json:"pot_type"`
	PottingMedium string   `json:"potting_medium"`
	LastRepotted  string   `json:"last_repotted"`
	HealthStatus  string   `json:"health_status"`
	SpecialNeeds  []string `json:"special_needs"`
}

func (request Orchid) Profile() (models.OrchidProfile, error) {
	if strings.TrimSpace(request.Genus) == "" {
		return models.OrchidProfile{}, fmt.Errorf("%w: genus is required", ErrBadRequest)
	}
	stage := models.GrowthStage(request.GrowthStage)
	if !stage.Valid() {
		return models.OrchidProfile{}, fmt.Errorf("%w: unknown growth stage %q", ErrBadRequest, request.GrowthStage)
	}

	profile := models.OrchidProfile{
		ID:            request.ID,
		Name:          request.Name,
		Genus:         strings.TrimSpace(request.Genus),
		Species:       request.Species,
		GrowthStage:   stage,
		Location:      request.Location,
		PotType:       request.PotType,
		PottingMedium: request.PottingMedium,
		HealthStatus:  request.HealthStatus,
		SpecialNeeds:  request.SpecialNeeds,
	}
	if request.LastRepotted != "" {
		lastRepotted, err := parseDate("last_repotted", request.LastRepotted)
		if err != nil {
			return models.OrchidProfile{}, err
		}
		profile.LastRepotted = &lastRepotted
	}
	return profile, nil
}

type OrchidResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Genus         string    `json:"genus"`
	Species       string    `json:"species"`
	GrowthStage   string    `json:"growth_stage"`
	Location      string    `json:"location"`
	PotType       string    `json:"pot_type"`
	PottingMedium string    `json:"potting_medium"`
	LastRepotted  *string   `json:"last_repotted"`
	HealthStatus  string    `json:"health_status"`
	SpecialNeeds  []string  `json:"special_needs"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewOrchidResponse(profile models.OrchidProfile) OrchidResponse {
	response := OrchidResponse{
		ID:            profile.ID,
		Name:          profile.Name,
		Genus:         profile.Genus,
		Species:       profile.Species,
		GrowthStage:   string(profile.GrowthStage),
		Location:      profile.Location,
		PotType:       profile.PotType,
		PottingMedium: profile.PottingMedium,
		HealthStatus:  profile.HealthStatus,
		SpecialNeeds:  profile.SpecialNeeds,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
	if response.SpecialNeeds == nil {
		response.SpecialNeeds = []string{}
	}
	if profile.LastRepotted != nil {
		lastRepotted := profile.LastRepotted.Format(models.DateLayout)
		response.LastRepotted = &lastRepotted
	}
	return response
}

// Weather is one forecast or observation covering [start_date, end_date].
type Weather struct {
	TemperatureAvg float64 `json:"temperature_avg"`
	HumidityAvg    float64 `json:"humidity_avg"`
	RainfallMM     float64 `json:"rainfall_mm"`
	SunlightHours  float64 `json:"sunlight_hours"`
	WindSpeed      float64 `json:"wind_speed"`
	Pressure       float64 `json:"pressure"`
	Season         string  `json:"season"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
}

func (request Weather) Pattern() (models.WeatherPattern, error) {
	start, err := parseDate("start_date", request.StartDate)
	if err != nil {
		return models.WeatherPattern{}, fmt.Errorf("%w: %v", services.ErrMalformedWeatherRange, err)
	}
	end, err := parseDate("end_date", request.EndDate)
	if err != nil {
		return models.WeatherPattern{}, fmt.Errorf("%w: %v", services.ErrMalformedWeatherRange, err)
	}
	return models.WeatherPattern{
		TemperatureAvg: request.TemperatureAvg,
		HumidityAvg:    request.HumidityAvg,
		RainfallMM:     request.RainfallMM,
		SunlightHours:  request.SunlightHours,
		WindSpeed:      request.WindSpeed,
		Pressure:       request.Pressure,
		Season:         models.Season(request.Season),
		StartDate:      start,
		EndDate:        end,
	}, nil
}

type Preferences struct {
	UnavailableDays    []string `json:"unavailable_days"`
	PreferredCareTimes []string `json:"preferred_care_times"`
	SkillLevel         string   `json:"skill_level"`
	MaxDailyMinutes    int      `json:"max_daily_minutes"`
}

func (request Preferences) UserPreferences() (models.UserPreferences, error) {
	preferences := models.UserPreferences{
		SkillLevel:      models.SkillLevel(request.SkillLevel),
		MaxDailyMinutes: request.MaxDailyMinutes,
	}
	for _, name := range request.UnavailableDays {
		day, err := ParseWeekday(name)
		if err != nil {
			return models.UserPreferences{}, err
		}
		preferences.UnavailableDays = append(preferences.UnavailableDays, day)
	}
	for _, careTime := range request.PreferredCareTimes {
		preferences.PreferredCareTimes = append(preferences.PreferredCareTimes, models.CareTime(careTime))
	}
	return preferences, nil
}

// Generate is the JSON body accepted by the calendar generator, both over
// HTTP and from request files given to the CLI. AutoAdaptation defaults to
// true when omitted.
type Generate struct {
	StartDate      string       `json:"start_date"`
	EndDate        string       `json:"end_date"`
	Weather        []Weather    `json:"weather"`
	Preferences    *Preferences `json:"preferences"`
	AutoAdaptation *bool        `json:"auto_adaptation"`
	Orchid         *Orchid      `json:"orchid,omitempty"`
}

// Build converts the request into an engine request for profile. When profile
// is nil the embedded orchid is used; otherwise an embedded orchid is rejected.
func (request Generate) Build(profile *models.OrchidProfile) (services.GenerateRequest, error) {
	if profile != nil && request.Orchid != nil {
		return services.GenerateRequest{}, fmt.Errorf("%w: orchid is taken from the path and must not be in the body", ErrBadRequest)
	}
	if profile == nil {
		if request.Orchid == nil {
			return services.GenerateRequest{}, fmt.Errorf("%w: orchid is required", ErrBadRequest)
		}
		embedded, err := request.Orchid.Profile()
		if err != nil {
			return services.GenerateRequest{}, err
		}
		profile = &embedded
	}

	start, err := parseDate("start_date", request.StartDate)
	if err != nil {
		return services.GenerateRequest{}, fmt.Errorf("%w: %v", services.ErrInvalidDateRange, err)
	}
	end, err := parseDate("end_date", request.EndDate)
	if err != nil {
		return services.GenerateRequest{}, fmt.Errorf("%w: %v", services.ErrInvalidDateRange, err)
	}

	generate := services.GenerateRequest{
		Profile:        *profile,
		StartDate:      start,
		EndDate:        end,
		AutoAdaptation: true,
	}
	if request.AutoAdaptation != nil {
		generate.AutoAdaptation = *request.AutoAdaptation
	}
	for i, weather := range request.Weather {
		pattern, err := weather.Pattern()
		if err != nil {
			return services.GenerateRequest{}, fmt.Errorf("weather[%d]: %w", i, err)
		}
		generate.Weather = append(generate.Weather, pattern)
	}
	if request.Preferences != nil {
		preferences, err := request.Preferences.UserPreferences()
		if err != nil {
			return services.GenerateRequest{}, err
		}
		generate.Preferences = &preferences
	}
	return generate, nil
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if normalized == full || normalized == full[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: unknown weekday %q", services.ErrConfiguration, name)
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", ErrBadRequest, field, value)
	}
	return date, nil
}
