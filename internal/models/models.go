package models

import "time"

// DateLayout is the wire format for civil dates.
const DateLayout = "2006-01-02"

type CareAction string

const (
	ActionWatering              CareAction = "watering"
	ActionFertilizing           CareAction = "fertilizing"
	ActionRepotting             CareAction = "repotting"
	ActionHumidityAdjustment    CareAction = "humidity_adjustment"
	ActionTemperatureMonitoring CareAction = "temperature_monitoring"
	ActionAirCirculation        CareAction = "air_circulation"
	ActionPestInspection        CareAction = "pest_inspection"
	ActionPruning               CareAction = "pruning"
	ActionLightAdjustment       CareAction = "light_adjustment"
	ActionMisting               CareAction = "misting"
)

var CareActions = []CareAction{
	ActionWatering,
	ActionFertilizing,
	ActionRepotting,
	ActionHumidityAdjustment,
	ActionTemperatureMonitoring,
	ActionAirCirculation,
	ActionPestInspection,
	ActionPruning,
	ActionLightAdjustment,
	ActionMisting,
}

func (action CareAction) Valid() bool {
	for _, known := range CareActions {
		if action == known {
			return true
		}
	}
	return false
}

// WeatherDependent reports whether tasks of this kind react to weather.
func (action CareAction) WeatherDependent() bool {
	switch action {
	case ActionWatering, ActionMisting, ActionHumidityAdjustment,
		ActionTemperatureMonitoring, ActionAirCirculation:
		return true
	}
	return false
}

type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
	PriorityOptional Priority = "optional"
)

var Priorities = []Priority{
	PriorityCritical,
	PriorityHigh,
	PriorityMedium,
	PriorityLow,
	PriorityOptional,
}

// Rank orders priorities from most (0) to least urgent. Unknown values sort last.
func (priority Priority) Rank() int {
	for i, known := range Priorities {
		if priority == known {
			return i
		}
	}
	return len(Priorities)
}

func (priority Priority) Valid() bool {
	return priority.Rank() < len(Priorities)
}

// Raise returns the more urgent of priority and floor.
func (priority Priority) Raise(floor Priority) Priority {
	if floor.Rank() < priority.Rank() {
		return floor
	}
	return priority
}

// Lower returns the less urgent of priority and ceiling.
func (priority Priority) Lower(ceiling Priority) Priority {
	if ceiling.Rank() > priority.Rank() {
		return ceiling
	}
	return priority
}

type GrowthStage string

const (
	StageSeedling         GrowthStage = "seedling"
	StageJuvenile         GrowthStage = "juvenile"
	StageMatureVegetative GrowthStage = "mature_vegetative"
	StageMatureBlooming   GrowthStage = "mature_blooming"
	StageDormant          GrowthStage = "dormant"
	StageRecovering       GrowthStage = "recovering"
)

func (stage GrowthStage) Valid() bool {
	switch stage {
	case StageSeedling, StageJuvenile, StageMatureVegetative,
		StageMatureBlooming, StageDormant, StageRecovering:
		return true
	}
	return false
}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonFor derives the Northern-hemisphere season from a month.
func SeasonFor(month time.Month) Season {
	switch month {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillExpert       SkillLevel = "expert"
)

func (level SkillLevel) Valid() bool {
	switch level {
	case SkillBeginner, SkillIntermediate, SkillExpert:
		return true
	}
	return false
}

type CareTime string

const (
	CareTimeMorning   CareTime = "morning"
	CareTimeAfternoon CareTime = "afternoon"
	CareTimeEvening   CareTime = "evening"
)

func (careTime CareTime) Valid() bool {
	switch careTime {
	case CareTimeMorning, CareTimeAfternoon, CareTimeEvening:
		return true
	}
	return false
}

// WeatherPattern applies to every date in [StartDate, EndDate].
type WeatherPattern struct {
	TemperatureAvg float64
	HumidityAvg    float64
	RainfallMM     float64
	SunlightHours  float64
	WindSpeed      float64
	Pressure       float64
	Season         Season
	StartDate      time.Time
	EndDate        time.Time
}

// Covers reports whether date falls inside the pattern's inclusive range.
func (pattern WeatherPattern) Covers(date time.Time) bool {
	return !date.Before(pattern.StartDate) && !date.After(pattern.EndDate)
}

// Snapshot captures the conditions that last influenced a task.
func (pattern WeatherPattern) Snapshot() *WeatherSnapshot {
	return &WeatherSnapshot{
		TemperatureAvg: pattern.TemperatureAvg,
		HumidityAvg:    pattern.HumidityAvg,
		RainfallMM:     pattern.RainfallMM,
		SunlightHours:  pattern.SunlightHours,
		WindSpeed:      pattern.WindSpeed,
		Pressure:       pattern.Pressure,
		Season:         pattern.Season,
	}
}

type WeatherSnapshot struct {
	TemperatureAvg float64
	HumidityAvg    float64
	RainfallMM     float64
	SunlightHours  float64
	WindSpeed      float64
	Pressure       float64
	Season         Season
}

type CareTask struct {
	ID               string
	Action           CareAction
	Priority         Priority
	ScheduledDate    time.Time
	Description      string
	WeatherDependent bool
	DurationMinutes  int
	Notes            []string
	Completed        bool
	CompletedAt      *time.Time
	Weather          *WeatherSnapshot
}

// AddNote appends to the annotation trail; notes are never rewritten.
func (task *CareTask) AddNote(note string) {
	task.Notes = append(task.Notes, note)
}

type OrchidProfile struct {
	ID            string
	Name          string
	Genus         string
	Species       string
	GrowthStage   GrowthStage
	Location      string
	PotType       string
	PottingMedium string
	LastRepotted  *time.Time
	HealthStatus  string
	SpecialNeeds  []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type UserPreferences struct {
	UnavailableDays    []time.Weekday
	PreferredCareTimes []CareTime
	SkillLevel         SkillLevel
	MaxDailyMinutes    int
}

// Unavailable reports whether the user marked the weekday as unavailable.
func (preferences UserPreferences) Unavailable(day time.Weekday) bool {
	for _, unavailable := range preferences.UnavailableDays {
		if unavailable == day {
			return true
		}
	}
	return false
}

type CareCalendar struct {
	ID                 string
	OrchidID           string
	Profile            OrchidProfile
	StartDate          time.Time
	EndDate            time.Time
	Tasks              []CareTask
	WeatherIntegration bool
	AutoAdaptation     bool
	PreferredCareTimes []CareTime
	Warnings           []string
	CreatedAt          time.Time
	LastUpdated        time.Time
}

type CalendarSummary struct {
	TotalTasks             int                `json:"total_tasks"`
	TotalMinutes           int                `json:"total_minutes"`
	CompletedTasks         int                `json:"completed_tasks"`
	ByPriority             map[Priority]int   `json:"by_priority"`
	ByAction               map[CareAction]int `json:"by_action"`
	WeatherDependentTasks  int                `json:"weather_dependent_tasks"`
	WeeklyHistogram        map[string]int     `json:"weekly_histogram"`
	EstimatedWeeklyMinutes int                `json:"estimated_weekly_minutes"`
}
