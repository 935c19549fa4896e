package catalog

import (
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

var defaultProtocols = []GenusProtocol{
	{
		Genus:                   "Phalaenopsis",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionLightAdjustment,
		WateringIntervalDays:    4,
		OptimalTempMinC:         18,
		OptimalTempMaxC:         29,
		OptimalHumidityMin:      50,
		OptimalHumidityMax:      70,
		WaterFrequencyModifier:  1.0,
		FertilizerConcentration: "1/2 strength balanced 20-20-20",
	},
	{
		Genus:                   "Cattleya",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionLightAdjustment,
		WateringIntervalDays:    5,
		OptimalTempMinC:         15,
		OptimalTempMaxC:         30,
		OptimalHumidityMin:      50,
		OptimalHumidityMax:      80,
		WaterFrequencyModifier:  0.8,
		FertilizerConcentration: "1/2 strength high-nitrogen during growth",
	},
	{
		Genus:                   "Dendrobium",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionPruning,
		WateringIntervalDays:    3,
		OptimalTempMinC:         13,
		OptimalTempMaxC:         29,
		OptimalHumidityMin:      50,
		OptimalHumidityMax:      70,
		WaterFrequencyModifier:  1.0,
		FertilizerConcentration: "1/4 strength weekly, weakly",
	},
	{
		Genus:                   "Oncidium",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionAirCirculation,
		WateringIntervalDays:    3,
		OptimalTempMinC:         13,
		OptimalTempMaxC:         27,
		OptimalHumidityMin:      40,
		OptimalHumidityMax:      60,
		WaterFrequencyModifier:  1.0,
		FertilizerConcentration: "1/2 strength balanced",
	},
	{
		Genus:                   "Paphiopedilum",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionLightAdjustment,
		WateringIntervalDays:    3,
		OptimalTempMinC:         16,
		OptimalTempMaxC:         27,
		OptimalHumidityMin:      50,
		OptimalHumidityMax:      70,
		WaterFrequencyModifier:  1.2,
		FertilizerConcentration: "1/4 strength, low salt",
	},
	{
		Genus:                   "Vanda",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionHumidityAdjustment,
		WateringIntervalDays:    1,
		OptimalTempMinC:         18,
		OptimalTempMaxC:         35,
		OptimalHumidityMin:      60,
		OptimalHumidityMax:      85,
		WaterFrequencyModifier:  1.5,
		FertilizerConcentration: "1/4 strength every watering",
	},
	{
		Genus:                   "Cymbidium",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionAirCirculation,
		WateringIntervalDays:    4,
		OptimalTempMinC:         10,
		OptimalTempMaxC:         27,
		OptimalHumidityMin:      40,
		OptimalHumidityMax:      60,
		WaterFrequencyModifier:  0.9,
		FertilizerConcentration: "full strength high-nitrogen in spring",
	},
	{
		Genus:                   "Miltonia",
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionLightAdjustment,
		WateringIntervalDays:    3,
		OptimalTempMinC:         12,
		OptimalTempMaxC:         24,
		OptimalHumidityMin:      55,
		OptimalHumidityMax:      75,
		WaterFrequencyModifier:  1.1,
		FertilizerConcentration: "1/4 strength, flush monthly",
	},
	{
		Genus:                   DefaultGenus,
		DailyAction:             models.ActionTemperatureMonitoring,
		WeeklyAction:            models.ActionPestInspection,
		WeeklyWeekday:           time.Monday,
		MonthlyAction:           models.ActionLightAdjustment,
		WateringIntervalDays:    7,
		OptimalTempMinC:         15,
		OptimalTempMaxC:         28,
		OptimalHumidityMin:      50,
		OptimalHumidityMax:      70,
		WaterFrequencyModifier:  1.0,
		FertilizerConcentration: "1/2 strength balanced",
	},
}

var defaultSeasons = []SeasonalRule{
	{
		Season:             models.SeasonSpring,
		FertilizerBoost:    true,
		FertilizerPriority: models.PriorityHigh,
		Note:               "Spring growth: feed regularly",
	},
	{
		Season:             models.SeasonSummer,
		FertilizerBoost:    true,
		FertilizerPriority: models.PriorityHigh,
		Note:               "Summer growth: feed regularly",
	},
	{
		Season:             models.SeasonAutumn,
		FertilizerPriority: models.PriorityLow,
		Note:               "Autumn: taper feeding ahead of winter",
	},
	{
		Season:               models.SeasonWinter,
		SkipWateringWeekdays: []time.Weekday{time.Tuesday, time.Thursday, time.Saturday},
		Note:                 "Winter: reduced watering",
	},
}

var defaultThresholds = WeatherThresholds{
	HeavyRainfallMM:        10,
	DryHumidity:            40,
	HumidMistingHumidity:   70,
	DryMistingHumidity:     50,
	TemperatureTolerance:   5,
	ReactorRainfallMM:      15,
	ReactorMistingHumidity: 75,
}

var defaultActions = map[models.CareAction]ActionDefaults{
	models.ActionWatering:              {Priority: models.PriorityHigh, DurationMinutes: 15, Description: "Water thoroughly and let drain"},
	models.ActionFertilizing:           {Priority: models.PriorityMedium, DurationMinutes: 10, Description: "Apply diluted orchid fertilizer"},
	models.ActionRepotting:             {Priority: models.PriorityMedium, DurationMinutes: 60, Description: "Evaluate roots and medium for repotting"},
	models.ActionHumidityAdjustment:    {Priority: models.PriorityMedium, DurationMinutes: 10, Description: "Check and adjust humidity trays"},
	models.ActionTemperatureMonitoring: {Priority: models.PriorityLow, DurationMinutes: 5, Description: "Check growing area temperature"},
	models.ActionAirCirculation:        {Priority: models.PriorityLow, DurationMinutes: 10, Description: "Check fans and air movement"},
	models.ActionPestInspection:        {Priority: models.PriorityMedium, DurationMinutes: 15, Description: "Inspect leaves and roots for pests"},
	models.ActionPruning:               {Priority: models.PriorityLow, DurationMinutes: 20, Description: "Remove spent spikes and dead growth"},
	models.ActionLightAdjustment:       {Priority: models.PriorityLow, DurationMinutes: 10, Description: "Review light exposure and placement"},
	models.ActionMisting:               {Priority: models.PriorityMedium, DurationMinutes: 5, Description: "Mist aerial roots and leaves"},
}

// Default builds the built-in catalog. It panics only if the built-in tables are inconsistent.
func Default() *Catalog {
	catalog, err := New(defaultProtocols, defaultSeasons, defaultThresholds, defaultActions)
	if err != nil {
		panic(err)
	}
	return catalog
}
