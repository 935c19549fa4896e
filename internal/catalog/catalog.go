package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

// DefaultGenus is the key of the record returned for genera the catalog does not know.
const DefaultGenus = "default"

var ErrInvalidCatalog = errors.New("invalid catalog")

type GenusProtocol struct {
	Genus string

	DailyAction          models.CareAction
	WeeklyAction         models.CareAction
	WeeklyWeekday        time.Weekday
	MonthlyAction        models.CareAction
	WateringIntervalDays int

	OptimalTempMinC         float64
	OptimalTempMaxC         float64
	OptimalHumidityMin      float64
	OptimalHumidityMax      float64
	WaterFrequencyModifier  float64
	FertilizerConcentration string
}

type SeasonalRule struct {
	Season               models.Season
	SkipWateringWeekdays []time.Weekday
	FertilizerPriority   models.Priority
	FertilizerBoost      bool
	Note                 string
}

type WeatherThresholds struct {
	HeavyRainfallMM      float64
	DryHumidity          float64
	HumidMistingHumidity float64
	DryMistingHumidity   float64
	TemperatureTolerance float64

	ReactorRainfallMM      float64
	ReactorMistingHumidity float64
}

type ActionDefaults struct {
	Priority        models.Priority
	DurationMinutes int
	Description     string
}

// Catalog is immutable after New returns and safe for concurrent reads.
type Catalog struct {
	protocols  map[string]GenusProtocol
	genera     []string
	seasons    map[models.Season]SeasonalRule
	thresholds WeatherThresholds
	actions    map[models.CareAction]ActionDefaults
}

func New(
	protocols []GenusProtocol,
	seasons []SeasonalRule,
	thresholds WeatherThresholds,
	actions map[models.CareAction]ActionDefaults,
) (*Catalog, error) {
	catalog := &Catalog{
		protocols:  make(map[string]GenusProtocol, len(protocols)),
		seasons:    make(map[models.Season]SeasonalRule, len(seasons)),
		thresholds: thresholds,
		actions:    make(map[models.CareAction]ActionDefaults, len(actions)),
	}

	for _, action := range models.CareActions {
		defaults, ok := actions[action]
		if !ok {
			return nil, fmt.Errorf("%w: no defaults for action %q", ErrInvalidCatalog, action)
		}
		if !defaults.Priority.Valid() || defaults.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: bad defaults for action %q", ErrInvalidCatalog, action)
		}
		catalog.actions[action] = defaults
	}

	for _, protocol := range protocols {
		if err := validateProtocol(protocol); err != nil {
			return nil, err
		}
		key := normalizeGenus(protocol.Genus)
		if _, exists := catalog.protocols[key]; exists {
			return nil, fmt.Errorf("%w: duplicate genus %q", ErrInvalidCatalog, protocol.Genus)
		}
		catalog.protocols[key] = protocol
		catalog.genera = append(catalog.genera, protocol.Genus)
	}
	if _, ok := catalog.protocols[DefaultGenus]; !ok {
		return nil, fmt.Errorf("%w: missing %q protocol", ErrInvalidCatalog, DefaultGenus)
	}

	for _, rule := range seasons {
		catalog.seasons[rule.Season] = rule
	}
	for _, season := range []models.Season{models.SeasonSpring, models.SeasonSummer, models.SeasonAutumn, models.SeasonWinter} {
		if _, ok := catalog.seasons[season]; !ok {
			return nil, fmt.Errorf("%w: missing seasonal rule for %q", ErrInvalidCatalog, season)
		}
	}

	if thresholds.TemperatureTolerance < 0 || thresholds.HeavyRainfallMM < 0 || thresholds.ReactorRainfallMM < 0 {
		return nil, fmt.Errorf("%w: negative weather threshold", ErrInvalidCatalog)
	}

	return catalog, nil
}

func validateProtocol(protocol GenusProtocol) error {
	switch {
	case strings.TrimSpace(protocol.Genus) == "":
		return fmt.Errorf("%w: protocol without genus", ErrInvalidCatalog)
	case protocol.WateringIntervalDays < 1 || protocol.WateringIntervalDays > 7:
		return fmt.Errorf("%w: %s watering interval %d outside 1..7", ErrInvalidCatalog, protocol.Genus, protocol.WateringIntervalDays)
	case protocol.OptimalTempMinC > protocol.OptimalTempMaxC:
		return fmt.Errorf("%w: %s temperature band inverted", ErrInvalidCatalog, protocol.Genus)
	case protocol.OptimalHumidityMin > protocol.OptimalHumidityMax:
		return fmt.Errorf("%w: %s humidity band inverted", ErrInvalidCatalog, protocol.Genus)
	case protocol.WaterFrequencyModifier <= 0:
		return fmt.Errorf("%w: %s water frequency modifier must be positive", ErrInvalidCatalog, protocol.Genus)
	case !protocol.DailyAction.Valid() || !protocol.WeeklyAction.Valid() || !protocol.MonthlyAction.Valid():
		return fmt.Errorf("%w: %s references an unknown care action", ErrInvalidCatalog, protocol.Genus)
	}
	return nil
}

// Protocol returns the record for genus, or the default record and false.
func (catalog *Catalog) Protocol(genus string) (GenusProtocol, bool) {
	if protocol, ok := catalog.protocols[normalizeGenus(genus)]; ok {
		return protocol, true
	}
	return catalog.protocols[DefaultGenus], false
}

func (catalog *Catalog) Season(season models.Season) SeasonalRule {
	return catalog.seasons[season]
}

func (catalog *Catalog) Thresholds() WeatherThresholds {
	return catalog.thresholds
}

func (catalog *Catalog) Action(action models.CareAction) ActionDefaults {
	return catalog.actions[action]
}

// Genera lists the known genera in registration order.
func (catalog *Catalog) Genera() []string {
	genera := make([]string, len(catalog.genera))
	copy(genera, catalog.genera)
	return genera
}

func normalizeGenus(genus string) string {
	return strings.ToLower(strings.TrimSpace(genus))
}
