package requests_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
	"github.com/jsp1440/orchid-continuum-sub004/internal/requests"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name string
		want time.Weekday
	}{
		{"sunday", time.Sunday},
		{"Mon", time.Monday},
		{" SATURDAY ", time.Saturday},
		{"thu", time.Thursday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := requests.ParseWeekday(tt.name)
			if err != nil {
				t.Fatalf("parsing weekday: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := requests.ParseWeekday("funday"); !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestOrchidProfile(t *testing.T) {
	profile, err := requests.Orchid{
		Genus:        " Vanda ",
		GrowthStage:  "juvenile",
		LastRepotted: "2024-03-15",
	}.Profile()
	if err != nil {
		t.Fatalf("building profile: %v", err)
	}
	if profile.Genus != "Vanda" || profile.GrowthStage != models.StageJuvenile {
		t.Errorf("unexpected profile %+v", profile)
	}
	if profile.LastRepotted == nil || profile.LastRepotted.Format(models.DateLayout) != "2024-03-15" {
		t.Errorf("unexpected last repotted %v", profile.LastRepotted)
	}

	if _, err := (requests.Orchid{GrowthStage: "seedling"}).Profile(); !errors.Is(err, requests.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for missing genus, got %v", err)
	}
}

func TestGenerateBuild(t *testing.T) {
	body := requests.Generate{
		StartDate: "2025-06-01",
		EndDate:   "2025-06-30",
		Weather: []requests.Weather{{
			RainfallMM: 20,
			StartDate:  "2025-06-01",
			EndDate:    "2025-06-07",
		}},
		Preferences: &requests.Preferences{
			UnavailableDays:    []string{"sat", "sun"},
			PreferredCareTimes: []string{"morning"},
			MaxDailyMinutes:    45,
		},
		Orchid: &requests.Orchid{Genus: "Cattleya", GrowthStage: "mature_blooming"},
	}

	request, err := body.Build(nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if !request.AutoAdaptation {
		t.Error("expected auto adaptation when the flag is omitted")
	}
	if request.Profile.Genus != "Cattleya" || len(request.Weather) != 1 {
		t.Errorf("unexpected request %+v", request)
	}
	if request.Preferences == nil || len(request.Preferences.UnavailableDays) != 2 || request.Preferences.MaxDailyMinutes != 45 {
		t.Errorf("unexpected preferences %+v", request.Preferences)
	}

	disabled := false
	body.AutoAdaptation = &disabled
	body.Orchid = nil
	stored := models.OrchidProfile{ID: "orchid-9", Genus: "Oncidium", GrowthStage: models.StageDormant}
	request, err = body.Build(&stored)
	if err != nil {
		t.Fatalf("building request for stored profile: %v", err)
	}
	if request.Profile.ID != "orchid-9" {
		t.Errorf("expected stored profile, got %q", request.Profile.ID)
	}
	if request.AutoAdaptation {
		t.Error("expected explicit false to disable auto adaptation")
	}
}

func TestGenerateBuildErrors(t *testing.T) {
	orchid := &requests.Orchid{Genus: "Vanda", GrowthStage: "seedling"}

	tests := []struct {
		name   string
		body   requests.Generate
		target error
	}{
		{"missing orchid", requests.Generate{StartDate: "2025-06-01", EndDate: "2025-06-02"}, requests.ErrBadRequest},
		{"bad start", requests.Generate{StartDate: "June", EndDate: "2025-06-02", Orchid: orchid}, services.ErrInvalidDateRange},
		{
			"bad weather date",
			requests.Generate{StartDate: "2025-06-01", EndDate: "2025-06-02", Orchid: orchid,
				Weather: []requests.Weather{{StartDate: "2025-06-01", EndDate: "later"}}},
			services.ErrMalformedWeatherRange,
		},
		{
			"bad weekday",
			requests.Generate{StartDate: "2025-06-01", EndDate: "2025-06-02", Orchid: orchid,
				Preferences: &requests.Preferences{UnavailableDays: []string{"caturday"}}},
			services.ErrConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.body.Build(nil); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}

	stored := models.OrchidProfile{ID: "orchid-9", Genus: "Oncidium", GrowthStage: models.StageDormant}
	body := requests.Generate{StartDate: "2025-06-01", EndDate: "2025-06-02", Orchid: orchid}
	if _, err := body.Build(&stored); !errors.Is(err, requests.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for an orchid alongside a stored profile, got %v", err)
	}
}
