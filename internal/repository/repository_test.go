package repository_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jsp1440/orchid-continuum-sub004/internal/catalog"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
	"github.com/jsp1440/orchid-continuum-sub004/internal/testutil"
)

func TestSQLiteOrchidRepository(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	runOrchidRepositoryTests(t, repository.NewOrchidRepository(db))
}

func TestSQLiteCalendarRepository(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	runCalendarRepositoryTests(t, repository.NewOrchidRepository(db), repository.NewCalendarRepository(db))
}

func TestPostgresOrchidRepository(t *testing.T) {
	pool := testutil.NewTestPostgres(t)
	runOrchidRepositoryTests(t, repository.NewPostgresOrchidRepository(pool))
}

func TestPostgresCalendarRepository(t *testing.T) {
	pool := testutil.NewTestPostgres(t)
	runCalendarRepositoryTests(t,
		repository.NewPostgresOrchidRepository(pool),
		repository.NewPostgresCalendarRepository(pool),
	)
}

func createTestOrchid(t *testing.T, orchidRepo repository.OrchidRepository, name string) models.OrchidProfile {
	t.Helper()
	lastRepotted := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	created, err := orchidRepo.Create(context.Background(), models.OrchidProfile{
		Name:          name,
		Genus:         "Phalaenopsis",
		Species:       "amabilis",
		GrowthStage:   models.StageMatureVegetative,
		Location:      "east window",
		PottingMedium: "bark",
		LastRepotted:  &lastRepotted,
		SpecialNeeds:  []string{"keep crown dry"},
	})
	if err != nil {
		t.Fatalf("creating test orchid: %v", err)
	}
	return created
}

func runOrchidRepositoryTests(t *testing.T, orchidRepo repository.OrchidRepository) {
	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		created := createTestOrchid(t, orchidRepo, "Kitchen Phal")
		if created.ID == "" {
			t.Fatal("expected non-empty ID")
		}

		found, err := orchidRepo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("finding orchid: %v", err)
		}
		if found.Name != "Kitchen Phal" || found.Genus != "Phalaenopsis" || found.GrowthStage != models.StageMatureVegetative {
			t.Errorf("unexpected orchid %+v", found)
		}
		if found.LastRepotted == nil || found.LastRepotted.Format(models.DateLayout) != "2024-03-15" {
			t.Errorf("expected last repotted 2024-03-15, got %v", found.LastRepotted)
		}
		if len(found.SpecialNeeds) != 1 || found.SpecialNeeds[0] != "keep crown dry" {
			t.Errorf("unexpected special needs %v", found.SpecialNeeds)
		}
	})

	t.Run("missing orchid", func(t *testing.T) {
		if _, err := orchidRepo.FindByID(ctx, "does-not-exist"); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		created := createTestOrchid(t, orchidRepo, "Original")
		_, err := orchidRepo.Create(ctx, models.OrchidProfile{
			ID:          created.ID,
			Genus:       "Vanda",
			GrowthStage: models.StageSeedling,
		})
		if !errors.Is(err, repository.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("find all", func(t *testing.T) {
		orchids, err := orchidRepo.FindAll(ctx)
		if err != nil {
			t.Fatalf("finding orchids: %v", err)
		}
		if len(orchids) < 2 {
			t.Errorf("expected at least 2 orchids, got %d", len(orchids))
		}
	})
}

func generateCalendar(t *testing.T, profile models.OrchidProfile) *models.CareCalendar {
	t.Helper()
	engine := services.NewEngine(catalog.Default(), nil,
		services.WithClock(func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }))

	calendar, err := engine.Generate(services.GenerateRequest{
		Profile:   profile,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Weather: []models.WeatherPattern{{
			TemperatureAvg: 24,
			HumidityAvg:    35,
			RainfallMM:     12,
			StartDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		}},
		AutoAdaptation: true,
	})
	if err != nil {
		t.Fatalf("generating calendar: %v", err)
	}
	return calendar
}

func runCalendarRepositoryTests(t *testing.T, orchidRepo repository.OrchidRepository, calendarRepo repository.CalendarRepository) {
	ctx := context.Background()
	orchid := createTestOrchid(t, orchidRepo, "Bathroom Phal")

	calendar := generateCalendar(t, orchid)
	if err := calendarRepo.Save(ctx, calendar); err != nil {
		t.Fatalf("saving calendar: %v", err)
	}

	t.Run("reload is lossless", func(t *testing.T) {
		found, err := calendarRepo.FindByID(ctx, calendar.ID)
		if err != nil {
			t.Fatalf("finding calendar: %v", err)
		}

		want, _ := export.JSON(calendar)
		got, err := export.JSON(found)
		if err != nil {
			t.Fatalf("exporting reloaded calendar: %v", err)
		}
		if !bytes.Equal(want, got) {
			t.Error("expected reloaded calendar to match saved calendar")
		}
	})

	t.Run("save updates existing", func(t *testing.T) {
		if _, err := services.CompleteTask(calendar, calendar.Tasks[0].ID, time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("completing task: %v", err)
		}
		if err := calendarRepo.Save(ctx, calendar); err != nil {
			t.Fatalf("saving updated calendar: %v", err)
		}

		found, err := calendarRepo.FindByID(ctx, calendar.ID)
		if err != nil {
			t.Fatalf("finding calendar: %v", err)
		}
		if !found.Tasks[0].Completed {
			t.Error("expected completion to persist")
		}
	})

	t.Run("find by orchid", func(t *testing.T) {
		calendars, err := calendarRepo.FindByOrchidID(ctx, orchid.ID)
		if err != nil {
			t.Fatalf("finding calendars by orchid: %v", err)
		}
		if len(calendars) != 1 || calendars[0].ID != calendar.ID {
			t.Errorf("expected the saved calendar, got %d calendars", len(calendars))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := calendarRepo.Delete(ctx, calendar.ID); err != nil {
			t.Fatalf("deleting calendar: %v", err)
		}
		if _, err := calendarRepo.FindByID(ctx, calendar.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := calendarRepo.Delete(ctx, calendar.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting twice, got %v", err)
		}
	})
}
