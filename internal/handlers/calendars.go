package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jsp1440/orchid-continuum-sub004/internal/export"
	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/requests"
	"github.com/jsp1440/orchid-continuum-sub004/internal/services"
)

const (
	defaultUpcomingDays = 7
	maxUpcomingDays     = 366
)

type CalendarHandler struct {
	engine       *services.Engine
	orchidRepo   repository.OrchidRepository
	calendarRepo repository.CalendarRepository
	locks        *calendarLocks
}

func NewCalendarHandler(
	engine *services.Engine,
	orchidRepo repository.OrchidRepository,
	calendarRepo repository.CalendarRepository,
) *CalendarHandler {
	return &CalendarHandler{
		engine:       engine,
		orchidRepo:   orchidRepo,
		calendarRepo: calendarRepo,
		locks:        newCalendarLocks(),
	}
}

func (handler *CalendarHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := handler.orchidRepo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding orchid", err)
		return
	}

	var body requests.Generate
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "decoding generate request", err)
		return
	}
	request, err := body.Build(&profile)
	if err != nil {
		writeError(w, "building generate request", err)
		return
	}

	calendar, err := handler.engine.Generate(request)
	if err != nil {
		writeError(w, "generating calendar", err)
		return
	}
	if err := handler.calendarRepo.Save(ctx, calendar); err != nil {
		writeError(w, "saving calendar", err)
		return
	}

	slog.Info("generated calendar", "calendar_id", calendar.ID, "orchid_id", profile.ID, "tasks", len(calendar.Tasks))
	handler.writeCalendar(w, http.StatusCreated, calendar)
}

func (handler *CalendarHandler) ListForOrchid(w http.ResponseWriter, r *http.Request) {
	calendars, err := handler.calendarRepo.FindByOrchidID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding calendars", err)
		return
	}

	type calendarListing struct {
		ID          string    `json:"id"`
		StartDate   string    `json:"start_date"`
		EndDate     string    `json:"end_date"`
		Tasks       int       `json:"tasks"`
		LastUpdated time.Time `json:"last_updated"`
	}
	listings := make([]calendarListing, 0, len(calendars))
	for _, calendar := range calendars {
		listings = append(listings, calendarListing{
			ID:          calendar.ID,
			StartDate:   calendar.StartDate.Format(models.DateLayout),
			EndDate:     calendar.EndDate.Format(models.DateLayout),
			Tasks:       len(calendar.Tasks),
			LastUpdated: calendar.LastUpdated,
		})
	}
	writeJSON(w, http.StatusOK, listings)
}

func (handler *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	calendar, err := handler.calendarRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding calendar", err)
		return
	}
	handler.writeCalendar(w, http.StatusOK, calendar)
}

func (handler *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	unlock := handler.locks.Lock(calendarID)
	defer unlock()

	if err := handler.calendarRepo.Delete(r.Context(), calendarID); err != nil {
		writeError(w, "deleting calendar", err)
		return
	}

	slog.Info("deleted calendar", "calendar_id", calendarID)
	w.WriteHeader(http.StatusOK)
}

func (handler *CalendarHandler) Summary(w http.ResponseWriter, r *http.Request) {
	calendar, err := handler.calendarRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding calendar", err)
		return
	}
	writeJSON(w, http.StatusOK, services.Summarize(calendar))
}

func (handler *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	from := handler.engine.Today()
	if value := r.URL.Query().Get("from"); value != "" {
		parsed, err := time.Parse(models.DateLayout, value)
		if err != nil {
			writeError(w, "parsing from", fmt.Errorf("%w: from %q is not a YYYY-MM-DD date", requests.ErrBadRequest, value))
			return
		}
		from = parsed
	}

	days := defaultUpcomingDays
	if value := r.URL.Query().Get("days"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 1 || parsed > maxUpcomingDays {
			writeError(w, "parsing days", fmt.Errorf("%w: days must be between 1 and %d", requests.ErrBadRequest, maxUpcomingDays))
			return
		}
		days = parsed
	}

	calendar, err := handler.calendarRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding calendar", err)
		return
	}

	upcoming := services.UpcomingTasks(calendar, from, days)
	documents := make([]export.TaskDocument, 0, len(upcoming))
	for _, task := range upcoming {
		documents = append(documents, export.NewTaskDocument(task))
	}
	writeJSON(w, http.StatusOK, documents)
}

func (handler *CalendarHandler) ApplyWeather(w http.ResponseWriter, r *http.Request) {
	var body requests.Weather
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "decoding weather update", err)
		return
	}
	pattern, err := body.Pattern()
	if err != nil {
		writeError(w, "parsing weather update", err)
		return
	}

	var changed int
	calendar, err := handler.update(r, func(calendar *models.CareCalendar) error {
		var err error
		changed, err = handler.engine.ApplyWeather(calendar, pattern)
		return err
	})
	if err != nil {
		writeError(w, "applying weather update", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"changed":      changed,
		"last_updated": calendar.LastUpdated,
	})
}

func (handler *CalendarHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var completed models.CareTask
	_, err := handler.update(r, func(calendar *models.CareCalendar) error {
		var err error
		completed, err = handler.engine.CompleteTask(calendar, taskID)
		return err
	})
	if err != nil {
		writeError(w, "completing task", err)
		return
	}
	writeJSON(w, http.StatusOK, export.NewTaskDocument(completed))
}

func (handler *CalendarHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, "parsing export format", err)
		return
	}

	calendar, err := handler.calendarRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding calendar", err)
		return
	}

	result := handler.engine.Export(calendar, format)[0]
	if result.Err != nil {
		writeError(w, "exporting calendar", result.Err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="care-calendar-%s%s"`, calendar.ID, format.Extension()))
	writeBytes(w, http.StatusOK, format.ContentType(), result.Data)
}

// update loads, mutates and stores a calendar while holding its lock.
func (handler *CalendarHandler) update(r *http.Request, mutate func(*models.CareCalendar) error) (*models.CareCalendar, error) {
	calendarID := chi.URLParam(r, "id")
	unlock := handler.locks.Lock(calendarID)
	defer unlock()

	calendar, err := handler.calendarRepo.FindByID(r.Context(), calendarID)
	if err != nil {
		return nil, err
	}
	if err := mutate(calendar); err != nil {
		return nil, err
	}
	if err := handler.calendarRepo.Save(r.Context(), calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

func (handler *CalendarHandler) writeCalendar(w http.ResponseWriter, status int, calendar *models.CareCalendar) {
	data, err := export.JSON(calendar)
	if err != nil {
		writeError(w, "encoding calendar", err)
		return
	}
	writeBytes(w, status, export.FormatJSON.ContentType(), data)
}

type CatalogHandler struct {
	engine *services.Engine
}

func NewCatalogHandler(engine *services.Engine) *CatalogHandler {
	return &CatalogHandler{engine: engine}
}

func (handler *CatalogHandler) Genera(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.engine.Catalog().Genera())
}
