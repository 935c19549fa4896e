package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jsp1440/orchid-continuum-sub004/internal/repository"
	"github.com/jsp1440/orchid-continuum-sub004/internal/requests"
)

type OrchidHandler struct {
	orchidRepo repository.OrchidRepository
}

func NewOrchidHandler(orchidRepo repository.OrchidRepository) *OrchidHandler {
	return &OrchidHandler{orchidRepo: orchidRepo}
}

func (handler *OrchidHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body requests.Orchid
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, "decoding orchid", err)
		return
	}

	profile, err := body.Profile()
	if err != nil {
		writeError(w, "validating orchid", err)
		return
	}

	created, err := handler.orchidRepo.Create(r.Context(), profile)
	if err != nil {
		writeError(w, "creating orchid", err)
		return
	}
	writeJSON(w, http.StatusCreated, requests.NewOrchidResponse(created))
}

func (handler *OrchidHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := handler.orchidRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "finding orchid", err)
		return
	}
	writeJSON(w, http.StatusOK, requests.NewOrchidResponse(profile))
}

func (handler *OrchidHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := handler.orchidRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, "finding orchids", err)
		return
	}

	response := make([]requests.OrchidResponse, 0, len(profiles))
	for _, profile := range profiles {
		response = append(response, requests.NewOrchidResponse(profile))
	}
	writeJSON(w, http.StatusOK, response)
}
