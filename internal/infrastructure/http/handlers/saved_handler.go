package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/storage"
)

type SavedHandler struct {
	collection *collection.Manager
	plants     *PlantsHandler
	log        zerolog.Logger
}

func NewSavedHandler(coll *collection.Manager, images *storage.ImageResolver, log zerolog.Logger) *SavedHandler {
	return &SavedHandler{
		collection: coll,
		plants:     &PlantsHandler{images: images},
		log:        log,
	}
}

type savedPlantBody struct {
	ID      int64      `json:"id"`
	PlantID int64      `json:"plant_id"`
	SavedAt time.Time  `json:"saved_at"`
	Plant   *plantBody `json:"plant,omitempty"`
}

// List returns the caller's collection, most recently saved first.
func (h *SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	saved, err := h.collection.ListSaved(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]savedPlantBody, 0, len(saved))
	for _, sp := range saved {
		body := savedPlantBody{ID: sp.ID, PlantID: sp.PlantID, SavedAt: sp.SavedAt}
		if sp.Plant != nil {
			p := h.plants.plantBody(sp.Plant)
			body.Plant = &p
		}
		out = append(out, body)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"saved": out})
}

func (h *SavedHandler) IsSaved(w http.ResponseWriter, r *http.Request) {
	plantID, err := strconv.ParseInt(chi.URLParam(r, "plantID"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid plant id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plant_id": plantID,
		"saved":    h.collection.IsSaved(r.Context(), plantID),
	})
}

func (h *SavedHandler) Save(w http.ResponseWriter, r *http.Request) {
	plantID, err := strconv.ParseInt(chi.URLParam(r, "plantID"), 10, 64)
	if err != nil || plantID <= 0 {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid plant id")
		return
	}
	sp, err := h.collection.Save(r.Context(), plantID)
	if err != nil {
		middleware.RecordSavedPlantOp("save", false)
		h.auditSaved(r, "saved_plant.save", plantID, false, err)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordSavedPlantOp("save", true)
	h.auditSaved(r, "saved_plant.save", plantID, true, nil)
	writeJSON(w, http.StatusCreated, savedPlantBody{ID: sp.ID, PlantID: sp.PlantID, SavedAt: sp.SavedAt})
}

// Remove is idempotent; deleting a plant that is not saved still returns 200.
func (h *SavedHandler) Remove(w http.ResponseWriter, r *http.Request) {
	plantID, err := strconv.ParseInt(chi.URLParam(r, "plantID"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid plant id")
		return
	}
	if err := h.collection.Remove(r.Context(), plantID); err != nil {
		middleware.RecordSavedPlantOp("remove", false)
		h.auditSaved(r, "saved_plant.remove", plantID, false, err)
		writeDomainErr(w, err)
		return
	}
	middleware.RecordSavedPlantOp("remove", true)
	h.auditSaved(r, "saved_plant.remove", plantID, true, nil)
	writeJSON(w, http.StatusOK, map[string]interface{}{"plant_id": plantID, "saved": false})
}

func (h *SavedHandler) auditSaved(r *http.Request, event string, plantID int64, success bool, err error) {
	userID := ""
	if session := middleware.SessionFromContext(r.Context()); session != nil {
		userID = session.UserID.String()
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	AuditLog(h.log.With().Int64("plant_id", plantID).Logger(), r, event, userID, success, msg)
}
