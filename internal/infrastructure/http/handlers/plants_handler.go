package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/storage"
)

type PlantsHandler struct {
	catalog *catalog.Service
	saved   *collection.Manager
	images  *storage.ImageResolver
}

func NewPlantsHandler(cat *catalog.Service, saved *collection.Manager, images *storage.ImageResolver) *PlantsHandler {
	return &PlantsHandler{catalog: cat, saved: saved, images: images}
}

type plantBody struct {
	ID                 int64         `json:"id"`
	Name               string        `json:"name"`
	ScientificName     string        `json:"scientific_name,omitempty"`
	Description        string        `json:"description,omitempty"`
	WaterFrequencyDays int           `json:"water_frequency_days"`
	WaterInstructions  string        `json:"water_instructions,omitempty"`
	LightRequirements  string        `json:"light_requirements,omitempty"`
	CareLevel          string        `json:"care_level,omitempty"`
	ImageURL           string        `json:"image_url"`
	Category           *categoryBody `json:"category,omitempty"`
}

type categoryBody struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *PlantsHandler) plantBody(p *domain.Plant) plantBody {
	body := plantBody{
		ID:                 p.ID,
		Name:               p.Name,
		ScientificName:     p.ScientificName,
		Description:        p.Description,
		WaterFrequencyDays: p.WaterFrequencyDays,
		WaterInstructions:  p.WaterInstructions,
		LightRequirements:  p.LightRequirements,
		CareLevel:          p.CareLevel,
		ImageURL:           h.images.Resolve(p.ImagePath),
	}
	if p.Category != nil {
		body.Category = &categoryBody{ID: p.Category.ID, Name: p.Category.Name}
	}
	return body
}

func (h *PlantsHandler) plantBodies(plants []*domain.Plant) []plantBody {
	out := make([]plantBody, 0, len(plants))
	for _, p := range plants {
		out = append(out, h.plantBody(p))
	}
	return out
}

// List returns the catalog, optionally filtered with ?category=<id>.
func (h *PlantsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		plants []*domain.Plant
		err    error
	)
	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid category id")
			return
		}
		plants, err = h.catalog.ListByCategory(r.Context(), categoryID)
	} else {
		plants, err = h.catalog.List(r.Context())
	}
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plants": h.plantBodies(plants)})
}

func (h *PlantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid plant id")
		return
	}
	plant, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	body := h.plantBody(plant)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plant": body,
		"saved": h.saved.IsSaved(r.Context(), plant.ID),
	})
}

// Search answers the one-shot REST variant; /search/live carries the
// debounced live stream.
func (h *PlantsHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := TruncateQuery(r.URL.Query().Get("q"))
	plants, err := h.catalog.Search(r.Context(), query)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	results := make([]map[string]interface{}, 0, len(plants))
	for _, p := range plants {
		results = append(results, map[string]interface{}{
			"plant": h.plantBody(p),
			"saved": h.saved.IsSaved(r.Context(), p.ID),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
	})
}

func (h *PlantsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	out := make([]categoryBody, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryBody{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": out})
}
