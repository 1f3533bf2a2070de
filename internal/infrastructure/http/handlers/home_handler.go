package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/storage"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/weather"
)

const featuredPlantCount = 3

// HomeHandler assembles the home feed: a weather card, the plant fact of
// the day, and a handful of featured plants.
type HomeHandler struct {
	catalog *catalog.Service
	weather *weather.Client
	plants  *PlantsHandler
	log     zerolog.Logger
}

func NewHomeHandler(cat *catalog.Service, wc *weather.Client, images *storage.ImageResolver, log zerolog.Logger) *HomeHandler {
	return &HomeHandler{
		catalog: cat,
		weather: wc,
		plants:  &PlantsHandler{images: images},
		log:     log,
	}
}

func (h *HomeHandler) Feed(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		location = "auto:ip"
	}
	snapshot := h.weather.Current(r.Context(), location)
	if !snapshot.Available {
		h.log.Warn().Str("location", location).Msg("weather unavailable, serving placeholder")
	}

	featured := []plantBody{}
	plants, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("featured plants unavailable")
	} else if len(plants) > 0 {
		// Rotate the featured window daily, like the fact of the day.
		day := int(time.Now().UTC().Unix() / 86400)
		picks := make([]*domain.Plant, 0, featuredPlantCount)
		for i := 0; i < featuredPlantCount && i < len(plants); i++ {
			picks = append(picks, plants[(day*featuredPlantCount+i)%len(plants)])
		}
		featured = h.plants.plantBodies(picks)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"weather":  snapshot,
		"fact":     weather.FactOfTheDay(time.Now()),
		"featured": featured,
	})
}
