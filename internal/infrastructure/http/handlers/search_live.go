package handlers

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/application/search"
	"github.com/Rluis14/Plant-Pals-App/internal/application/session"
	"github.com/Rluis14/Plant-Pals-App/internal/domain"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/storage"
)

const (
	searchWriteTimeout = 10 * time.Second
	searchReadLimit    = 4 << 10
)

// SearchSocketHandler serves the live search stream. Each connection gets
// its own session manager and debounce coordinator, so one client's typing
// never interferes with another's.
type SearchSocketHandler struct {
	catalog    *catalog.Service
	saved      ports.SavedPlantRepository
	images     *storage.ImageResolver
	newSession func() *session.Manager
	window     time.Duration
	upgrader   websocket.Upgrader
	log        zerolog.Logger
}

func NewSearchSocketHandler(cat *catalog.Service, saved ports.SavedPlantRepository, images *storage.ImageResolver, newSession func() *session.Manager, window time.Duration, log zerolog.Logger) *SearchSocketHandler {
	return &SearchSocketHandler{
		catalog:    cat,
		saved:      saved,
		images:     images,
		newSession: newSession,
		window:     window,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log,
	}
}

type searchClientMessage struct {
	Type     string `json:"type"`
	Query    string `json:"q,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type searchServerMessage struct {
	Type    string              `json:"type"`
	Query   string              `json:"query,omitempty"`
	Results []searchResultBody  `json:"results,omitempty"`
	Error   string              `json:"error,omitempty"`
	Session *searchSessionState `json:"session,omitempty"`
}

type searchResultBody struct {
	Plant plantBody `json:"plant"`
	Saved bool      `json:"saved"`
}

type searchSessionState struct {
	State string `json:"state"`
	Event string `json:"event,omitempty"`
	Email string `json:"email,omitempty"`
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

func (h *SearchSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(searchReadLimit)

	var writeMu sync.Mutex
	send := func(msg searchServerMessage) {
		writeMu.Lock()
		defer writeMu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(searchWriteTimeout))
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug().Err(err).Msg("websocket write failed")
		}
	}

	sessions := h.newSession()
	unsubscribe := sessions.Subscribe(func(event domain.SessionEvent, s *domain.Session) {
		state := &searchSessionState{State: sessions.State().String(), Event: string(event)}
		if s != nil {
			state.Email = s.Email
		}
		send(searchServerMessage{Type: "session", Session: state})
	})
	defer unsubscribe()

	// The upgrade request's bearer token, if any, seeds the session.
	sessions.Restore(r.Context(), bearerToken(r), "")

	plants := &PlantsHandler{images: h.images}
	saved := collection.NewManager(h.saved, sessions, h.log)
	coordinator := search.NewCoordinator(h.catalog, saved, h.window, func(update search.Update) {
		switch {
		case update.Cleared:
			send(searchServerMessage{Type: "cleared", Query: update.Query})
		case update.Err != nil:
			send(searchServerMessage{Type: "error", Query: update.Query, Error: update.Err.Error()})
		default:
			results := make([]searchResultBody, 0, len(update.Results))
			for _, res := range update.Results {
				results = append(results, searchResultBody{
					Plant: plants.plantBody(res.Plant),
					Saved: res.Saved,
				})
			}
			send(searchServerMessage{Type: "results", Query: update.Query, Results: results})
		}
	})
	defer coordinator.Close()

	for {
		var msg searchClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}
		switch msg.Type {
		case "query":
			coordinator.SetQuery(TruncateQuery(msg.Query))
		case "sign_in":
			if _, err := sessions.SignIn(context.Background(), SanitizeEmail(msg.Email), msg.Password); err != nil {
				send(searchServerMessage{Type: "error", Error: err.Error()})
			}
		case "sign_out":
			if err := sessions.SignOut(context.Background()); err != nil {
				send(searchServerMessage{Type: "error", Error: err.Error()})
			}
		default:
			send(searchServerMessage{Type: "error", Error: "unknown message type"})
		}
	}
}
