package api

import (
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/store"
)

// defaultEventLimit bounds /api/events responses when no limit is given.
const defaultEventLimit = 50

// EventsHandler serves the recognized gesture event log.
type EventsHandler struct {
	store *store.Store
}

// NewEventsHandler creates a new EventsHandler with the given store.
func NewEventsHandler(s *store.Store) *EventsHandler {
	return &EventsHandler{store: s}
}

type eventResponse struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Handedness     string  `json:"handedness"`
	Confidence     float64 `json:"confidence"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Direction      string  `json:"direction,omitempty"`
	Distance       float64 `json:"distance,omitempty"`
	DistanceChange float64 `json:"distanceChange,omitempty"`
	Timestamp      int64   `json:"timestamp"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

// ServeHTTP handles GET /api/events with optional type and limit query
// parameters, most recent first.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	events, err := h.store.Events().ListRecent(r.URL.Query().Get("type"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:             e.ID,
			Type:           e.Type,
			Handedness:     e.Handedness,
			Confidence:     e.Confidence,
			X:              e.PositionX,
			Y:              e.PositionY,
			Direction:      e.Direction,
			Distance:       e.Distance,
			DistanceChange: e.DistanceChange,
			Timestamp:      e.TimestampMs,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
