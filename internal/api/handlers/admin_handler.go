package handlers

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/voicebyte/internal/domain/entities"
)

// AdminKeyHeader carries the admin key when it is not in the query string.
const AdminKeyHeader = "X-Admin-Key"

// QueueManager is the queue surface the doctor dashboard drives.
type QueueManager interface {
	Today(ctx context.Context) ([]*entities.Patient, error)
	Call(ctx context.Context, id int64) (bool, error)
	Seen(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*entities.QueueStats, error)
}

// AdminHandler handles the key-protected queue endpoints
type AdminHandler struct {
	queue    QueueManager
	password string
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(queue QueueManager, password string) *AdminHandler {
	return &AdminHandler{queue: queue, password: password}
}

type patientIDRequest struct {
	ID *int64 `json:"id"`
}

// RequireKey rejects requests without the admin key.
func (h *AdminHandler) RequireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorized(r) {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = r.Header.Get(AdminKeyHeader)
	}
	if key == "" || h.password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(h.password)) == 1
}

// Queue handles GET /admin/queue
func (h *AdminHandler) Queue(w http.ResponseWriter, r *http.Request) {
	patients, err := h.queue.Today(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, patients)
}

// Call handles POST /admin/call
func (h *AdminHandler) Call(w http.ResponseWriter, r *http.Request) {
	id, ok := decodePatientID(w, r)
	if !ok {
		return
	}

	sent, err := h.queue.Call(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true, "sms_sent": sent})
}

// Seen handles POST /admin/seen
func (h *AdminHandler) Seen(w http.ResponseWriter, r *http.Request) {
	id, ok := decodePatientID(w, r)
	if !ok {
		return
	}

	if err := h.queue.Seen(r.Context(), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.queue.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func decodePatientID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req patientIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return 0, false
	}
	if req.ID == nil {
		respondWithError(w, http.StatusBadRequest, "id is required")
		return 0, false
	}
	return *req.ID, true
}
