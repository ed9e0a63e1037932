package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
)

// StoredListing is the read side of cluster storage the API serves from.
type StoredListing struct {
	ID        string
	Draft     memories.ClusterDraft
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClusterStore is the storage capability the memories endpoints need.
type ClusterStore interface {
	List(ctx context.Context, algorithm string) ([]StoredListing, error)
	Get(ctx context.Context, id string) (*StoredListing, error)
	Delete(ctx context.Context, id string) error
	SaveAll(ctx context.Context, drafts []memories.ClusterDraft) error
}

// MemoriesHandler serves stored memory clusters.
type MemoriesHandler struct {
	store ClusterStore
}

// NewMemoriesHandler creates a memories handler.
func NewMemoriesHandler(store ClusterStore) *MemoriesHandler {
	return &MemoriesHandler{store: store}
}

// clusterResponse is the wire shape of one stored cluster.
type clusterResponse struct {
	ID        string                 `json:"id"`
	Algorithm string                 `json:"algorithm"`
	Label     string                 `json:"label"`
	Centroid  geo.Point              `json:"centroid"`
	Members   []string               `json:"members"`
	Params    memories.ClusterParams `json:"params"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

func toClusterResponse(s StoredListing) clusterResponse {
	return clusterResponse{
		ID:        s.ID,
		Algorithm: s.Draft.Algorithm,
		Label:     s.Draft.Label,
		Centroid:  s.Draft.Centroid,
		Members:   s.Draft.Members,
		Params:    s.Draft.Params,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// List handles GET /api/v1/memories. The optional algorithm query parameter
// narrows the listing to one strategy.
func (h *MemoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "cluster storage is not configured")
		return
	}

	clusters, err := h.store.List(r.Context(), r.URL.Query().Get("algorithm"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list memories")
		return
	}

	resp := make([]clusterResponse, 0, len(clusters))
	for _, c := range clusters {
		resp = append(resp, toClusterResponse(c))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"memories": resp,
		"count":    len(resp),
	})
}

// Get handles GET /api/v1/memories/{id}.
func (h *MemoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "cluster storage is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	stored, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get memory")
		return
	}
	if stored == nil {
		respondError(w, http.StatusNotFound, "memory not found")
		return
	}
	respondJSON(w, http.StatusOK, toClusterResponse(*stored))
}

// Delete handles DELETE /api/v1/memories/{id}.
func (h *MemoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "cluster storage is not configured")
		return
	}

	if err := h.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete memory")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
