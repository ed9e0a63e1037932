package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kozaktomas/photo-memories/internal/memories"
)

// DetectHandler runs cluster detection over the photo library on demand.
type DetectHandler struct {
	source     memories.PhotoSource
	strategies []memories.Strategy
	store      ClusterStore
}

// NewDetectHandler creates a detect handler. The store may be nil when
// persistence is not configured; detection then only returns drafts.
func NewDetectHandler(source memories.PhotoSource, strategies []memories.Strategy, store ClusterStore) *DetectHandler {
	return &DetectHandler{
		source:     source,
		strategies: strategies,
		store:      store,
	}
}

type detectRequest struct {
	// Store persists the resulting drafts when cluster storage is configured.
	Store bool `json:"store"`
}

// Detect handles POST /api/v1/detect. Detection runs synchronously; vacation
// clustering over a full library finishes in seconds, so a job queue would
// only complicate the API.
func (h *DetectHandler) Detect(w http.ResponseWriter, r *http.Request) {
	if h.source == nil {
		respondError(w, http.StatusServiceUnavailable, "photo source is not configured")
		return
	}

	var req detectRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, errInvalidRequestBody)
			return
		}
	}
	if req.Store && h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "cluster storage is not configured")
		return
	}

	ctx := r.Context()
	photos, err := h.source.Photos(ctx)
	if err != nil {
		log.Printf("detect: loading photos failed: %v", err)
		respondError(w, http.StatusBadGateway, "failed to load photo library")
		return
	}

	var drafts []memories.ClusterDraft
	for _, strategy := range h.strategies {
		found, err := strategy.Cluster(ctx, photos)
		if err != nil {
			log.Printf("detect: strategy %s failed: %v", strategy.Name(), err)
			respondError(w, http.StatusInternalServerError, "detection failed")
			return
		}
		drafts = append(drafts, found...)
	}

	stored := 0
	if req.Store && len(drafts) > 0 {
		if err := h.store.SaveAll(ctx, drafts); err != nil {
			log.Printf("detect: storing drafts failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to store detected memories")
			return
		}
		stored = len(drafts)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"photos":   len(photos),
		"clusters": drafts,
		"stored":   stored,
	})
}
