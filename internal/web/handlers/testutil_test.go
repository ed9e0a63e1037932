package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
)

// stubStore is an in-memory ClusterStore for handler tests.
type stubStore struct {
	listings []StoredListing
	saved    []memories.ClusterDraft
	deleted  []string
	failing  bool
}

var errStubStore = errors.New("store unavailable")

func (s *stubStore) List(ctx context.Context, algorithm string) ([]StoredListing, error) {
	if s.failing {
		return nil, errStubStore
	}
	if algorithm == "" {
		return s.listings, nil
	}
	var out []StoredListing
	for _, l := range s.listings {
		if l.Draft.Algorithm == algorithm {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *stubStore) Get(ctx context.Context, id string) (*StoredListing, error) {
	if s.failing {
		return nil, errStubStore
	}
	for i := range s.listings {
		if s.listings[i].ID == id {
			return &s.listings[i], nil
		}
	}
	return nil, nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	if s.failing {
		return errStubStore
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubStore) SaveAll(ctx context.Context, drafts []memories.ClusterDraft) error {
	if s.failing {
		return errStubStore
	}
	s.saved = append(s.saved, drafts...)
	return nil
}

// stubSource serves a fixed photo slice.
type stubSource struct {
	photos []memories.Photo
	err    error
}

func (s *stubSource) Photos(ctx context.Context) ([]memories.Photo, error) {
	return s.photos, s.err
}

// stubStrategy returns canned drafts.
type stubStrategy struct {
	name   string
	drafts []memories.ClusterDraft
	err    error
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Cluster(ctx context.Context, photos []memories.Photo) ([]memories.ClusterDraft, error) {
	return s.drafts, s.err
}

func lisbonListing(id string) StoredListing {
	created := time.Date(2024, 7, 16, 8, 0, 0, 0, time.UTC)
	return StoredListing{
		ID: id,
		Draft: memories.ClusterDraft{
			Algorithm: "vacation",
			Label:     "Vacation in Lisboa",
			Centroid:  geo.Point{Lat: 38.72, Lon: -9.13},
			Members:   []string{"photo-1", "photo-2"},
			Params: memories.ClusterParams{
				Classification: "vacation",
				Score:          31.2,
				StartDate:      "2024-07-11",
				EndDate:        "2024-07-15",
			},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
