package web

import (
	"context"

	"github.com/kozaktomas/photo-memories/internal/database/postgres"
	"github.com/kozaktomas/photo-memories/internal/memories"
	"github.com/kozaktomas/photo-memories/internal/web/handlers"
)

// repositoryStore adapts the PostgreSQL cluster repository to the handler
// store interface.
type repositoryStore struct {
	repo *postgres.ClusterRepository
}

// NewRepositoryStore wraps a cluster repository for use by the API.
func NewRepositoryStore(repo *postgres.ClusterRepository) handlers.ClusterStore {
	return &repositoryStore{repo: repo}
}

func toListing(s postgres.StoredCluster) handlers.StoredListing {
	return handlers.StoredListing{
		ID:        s.ID,
		Draft:     s.Draft,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *repositoryStore) List(ctx context.Context, algorithm string) ([]handlers.StoredListing, error) {
	clusters, err := s.repo.List(ctx, algorithm)
	if err != nil {
		return nil, err
	}
	listings := make([]handlers.StoredListing, 0, len(clusters))
	for _, c := range clusters {
		listings = append(listings, toListing(c))
	}
	return listings, nil
}

func (s *repositoryStore) Get(ctx context.Context, id string) (*handlers.StoredListing, error) {
	stored, err := s.repo.Get(ctx, id)
	if err != nil || stored == nil {
		return nil, err
	}
	listing := toListing(*stored)
	return &listing, nil
}

func (s *repositoryStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *repositoryStore) SaveAll(ctx context.Context, drafts []memories.ClusterDraft) error {
	return s.repo.SaveAll(ctx, drafts)
}
