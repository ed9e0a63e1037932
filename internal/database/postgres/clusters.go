package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/kozaktomas/photo-memories/internal/geo"
	"github.com/kozaktomas/photo-memories/internal/memories"
)

// StoredCluster is one persisted cluster draft plus storage metadata.
type StoredCluster struct {
	ID        string
	Draft     memories.ClusterDraft
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClusterRepository persists detected memory clusters. Re-running detection
// over the same library upserts by (algorithm, date range), so drafts refine
// in place instead of piling up duplicates.
type ClusterRepository struct {
	pool *Pool
}

// NewClusterRepository creates a repository backed by the given pool.
func NewClusterRepository(pool *Pool) *ClusterRepository {
	return &ClusterRepository{pool: pool}
}

// Save upserts a cluster draft and returns its id.
func (r *ClusterRepository) Save(ctx context.Context, draft memories.ClusterDraft) (string, error) {
	params, err := json.Marshal(draft.Params)
	if err != nil {
		return "", fmt.Errorf("marshal cluster params: %w", err)
	}

	query := `
		INSERT INTO memory_clusters
			(id, algorithm, label, centroid_lat, centroid_lng, start_date, end_date, members, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (algorithm, start_date, end_date) DO UPDATE SET
			label = EXCLUDED.label,
			centroid_lat = EXCLUDED.centroid_lat,
			centroid_lng = EXCLUDED.centroid_lng,
			members = EXCLUDED.members,
			params = EXCLUDED.params,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err = r.pool.QueryRow(ctx, query,
		uuid.NewString(),
		draft.Algorithm,
		draft.Label,
		draft.Centroid.Lat,
		draft.Centroid.Lon,
		draft.Params.StartDate,
		draft.Params.EndDate,
		pq.Array(draft.Members),
		params,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("save cluster: %w", err)
	}
	return id, nil
}

// SaveAll upserts a batch of drafts in one transaction.
func (r *ClusterRepository) SaveAll(ctx context.Context, drafts []memories.ClusterDraft) error {
	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO memory_clusters
			(id, algorithm, label, centroid_lat, centroid_lng, start_date, end_date, members, params)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (algorithm, start_date, end_date) DO UPDATE SET
			label = EXCLUDED.label,
			centroid_lat = EXCLUDED.centroid_lat,
			centroid_lng = EXCLUDED.centroid_lng,
			members = EXCLUDED.members,
			params = EXCLUDED.params,
			updated_at = NOW()
	`

	for _, draft := range drafts {
		params, err := json.Marshal(draft.Params)
		if err != nil {
			return fmt.Errorf("marshal cluster params: %w", err)
		}
		_, err = tx.ExecContext(ctx, query,
			uuid.NewString(),
			draft.Algorithm,
			draft.Label,
			draft.Centroid.Lat,
			draft.Centroid.Lon,
			draft.Params.StartDate,
			draft.Params.EndDate,
			pq.Array(draft.Members),
			params,
		)
		if err != nil {
			return fmt.Errorf("save cluster %q: %w", draft.Label, err)
		}
	}
	return tx.Commit()
}

// Get retrieves one stored cluster by id, returns nil if not found.
func (r *ClusterRepository) Get(ctx context.Context, id string) (*StoredCluster, error) {
	query := `
		SELECT id, algorithm, label, centroid_lat, centroid_lng, members, params, created_at, updated_at
		FROM memory_clusters
		WHERE id = $1
	`

	stored, err := scanCluster(r.pool.QueryRow(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cluster: %w", err)
	}
	return stored, nil
}

// List returns all stored clusters for an algorithm ordered by start date.
// An empty algorithm lists everything.
func (r *ClusterRepository) List(ctx context.Context, algorithm string) ([]StoredCluster, error) {
	query := `
		SELECT id, algorithm, label, centroid_lat, centroid_lng, members, params, created_at, updated_at
		FROM memory_clusters
		WHERE $1 = '' OR algorithm = $1
		ORDER BY start_date, algorithm
	`

	rows, err := r.pool.Query(ctx, query, algorithm)
	if err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	defer rows.Close()

	var clusters []StoredCluster
	for rows.Next() {
		stored, err := scanCluster(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cluster row: %w", err)
		}
		clusters = append(clusters, *stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cluster rows: %w", err)
	}
	return clusters, nil
}

// Delete removes a stored cluster. Deleting an unknown id is not an error.
func (r *ClusterRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, "DELETE FROM memory_clusters WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete cluster: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCluster(row rowScanner) (*StoredCluster, error) {
	var (
		stored  StoredCluster
		lat     float64
		lng     float64
		members pq.StringArray
		params  []byte
	)
	err := row.Scan(
		&stored.ID,
		&stored.Draft.Algorithm,
		&stored.Draft.Label,
		&lat,
		&lng,
		&members,
		&params,
		&stored.CreatedAt,
		&stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	stored.Draft.Centroid = geo.Point{Lat: lat, Lon: lng}
	stored.Draft.Members = []string(members)
	if err := json.Unmarshal(params, &stored.Draft.Params); err != nil {
		return nil, fmt.Errorf("unmarshal cluster params: %w", err)
	}
	return &stored, nil
}
