package geo

import "sort"

// Cluster is one density-connected group of input points.
type Cluster struct {
	Centroid Point
	Indices  []int // indices into the input slice, ascending
}

// DBSCANResult separates clustered points from density noise.
type DBSCANResult struct {
	Clusters []Cluster
	Noise    []int // indices of points that belong to no cluster
}

// DBSCAN runs density-based clustering over geographic points.
// radiusKm is the neighbourhood radius (eps) and minSamples the minimum
// number of points required to form a dense region. Points that never reach
// a dense neighbourhood are reported as noise rather than forced into a
// cluster, so a single mis-geotagged sample cannot drag a centroid away.
//
// The output is deterministic for a fixed input order: clusters are emitted
// in order of their lowest member index and member indices are ascending.
func DBSCAN(points []Point, radiusKm float64, minSamples int) DBSCANResult {
	if minSamples < 1 {
		minSamples = 1
	}

	const (
		unvisited = 0
		noise     = -1
	)
	labels := make([]int, len(points)) // 0 unvisited, -1 noise, >0 cluster id

	neighbours := func(i int) []int {
		var out []int
		for j := range points {
			if DistanceKm(points[i], points[j]) <= radiusKm {
				out = append(out, j)
			}
		}
		return out
	}

	clusterID := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		seed := neighbours(i)
		if len(seed) < minSamples {
			labels[i] = noise
			continue
		}

		clusterID++
		labels[i] = clusterID

		// Expand the cluster breadth-first over density-reachable points.
		queue := append([]int(nil), seed...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if labels[j] == noise {
				labels[j] = clusterID // border point
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = clusterID
			next := neighbours(j)
			if len(next) >= minSamples {
				queue = append(queue, next...)
			}
		}
	}

	var res DBSCANResult
	byID := make(map[int][]int)
	for i := range points {
		if labels[i] == noise {
			res.Noise = append(res.Noise, i)
			continue
		}
		byID[labels[i]] = append(byID[labels[i]], i)
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	// Cluster ids are assigned in first-member order, so sorting by id keeps
	// the output stable for replayed inputs.
	sort.Ints(ids)

	for _, id := range ids {
		idx := byID[id]
		sort.Ints(idx)
		members := make([]Point, len(idx))
		for k, i := range idx {
			members[k] = points[i]
		}
		res.Clusters = append(res.Clusters, Cluster{
			Centroid: Centroid(members),
			Indices:  idx,
		})
	}
	return res
}
