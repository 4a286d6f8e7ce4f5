package services

import (
	"cmp"
	"group-trip-planner/internal/domain"
	"math"
	"slices"
)

const maxClusterRounds = 8

// ClusterByGeo partitions activities into k spatially coherent groups, one per
// trip day, using a fixed number of k-means rounds in (lat, lng) space.
//
// Centroids are seeded from the first k activities, so results are fully
// deterministic for a given input order. Every returned cluster is sorted by
// score descending.
//
// Degenerate cases: k <= 1 returns a single cluster holding everything; when
// there are no more activities than k, each activity becomes its own cluster
// (best first) and the remainder are empty.
func ClusterByGeo(activities []domain.ScoredActivity, k int) [][]domain.ScoredActivity {
	if k <= 1 {
		return [][]domain.ScoredActivity{sortedByScore(activities)}
	}

	if len(activities) <= k {
		clusters := make([][]domain.ScoredActivity, k)
		for i, a := range sortedByScore(activities) {
			clusters[i] = []domain.ScoredActivity{a}
		}
		for i := len(activities); i < k; i++ {
			clusters[i] = []domain.ScoredActivity{}
		}
		return clusters
	}

	points := make([]domain.Coordinates, len(activities))
	for i, a := range activities {
		points[i] = a.Coordinates()
	}

	centroids := make([]domain.Coordinates, k)
	copy(centroids, points[:k])

	assignment := make([]int, len(points))
	for round := 0; round < maxClusterRounds; round++ {
		assign(points, centroids, assignment)

		next := recomputeCentroids(points, centroids, assignment)
		converged := centroidsClose(centroids, next)
		centroids = next
		if converged {
			break
		}
	}
	assign(points, centroids, assignment)

	clusters := make([][]domain.ScoredActivity, k)
	for i := range clusters {
		clusters[i] = []domain.ScoredActivity{}
	}
	for i, a := range activities {
		clusters[assignment[i]] = append(clusters[assignment[i]], a)
	}
	for i := range clusters {
		clusters[i] = sortedByScore(clusters[i])
	}
	return clusters
}

// assign maps each point to its nearest centroid by squared Euclidean
// distance; ties go to the lower centroid index.
func assign(points, centroids []domain.Coordinates, assignment []int) {
	for i, p := range points {
		best := 0
		bestDist := math.Inf(1)
		for j, c := range centroids {
			dLat := p.Lat - c.Lat
			dLng := p.Lng - c.Lng
			if d := dLat*dLat + dLng*dLng; d < bestDist {
				best = j
				bestDist = d
			}
		}
		assignment[i] = best
	}
}

// An empty cluster keeps its previous centroid.
func recomputeCentroids(points, centroids []domain.Coordinates, assignment []int) []domain.Coordinates {
	sums := make([]domain.Coordinates, len(centroids))
	counts := make([]int, len(centroids))
	for i, p := range points {
		c := assignment[i]
		sums[c].Lat += p.Lat
		sums[c].Lng += p.Lng
		counts[c]++
	}

	next := make([]domain.Coordinates, len(centroids))
	for j := range centroids {
		if counts[j] == 0 {
			next[j] = centroids[j]
			continue
		}
		next[j] = domain.Coordinates{
			Lat: sums[j].Lat / float64(counts[j]),
			Lng: sums[j].Lng / float64(counts[j]),
		}
	}
	return next
}

func centroidsClose(a, b []domain.Coordinates) bool {
	const rtol, atol = 1e-5, 1e-8
	near := func(x, y float64) bool { return math.Abs(x-y) <= atol+rtol*math.Abs(y) }
	for i := range a {
		if !near(a[i].Lat, b[i].Lat) || !near(a[i].Lng, b[i].Lng) {
			return false
		}
	}
	return true
}

func sortedByScore(activities []domain.ScoredActivity) []domain.ScoredActivity {
	out := slices.Clone(activities)
	if out == nil {
		out = []domain.ScoredActivity{}
	}
	slices.SortStableFunc(out, func(x, y domain.ScoredActivity) int {
		return cmp.Compare(y.Score, x.Score)
	})
	return out
}
