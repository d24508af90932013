package domain

import (
	"math"
	"math/rand"
)

// TasteClusterConfig holds configuration for clustering a reader's loved
// books into distinct taste clusters.
type TasteClusterConfig struct {
	// NumClusters is the number of taste clusters to create.
	NumClusters int

	// MinBooksForClustering is the minimum number of loved books required.
	// Readers with fewer loved books get no clusters.
	MinBooksForClustering int

	// MaxIterations is the maximum number of k-means iterations.
	MaxIterations int

	// ConvergenceThreshold is the minimum centroid movement to continue iterating.
	ConvergenceThreshold float64
}

// DefaultTasteClusterConfig returns the default clustering configuration.
func DefaultTasteClusterConfig() TasteClusterConfig {
	return TasteClusterConfig{
		NumClusters:           3,
		MinBooksForClustering: 6,
		MaxIterations:         50,
		ConvergenceThreshold:  0.0001,
	}
}

// ClusterResult holds the result of k-means clustering.
type ClusterResult struct {
	Centroids   [][]float32
	Assignments []int
}

// KMeans clusters the given review-embedding vectors into k taste clusters.
// Returns cluster centroids and assignments (which cluster each vector
// belongs to). If data is empty or k is 0, returns nil results.
func KMeans(data [][]float32, k int, config TasteClusterConfig, rng *rand.Rand) ClusterResult {
	if len(data) == 0 || k == 0 {
		return ClusterResult{}
	}

	centroids := initializeCentroidsKMeansPlusPlus(data, k, rng)
	assignments := make([]int, len(data))

	for iter := 0; iter < config.MaxIterations; iter++ {
		assignVectorsToCentroids(data, centroids, assignments)

		newCentroids := recomputeCentroids(data, assignments, k, centroids)

		if maxCentroidMovement(centroids, newCentroids) < config.ConvergenceThreshold {
			centroids = newCentroids
			break
		}

		centroids = newCentroids
	}

	return ClusterResult{
		Centroids:   centroids,
		Assignments: assignments,
	}
}

func assignVectorsToCentroids(data [][]float32, centroids [][]float32, assignments []int) {
	for i, vector := range data {
		assignments[i] = findNearestCentroid(vector, centroids)
	}
}

// recomputeCentroids calculates new centroid positions based on current
// assignments, keeping the old centroid for any cluster left empty.
func recomputeCentroids(
	data [][]float32,
	assignments []int,
	k int,
	oldCentroids [][]float32,
) [][]float32 {
	dim := len(data[0])
	newCentroids := make([][]float32, k)
	counts := make([]int, k)

	for i := range newCentroids {
		newCentroids[i] = make([]float32, dim)
	}

	for i, vector := range data {
		cluster := assignments[i]
		counts[cluster]++
		for j, val := range vector {
			newCentroids[cluster][j] += val
		}
	}

	for i := range newCentroids {
		if counts[i] > 0 {
			for j := range newCentroids[i] {
				newCentroids[i][j] /= float32(counts[i])
			}
		} else {
			newCentroids[i] = oldCentroids[i]
		}
	}

	return newCentroids
}

// maxCentroidMovement returns the maximum distance any centroid moved.
func maxCentroidMovement(oldCentroids, newCentroids [][]float32) float64 {
	maxMovement := float64(0)
	for i := range oldCentroids {
		movement := EuclideanDistance(oldCentroids[i], newCentroids[i])
		if movement > maxMovement {
			maxMovement = movement
		}
	}
	return maxMovement
}

// initializeCentroidsKMeansPlusPlus seeds centroids with the k-means++
// strategy: the first at random, the rest with probability proportional to
// squared distance from the nearest existing centroid.
func initializeCentroidsKMeansPlusPlus(data [][]float32, k int, rng *rand.Rand) [][]float32 {
	n := len(data)
	dim := len(data[0])
	centroids := make([][]float32, k)

	firstIdx := rng.Intn(n)
	centroids[0] = make([]float32, dim)
	copy(centroids[0], data[firstIdx])

	distances := make([]float64, n)
	for i := 1; i < k; i++ {
		totalDist := float64(0)
		for j, vector := range data {
			minDist := math.MaxFloat64
			for ci := 0; ci < i; ci++ {
				dist := EuclideanDistanceSquared(vector, centroids[ci])
				if dist < minDist {
					minDist = dist
				}
			}
			distances[j] = minDist
			totalDist += minDist
		}

		target := rng.Float64() * totalDist
		cumulative := float64(0)
		chosenIdx := 0
		for j, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosenIdx = j
				break
			}
		}

		centroids[i] = make([]float32, dim)
		copy(centroids[i], data[chosenIdx])
	}

	return centroids
}

func findNearestCentroid(vector []float32, centroids [][]float32) int {
	minDist := math.MaxFloat64
	minIdx := 0

	for i, centroid := range centroids {
		dist := EuclideanDistanceSquared(vector, centroid)
		if dist < minDist {
			minDist = dist
			minIdx = i
		}
	}

	return minIdx
}

// EuclideanDistance computes the Euclidean distance between two vectors.
func EuclideanDistance(a, b []float32) float64 {
	return math.Sqrt(EuclideanDistanceSquared(a, b))
}

// EuclideanDistanceSquared computes the squared Euclidean distance between two vectors.
func EuclideanDistanceSquared(a, b []float32) float64 {
	sum := float64(0)
	for i := range a {
		diff := float64(a[i] - b[i])
		sum += diff * diff
	}
	return sum
}

// CountClusterAssignments counts how many vectors are assigned to each cluster.
func CountClusterAssignments(assignments []int, k int) []int {
	counts := make([]int, k)
	for _, a := range assignments {
		if a >= 0 && a < k {
			counts[a]++
		}
	}
	return counts
}
