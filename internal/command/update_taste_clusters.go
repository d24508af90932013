package command

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// UpdateTasteClustersRequest is the request for the UpdateTasteClusters command.
type UpdateTasteClustersRequest struct {
	ReaderID string
}

// UpdateTasteClusters recomputes taste clusters for a reader based on the
// review-embedding vectors of the books they loved.
type UpdateTasteClusters struct {
	VectorsGetter datasources.ReaderBookVectorsGetter
	ClusterWriter datasources.TasteClusterWriter
	Config        domain.TasteClusterConfig
	Rand          *rand.Rand
}

// NewUpdateTasteClusters creates a properly initialized UpdateTasteClusters command.
func NewUpdateTasteClusters(
	vectorsGetter datasources.ReaderBookVectorsGetter,
	clusterWriter datasources.TasteClusterWriter,
	config domain.TasteClusterConfig,
	rng *rand.Rand,
) *UpdateTasteClusters {
	return &UpdateTasteClusters{
		VectorsGetter: vectorsGetter,
		ClusterWriter: clusterWriter,
		Config:        config,
		Rand:          rng,
	}
}

// Execute runs k-means clustering on the reader's loved-book vectors and
// stores the resulting cluster centroids.
func (c *UpdateTasteClusters) Execute(ctx context.Context, req UpdateTasteClustersRequest) (Empty, error) {
	logger := domain.LoggerFromContext(ctx)

	vectors, err := c.VectorsGetter.GetReaderBookVectorsByReaction(ctx, req.ReaderID, domain.ReactionLoved)
	if err != nil {
		return Empty{}, fmt.Errorf("getting loved book vectors: %w", err)
	}

	if len(vectors) < c.Config.MinBooksForClustering {
		logger.DebugContext(ctx, "not enough loved books for clustering",
			"count", len(vectors), "min", c.Config.MinBooksForClustering)
		// Clear existing clusters since we don't have enough data.
		if err := c.ClusterWriter.DeleteTasteClusters(ctx, req.ReaderID); err != nil {
			logger.WarnContext(ctx, "failed to delete taste clusters", "error", err)
		}
		return Empty{}, nil
	}

	data := make([][]float32, len(vectors))
	for i, v := range vectors {
		data[i] = v.Vector
	}

	// Can't have more clusters than data points.
	k := c.Config.NumClusters
	if k > len(data) {
		k = len(data)
	}

	result := domain.KMeans(data, k, c.Config, c.Rand)

	clusterCounts := domain.CountClusterAssignments(result.Assignments, k)

	if err := c.ClusterWriter.DeleteTasteClusters(ctx, req.ReaderID); err != nil {
		return Empty{}, fmt.Errorf("deleting old clusters: %w", err)
	}

	for i, centroid := range result.Centroids {
		if clusterCounts[i] == 0 {
			continue
		}
		if err := c.ClusterWriter.UpsertTasteCluster(
			ctx, req.ReaderID, i, centroid, clusterCounts[i],
		); err != nil {
			return Empty{}, fmt.Errorf("saving cluster %d: %w", i, err)
		}
	}

	logger.DebugContext(ctx, "updated taste clusters",
		"numClusters", k, "clusterCounts", clusterCounts)

	return Empty{}, nil
}
