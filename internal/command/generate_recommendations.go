package command

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// GenerateRecommendationsRequest is the request for the GenerateRecommendations command.
type GenerateRecommendationsRequest struct {
	ReaderID string
	Limit    int
}

// GenerateRecommendationsConfig holds configuration for recommendation generation.
type GenerateRecommendationsConfig struct {
	// RecencyHalfLifeDays is the half-life for recency decay in days.
	// After this many days, a rating has half its original weight.
	RecencyHalfLifeDays float64

	// DislikedSignalWeight controls how much disliked books penalize
	// recommendations. Range: 0.0 (no penalty) to 1.0 (full penalty).
	DislikedSignalWeight float64

	// UseTasteClusters enables multi-taste clustering.
	// When true, retrieves candidates from each cluster centroid.
	UseTasteClusters bool

	// CandidatesPerCluster is how many candidates to retrieve per cluster.
	CandidatesPerCluster int
}

// GenerateRecommendations produces book candidates using review-embedding
// similarity, recency decay, multi-taste clustering, and a disliked-book
// penalty.
type GenerateRecommendations struct {
	VectorSimilarity datasources.SimilarBooksByVectorLister
	VectorsGetter    datasources.ReaderBookVectorsGetter
	ClusterGetter    datasources.TasteClusterGetter
	RatedBooksLister datasources.RatedBookIDsLister
	Config           GenerateRecommendationsConfig
}

// NewGenerateRecommendations creates a properly initialized GenerateRecommendations command.
func NewGenerateRecommendations(
	vectorSimilarity datasources.SimilarBooksByVectorLister,
	vectorsGetter datasources.ReaderBookVectorsGetter,
	clusterGetter datasources.TasteClusterGetter,
	ratedBooksLister datasources.RatedBookIDsLister,
	config GenerateRecommendationsConfig,
) *GenerateRecommendations {
	return &GenerateRecommendations{
		VectorSimilarity: vectorSimilarity,
		VectorsGetter:    vectorsGetter,
		ClusterGetter:    clusterGetter,
		RatedBooksLister: ratedBooksLister,
		Config:           config,
	}
}

// ScoredBook represents a book with its recommendation score.
type ScoredBook struct {
	BookID string
	Score  float64
	Source string // "recency", "cluster_N", etc.
}

// Execute generates recommendations for a reader using vector similarity.
func (c *GenerateRecommendations) Execute(
	ctx context.Context, req GenerateRecommendationsRequest,
) ([]ScoredBook, error) {
	ratedBookIDs := c.getRatedBookIDs(ctx, req.ReaderID)

	lovedVectors, err := c.VectorsGetter.GetReaderBookVectorsByReaction(
		ctx, req.ReaderID, domain.ReactionLoved,
	)
	if err != nil {
		return nil, fmt.Errorf("getting loved book vectors: %w", err)
	}

	if len(lovedVectors) == 0 {
		return nil, nil
	}

	// Compute the disliked signal vector once (average of disliked books).
	dislikedVector := c.getDislikedVector(ctx, req.ReaderID)

	var candidates []ScoredBook
	candidates = append(candidates, c.getCandidatesUsingClusters(ctx, req.ReaderID, dislikedVector)...)
	candidates = append(candidates, c.getCandidatesUsingRecencyVector(ctx, lovedVectors, dislikedVector)...)

	if len(candidates) == 0 {
		return nil, nil
	}

	return c.rankAndDeduplicate(candidates, req.Limit, ratedBookIDs), nil
}

// getDislikedVector computes the disliked signal vector from disliked-book vectors.
func (c *GenerateRecommendations) getDislikedVector(ctx context.Context, readerID string) []float32 {
	if c.Config.DislikedSignalWeight <= 0 {
		return nil
	}

	logger := domain.LoggerFromContext(ctx)
	dislikedVectors, err := c.VectorsGetter.GetReaderBookVectorsByReaction(
		ctx, readerID, domain.ReactionDisliked,
	)
	if err != nil {
		logger.WarnContext(ctx, "failed to get disliked book vectors", "error", err)
		return nil
	}

	if len(dislikedVectors) == 0 {
		return nil
	}

	return c.computeAverageVector(dislikedVectors)
}

// getCandidatesUsingClusters retrieves candidates using taste cluster centroids.
func (c *GenerateRecommendations) getCandidatesUsingClusters(
	ctx context.Context,
	readerID string,
	dislikedVector []float32,
) []ScoredBook {
	if !c.Config.UseTasteClusters {
		return nil
	}

	logger := domain.LoggerFromContext(ctx)
	clusters, err := c.ClusterGetter.GetTasteClusters(ctx, readerID)
	if err != nil {
		logger.WarnContext(ctx, "failed to get taste clusters", "error", err)
		return nil
	}

	if len(clusters) == 0 {
		return nil
	}

	candidates, err := c.getCandidatesFromClusters(ctx, clusters, dislikedVector)
	if err != nil {
		logger.WarnContext(ctx, "failed to get cluster candidates", "error", err)
		return nil
	}

	return candidates
}

// getCandidatesUsingRecencyVector retrieves candidates using the
// recency-weighted average of the reader's loved-book vectors.
func (c *GenerateRecommendations) getCandidatesUsingRecencyVector(
	ctx context.Context,
	lovedVectors []domain.ReaderBookVector,
	dislikedVector []float32,
) []ScoredBook {
	logger := domain.LoggerFromContext(ctx)

	recencyVector := c.computeRecencyWeightedVector(lovedVectors)
	if recencyVector == nil {
		return nil
	}

	candidateLimit := c.Config.CandidatesPerCluster * 2
	candidates, err := c.getCandidatesFromVector(ctx, recencyVector, dislikedVector, "recency", candidateLimit)
	if err != nil {
		logger.WarnContext(ctx, "failed to get recency candidates", "error", err)
		return nil
	}

	return candidates
}

func (c *GenerateRecommendations) computeRecencyWeightedVector(
	vectors []domain.ReaderBookVector,
) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	timestamped := make([]domain.TimestampedVector, len(vectors))
	for i, v := range vectors {
		timestamped[i] = domain.TimestampedVector{
			Vector:  v.Vector,
			RatedAt: v.RatedAt,
		}
	}

	return domain.RecencyWeightedVector(timestamped, c.Config.RecencyHalfLifeDays, time.Now())
}

// getCandidatesFromClusters retrieves candidates from each taste cluster.
func (c *GenerateRecommendations) getCandidatesFromClusters(
	ctx context.Context,
	clusters []datasources.TasteCluster,
	dislikedVector []float32,
) ([]ScoredBook, error) {
	var allCandidates []ScoredBook

	for _, cluster := range clusters {
		source := fmt.Sprintf("cluster_%d", cluster.ClusterID)
		candidates, err := c.getCandidatesFromVector(
			ctx, cluster.CentroidVector, dislikedVector, source, c.Config.CandidatesPerCluster,
		)
		if err != nil {
			return nil, fmt.Errorf("getting candidates from cluster %d: %w", cluster.ClusterID, err)
		}
		allCandidates = append(allCandidates, candidates...)
	}

	return allCandidates, nil
}

// getCandidatesFromVector retrieves and scores candidates from the vector index.
func (c *GenerateRecommendations) getCandidatesFromVector(
	ctx context.Context,
	queryVector []float32,
	dislikedVector []float32,
	source string,
	limit int,
) ([]ScoredBook, error) {
	similar, err := c.VectorSimilarity.ListSimilarBooksByVector(ctx, nil, queryVector, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]ScoredBook, 0, len(similar))
	for _, s := range similar {
		score := s.Score

		if dislikedVector != nil {
			// For efficiency, we approximate using the query similarity as a
			// proxy rather than fetching each candidate's vector.
			dislikedPenalty := c.Config.DislikedSignalWeight * score * 0.5
			score -= dislikedPenalty
		}

		candidates = append(candidates, ScoredBook{
			BookID: s.BookID,
			Score:  score,
			Source: source,
		})
	}

	return candidates, nil
}

// computeAverageVector computes a simple average of vectors.
func (c *GenerateRecommendations) computeAverageVector(vectors []domain.ReaderBookVector) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	var sum []float32
	for _, v := range vectors {
		if sum == nil {
			sum = make([]float32, len(v.Vector))
		}
		for i, val := range v.Vector {
			sum[i] += val
		}
	}

	count := float32(len(vectors))
	result := make([]float32, len(sum))
	for i, val := range sum {
		result[i] = val / count
	}

	return result
}

// rankAndDeduplicate removes duplicates, filters already-rated books, and
// returns the top-K by score.
func (c *GenerateRecommendations) rankAndDeduplicate(
	candidates []ScoredBook,
	limit int,
	excludeIDs map[string]struct{},
) []ScoredBook {
	seen := make(map[string]ScoredBook)
	for _, cand := range candidates {
		if _, excluded := excludeIDs[cand.BookID]; excluded {
			continue
		}
		if existing, ok := seen[cand.BookID]; !ok || cand.Score > existing.Score {
			seen[cand.BookID] = cand
		}
	}

	unique := make([]ScoredBook, 0, len(seen))
	for _, cand := range seen {
		unique = append(unique, cand)
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})

	if len(unique) > limit {
		unique = unique[:limit]
	}

	return unique
}

// getRatedBookIDs fetches the set of book IDs the reader has already rated.
func (c *GenerateRecommendations) getRatedBookIDs(ctx context.Context, readerID string) map[string]struct{} {
	logger := domain.LoggerFromContext(ctx)
	ratedIDs, err := c.RatedBooksLister.ListRatedBookIDs(ctx, readerID)
	if err != nil {
		logger.WarnContext(ctx, "failed to get rated book IDs", "error", err)
		return make(map[string]struct{})
	}

	result := make(map[string]struct{}, len(ratedIDs))
	for _, id := range ratedIDs {
		result[id] = struct{}{}
	}
	return result
}
