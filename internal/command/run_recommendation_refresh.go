package command

import (
	"context"
	"fmt"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
)

// RunRecommendationRefreshRequest is the request for the RunRecommendationRefresh command.
// The command takes no parameters beyond context.
type RunRecommendationRefreshRequest struct{}

// RunRecommendationRefreshConfig holds configuration for background
// recommendation refreshes.
type RunRecommendationRefreshConfig struct {
	// CandidateLimit is the number of recommendations to precompute per
	// reader. Should be larger than the serving limit to account for
	// rated-book filtering.
	CandidateLimit int
}

// RunRecommendationRefreshResult reports how many readers were processed.
type RunRecommendationRefreshResult struct {
	ReadersProcessed int
	ReadersFailed    int
}

// RunRecommendationRefresh regenerates precomputed recommendations for every
// reader flagged as stale: recluster their taste, regenerate candidates, and
// replace the stored rows.
type RunRecommendationRefresh struct {
	UpdateClustersCmd *UpdateTasteClusters
	GenerateCmd       *GenerateRecommendations
	PrecomputedWriter datasources.PrecomputedRecommendationWriter
	RefreshStatus     datasources.ReaderRefreshStatusRepository
	Config            RunRecommendationRefreshConfig
}

// NewRunRecommendationRefresh creates a properly initialized RunRecommendationRefresh command.
func NewRunRecommendationRefresh(
	updateClustersCmd *UpdateTasteClusters,
	generateCmd *GenerateRecommendations,
	precomputedWriter datasources.PrecomputedRecommendationWriter,
	refreshStatus datasources.ReaderRefreshStatusRepository,
	config RunRecommendationRefreshConfig,
) *RunRecommendationRefresh {
	return &RunRecommendationRefresh{
		UpdateClustersCmd: updateClustersCmd,
		GenerateCmd:       generateCmd,
		PrecomputedWriter: precomputedWriter,
		RefreshStatus:     refreshStatus,
		Config:            config,
	}
}

// Execute refreshes recommendations for all readers needing regeneration.
// One reader's failure doesn't abort the run.
func (c *RunRecommendationRefresh) Execute(
	ctx context.Context, _ RunRecommendationRefreshRequest,
) (RunRecommendationRefreshResult, error) {
	logger := domain.LoggerFromContext(ctx)

	readerIDs, err := c.RefreshStatus.ListReadersNeedingRefresh(ctx)
	if err != nil {
		return RunRecommendationRefreshResult{}, fmt.Errorf("listing readers needing refresh: %w", err)
	}

	var result RunRecommendationRefreshResult
	for _, readerID := range readerIDs {
		if err := c.refreshReader(ctx, readerID); err != nil {
			logger.WarnContext(ctx, "failed to refresh reader recommendations",
				"error", err, "readerID", readerID)
			result.ReadersFailed++
			continue
		}
		result.ReadersProcessed++
	}

	logger.InfoContext(ctx, "recommendation refresh run complete",
		"processed", result.ReadersProcessed, "failed", result.ReadersFailed)

	return result, nil
}

func (c *RunRecommendationRefresh) refreshReader(ctx context.Context, readerID string) error {
	if _, err := c.UpdateClustersCmd.Execute(ctx, UpdateTasteClustersRequest{ReaderID: readerID}); err != nil {
		return fmt.Errorf("updating taste clusters: %w", err)
	}

	scored, err := c.GenerateCmd.Execute(ctx, GenerateRecommendationsRequest{
		ReaderID: readerID,
		Limit:    c.Config.CandidateLimit,
	})
	if err != nil {
		return fmt.Errorf("generating recommendations: %w", err)
	}

	if err := c.PrecomputedWriter.DeleteReaderPrecomputedRecommendations(ctx, readerID); err != nil {
		return fmt.Errorf("deleting old recommendations: %w", err)
	}

	for _, s := range scored {
		if err := c.PrecomputedWriter.UpsertPrecomputedRecommendation(
			ctx, readerID, s.BookID, s.Score, s.Source,
		); err != nil {
			return fmt.Errorf("saving recommendation for book %s: %w", s.BookID, err)
		}
	}

	if err := c.RefreshStatus.MarkReaderRefreshed(ctx, readerID); err != nil {
		return fmt.Errorf("marking reader refreshed: %w", err)
	}

	return nil
}
