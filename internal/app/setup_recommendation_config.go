package app

import (
	"time"

	"github.com/averyhn/shelfrate/internal/command"
)

// DefaultGenerateRecommendationsConfig returns the default config for recommendation generation.
func DefaultGenerateRecommendationsConfig() command.GenerateRecommendationsConfig {
	return command.GenerateRecommendationsConfig{
		RecencyHalfLifeDays:  90,
		DislikedSignalWeight: 0.3,
		UseTasteClusters:     true,
		CandidatesPerCluster: 20,
	}
}

// DefaultRecommendBooksConfig returns the default config for serving recommendations.
func DefaultRecommendBooksConfig() command.RecommendBooksConfig {
	return command.RecommendBooksConfig{
		PrecomputedStaleThreshold: 48 * time.Hour,
		PrecomputedFetchLimit:     200,
	}
}

// DefaultRunRecommendationRefreshConfig returns the default config for background refreshes.
func DefaultRunRecommendationRefreshConfig() command.RunRecommendationRefreshConfig {
	return command.RunRecommendationRefreshConfig{
		CandidateLimit: 200,
	}
}
