package pinecone

import (
	"context"
	"fmt"
	"strings"

	"github.com/averyhn/shelfrate/internal/datasources"
	"github.com/averyhn/shelfrate/internal/domain"
	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ datasources.SimilarityRepository = (*Client)(nil)

// Client queries the review-embedding index. Each book's reviews are stored
// as one or more chunk vectors whose IDs carry the book ID as a prefix,
// "bookID_N".
type Client struct {
	pinecone *pinecone.Client
	index    *pinecone.Index
}

func NewClient(
	ctx context.Context,
	apiKey string,
	indexName string,
) (*Client, error) {
	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:     apiKey,
		Headers:    nil,
		Host:       "",
		RestClient: nil,
		SourceTag:  "",
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone client: %w", err)
	}

	idx, err := pc.DescribeIndex(ctx, indexName)
	if err != nil {
		return nil, fmt.Errorf("retrieving pinecone index metadata for reviews: %w", err)
	}

	return &Client{
		pinecone: pc,
		index:    idx,
	}, nil
}

func (c *Client) connect() (*pinecone.IndexConnection, error) {
	idxConn, err := c.pinecone.Index(pinecone.NewIndexConnParams{
		Host:      c.index.Host,
		Namespace: "reviews",
	})
	if err != nil {
		return nil, fmt.Errorf("creating pinecone index connection: %w", err)
	}
	return idxConn, nil
}

// FetchBookVector returns a book's review-embedding vector, averaged across
// its review chunks. Returns an error when the book has no vectors.
func (c *Client) FetchBookVector(ctx context.Context, bookID string) ([]float32, error) {
	idxConn, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = idxConn.Close() }()

	return c.getBaseSearchVector(ctx, idxConn, bookID)
}

func (c *Client) ListSimilarBooks(
	ctx context.Context,
	bookIDs []string,
	limit int,
) ([]domain.SimilarBook, error) {
	if limit > 10000 {
		return nil, fmt.Errorf("limit value too high [%d]", limit)
	}
	if len(bookIDs) == 0 {
		return nil, nil
	}

	idxConn, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = idxConn.Close() }()

	// Average the vectors of the base books to form the search vector,
	// skipping books that have no vectors.
	var allVectors [][]float32
	for _, bookID := range bookIDs {
		vector, err := c.getBaseSearchVector(ctx, idxConn, bookID)
		if err != nil {
			continue
		}
		allVectors = append(allVectors, vector)
	}

	if len(allVectors) == 0 {
		return nil, nil
	}

	searchVector := averageVectors(allVectors)

	return c.findSimilarBooks(ctx, idxConn, bookIDs, searchVector, limit)
}

func (c *Client) ListSimilarBooksByVector(
	ctx context.Context,
	excludeBookIDs []string,
	vector []float32,
	limit int,
) ([]domain.SimilarBook, error) {
	if limit > 10000 {
		return nil, fmt.Errorf("limit value too high [%d]", limit)
	}
	if len(vector) == 0 {
		return nil, nil
	}

	idxConn, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = idxConn.Close() }()

	return c.findSimilarBooks(ctx, idxConn, excludeBookIDs, vector, limit)
}

func (c *Client) getBaseSearchVector(
	ctx context.Context,
	idxConn *pinecone.IndexConnection,
	bookID string,
) ([]float32, error) {
	baseVectorPrefix := bookID + "_"
	baseVectorLimit := uint32(20)
	baseVectorIDsResp, err := idxConn.ListVectors(ctx, &pinecone.ListVectorsRequest{
		Prefix:          &baseVectorPrefix,
		Limit:           &baseVectorLimit,
		PaginationToken: nil,
	})
	if err != nil {
		return nil, fmt.Errorf("listing vector IDs for base book [%s]: %w", bookID, err)
	}
	if len(baseVectorIDsResp.VectorIds) == 0 {
		return nil, fmt.Errorf("no vector IDs found for book [%s]", bookID)
	}

	var baseVectorIDs []string
	for _, id := range baseVectorIDsResp.VectorIds {
		baseVectorIDs = append(baseVectorIDs, *id)
	}

	baseVectorsResp, err := idxConn.FetchVectors(ctx, baseVectorIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching vectors for base book [%s]: %w", bookID, err)
	}

	return averagePineconeVectors(baseVectorsResp.Vectors), nil
}

func (c *Client) findSimilarBooks(
	ctx context.Context,
	idxConn *pinecone.IndexConnection,
	excludeBookIDs []string,
	searchVector []float32,
	limit int,
) ([]domain.SimilarBook, error) {
	var results []domain.SimilarBook

	for len(results) < limit {
		foundResult, err := c.searchBatch(ctx, idxConn, excludeBookIDs, searchVector, &results, limit)
		if err != nil {
			return nil, err
		}
		if !foundResult {
			break // No more results to find, stop even though we're not at limit
		}
	}

	return results, nil
}

func (c *Client) searchBatch(
	ctx context.Context,
	idxConn *pinecone.IndexConnection,
	excludeBookIDs []string,
	searchVector []float32,
	results *[]domain.SimilarBook,
	limit int,
) (bool, error) {
	filter, err := c.createExistingResultsExclusionFilter(excludeBookIDs, *results)
	if err != nil {
		return false, err
	}

	resp, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          searchVector,
		TopK:            10,
		MetadataFilter:  filter,
		IncludeValues:   false,
		IncludeMetadata: false,
		SparseValues:    nil,
	})
	if err != nil {
		return false, fmt.Errorf("querying for similar vectors: %w", err)
	}

	return c.processSearchResults(resp, results, limit)
}

func (c *Client) createExistingResultsExclusionFilter(
	excludeBookIDs []string,
	results []domain.SimilarBook,
) (*pinecone.MetadataFilter, error) {
	var filterExistingIDs []any
	for _, id := range excludeBookIDs {
		filterExistingIDs = append(filterExistingIDs, id)
	}
	for _, result := range results {
		filterExistingIDs = append(filterExistingIDs, result.BookID)
	}

	metadataMap := map[string]any{
		"book_id": map[string]any{
			"$nin": filterExistingIDs,
		},
	}

	filter, err := structpb.NewStruct(metadataMap)
	if err != nil {
		return nil, fmt.Errorf("creating metadata filter map: %w", err)
	}
	return filter, nil
}

func (c *Client) processSearchResults(
	resp *pinecone.QueryVectorsResponse,
	results *[]domain.SimilarBook,
	limit int,
) (bool, error) {
	foundResult := false

	for _, scoredVector := range resp.Matches {
		matchBookID, err := c.extractBookIDFromVector(scoredVector.Vector.Id)
		if err != nil {
			return false, err
		}

		if c.isDuplicate(matchBookID, *results) {
			continue
		}

		foundResult = true
		if len(*results) < limit {
			*results = append(*results, domain.SimilarBook{
				BookID: matchBookID,
				Score:  float64(scoredVector.Score),
			})
		}
	}

	return foundResult, nil
}

func (c *Client) extractBookIDFromVector(vectorID string) (string, error) {
	vectorIDParts := strings.Split(vectorID, "_")
	if len(vectorIDParts) < 2 {
		return "", fmt.Errorf("unexpected pinecone vector ID format [%s]", vectorID)
	}
	return vectorIDParts[0], nil
}

func (c *Client) isDuplicate(bookID string, results []domain.SimilarBook) bool {
	for _, result := range results {
		if result.BookID == bookID {
			return true
		}
	}
	return false
}

func averagePineconeVectors(vectors map[string]*pinecone.Vector) []float32 {
	var values [][]float32
	for _, vector := range vectors {
		values = append(values, vector.Values)
	}
	return averageVectors(values)
}

func averageVectors(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	result := make([]float32, len(vectors[0]))
	for _, vector := range vectors {
		for i, v := range vector {
			result[i] += v
		}
	}

	for i := range result {
		result[i] /= float32(len(vectors))
	}

	return result
}
