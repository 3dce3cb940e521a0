package chroma

import (
	"context"
	"fmt"
	"os"

	"tarot-backend/pkg/config"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings/gemini"
	"go.uber.org/zap"
)

// CollectionName holds one document per card+locale meaning
const CollectionName = "card_meanings"

// maxDocumentLen keeps documents under the embedding model token limit
const maxDocumentLen = 10000

type ChromaClient struct {
	client     chroma.Client
	collection chroma.Collection // Pre-created collection
	logger     *zap.Logger
}

func NewChromaClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ChromaClient, error) {
	if cfg.ChromaAPIKey == "" {
		return nil, fmt.Errorf("CHROMA_API_KEY is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// The embedding function reads the Gemini key from the environment
	if cfg.GeminiApiKey != "" {
		os.Setenv("GEMINI_API_KEY", cfg.GeminiApiKey)
	}

	embedFunc, err := gemini.NewGeminiEmbeddingFunction(
		gemini.WithEnvAPIKey(),
		gemini.WithDefaultModel("text-embedding-004"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini embedding function: %w", err)
	}

	var client chroma.Client
	if cfg.ChromaDatabase != "" && cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithDatabaseAndTenant(cfg.ChromaDatabase, cfg.ChromaTenant),
		)
	} else if cfg.ChromaTenant != "" {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
			chroma.WithTenant(cfg.ChromaTenant),
		)
	} else {
		client, err = chroma.NewHTTPClient(
			chroma.WithBaseURL(chroma.ChromaCloudEndpoint),
			chroma.WithCloudAPIKey(cfg.ChromaAPIKey),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Chroma client: %w", err)
	}

	// Create collection once during initialization
	collection, err := client.GetOrCreateCollection(
		ctx,
		CollectionName,
		chroma.WithEmbeddingFunctionCreate(embedFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	logger.Info("initialized Chroma client", zap.String("collection", CollectionName))

	return &ChromaClient{
		client:     client,
		collection: collection,
		logger:     logger.Named("chroma"),
	}, nil
}

// UpsertCardEmbedding indexes a card meaning. docID is stable per
// card+locale so regenerating content replaces the document.
func (c *ChromaClient) UpsertCardEmbedding(ctx context.Context, docID, cardID, locale, text string) error {
	if len(text) > maxDocumentLen {
		text = text[:maxDocumentLen]
	}

	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"card_id": cardID,
		"locale":  locale,
	})
	if err != nil {
		return fmt.Errorf("failed to create metadata: %w", err)
	}

	err = c.collection.Upsert(
		ctx,
		chroma.WithIDs(chroma.DocumentID(docID)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(text),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert card embedding: %w", err)
	}

	return nil
}

// SemanticSearch returns document ids and distances within one locale,
// nearest first
func (c *ChromaClient) SemanticSearch(ctx context.Context, locale, query string, limit int) ([]string, []float64, error) {
	results, err := c.collection.Query(
		ctx,
		chroma.WithQueryTexts(query),
		chroma.WithNResults(limit),
		chroma.WithWhereQuery(chroma.EqString("locale", locale)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query collection: %w", err)
	}

	if results == nil || results.CountGroups() == 0 {
		return []string{}, []float64{}, nil
	}

	idGroups := results.GetIDGroups()
	distanceGroups := results.GetDistancesGroups()
	if len(idGroups) == 0 || len(idGroups[0]) == 0 {
		return []string{}, []float64{}, nil
	}

	ids := make([]string, 0, len(idGroups[0]))
	for _, id := range idGroups[0] {
		ids = append(ids, string(id))
	}

	distances := []float64{}
	if len(distanceGroups) > 0 {
		for _, d := range distanceGroups[0] {
			distances = append(distances, float64(d))
		}
	}

	c.logger.Debug("semantic search", zap.String("query", query), zap.Int("results", len(ids)))
	return ids, distances, nil
}
