package initialization

import (
	"math/rand"
	"time"

	"github.com/sellerkit/sellerkit/internal/category"
	"github.com/sellerkit/sellerkit/internal/config"
	"github.com/sellerkit/sellerkit/internal/keywords"
	"github.com/sellerkit/sellerkit/internal/pipeline"
	"github.com/sellerkit/sellerkit/internal/tabular"
	"github.com/sellerkit/sellerkit/pkg/integrations/shopsearch"
	"github.com/sellerkit/sellerkit/pkg/integrations/textgen"
)

// Container wires the configured pipeline and its collaborators for the CLI
// and the HTTP server.
type Container struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
}

// NewContainer loads configuration, the category reference index, and the
// external service adapters, and assembles the enrichment pipeline.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewContainerWithConfig(cfg), nil
}

func NewContainerWithConfig(cfg *config.Config) *Container {
	idx := category.LoadIndex(category.StoreOptions{
		ReferencePath: cfg.ReferencePath,
		ReadReference: tabular.ReadCategoryReference,
		CacheDir:      cfg.CacheDir,
		CacheTTL:      cfg.CacheTTL(),
		MinNGram:      2,
		MaxNGram:      3,
	})

	searcher := shopsearch.NewIntegration(shopsearch.IntegrationDependencies{
		Credential: shopsearch.Credential{
			ClientID:     cfg.NaverClientID,
			ClientSecret: cfg.NaverClientSecret,
		},
		Endpoint: cfg.SearchEndpoint,
	})

	generator := textgen.NewIntegration(textgen.IntegrationDependencies{
		Credential: textgen.Credential{APIKey: cfg.OpenAIAPIKey},
		Model:      cfg.OpenAIModel,
		BaseURL:    cfg.OpenAIBaseURL,
	})

	combiner := keywords.NewGenerator(cfg.MinWindow, cfg.MaxWindow, nil,
		rand.New(rand.NewSource(time.Now().UnixNano())))

	p := pipeline.New(pipeline.Dependencies{
		Searcher:    searcher,
		Generator:   generator,
		Coder:       category.NewMapper(idx, cfg.FuzzyThreshold),
		Combiner:    combiner,
		BatchSize:   cfg.BatchSize,
		Concurrency: cfg.Concurrency,
		BatchDelay:  cfg.BatchDelay(),
	})

	return &Container{Config: cfg, Pipeline: p}
}
