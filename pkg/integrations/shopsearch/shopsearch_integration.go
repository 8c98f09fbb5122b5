package shopsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sellerkit/sellerkit/pkg/domain"
)

const defaultEndpoint = "https://openapi.naver.com/v1/search/shop.json"

// Credential holds the API keys for the shopping search service.
type Credential struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type IntegrationDependencies struct {
	Credential Credential
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Integration queries the shopping search service for the best-matching
// product of a combined keyword phrase and extracts its category hierarchy.
// Every failure mode degrades to a local heuristic guess; callers never see
// an error.
type Integration struct {
	credential Credential
	endpoint   string
	client     *http.Client
}

func NewIntegration(deps IntegrationDependencies) *Integration {
	endpoint := deps.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	client := deps.HTTPClient
	if client == nil {
		timeout := deps.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Integration{
		credential: deps.Credential,
		endpoint:   endpoint,
		client:     client,
	}
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title     string `json:"title"`
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
	Category3 string `json:"category3"`
	Category4 string `json:"category4"`
}

// SearchCategory asks the service for the single best match of the combined
// phrase and folds its category1..category4 fields into a category path.
func (i *Integration) SearchCategory(ctx context.Context, combinedText string) domain.CategoryGuess {
	guess, err := i.search(ctx, combinedText)
	if err != nil {
		log.Debug().Err(err).Str("query", combinedText).Msg("shopping search failed, using heuristic category guess")
		return HeuristicGuess(combinedText)
	}
	return guess
}

func (i *Integration) search(ctx context.Context, combinedText string) (domain.CategoryGuess, error) {
	if i.credential.ClientID == "" || i.credential.ClientSecret == "" {
		return domain.CategoryGuess{}, fmt.Errorf("shopping search credentials not configured")
	}

	reqURL := fmt.Sprintf("%s?query=%s&display=1", i.endpoint, url.QueryEscape(combinedText))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.CategoryGuess{}, err
	}
	req.Header.Set("X-Naver-Client-Id", i.credential.ClientID)
	req.Header.Set("X-Naver-Client-Secret", i.credential.ClientSecret)

	resp, err := i.client.Do(req)
	if err != nil {
		return domain.CategoryGuess{}, fmt.Errorf("shopping search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.CategoryGuess{}, fmt.Errorf("shopping search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.CategoryGuess{}, fmt.Errorf("decode shopping search response: %w", err)
	}
	if len(body.Items) == 0 {
		return domain.CategoryGuess{}, fmt.Errorf("shopping search returned no items")
	}

	guess, ok := guessFromItem(body.Items[0])
	if !ok {
		return domain.CategoryGuess{}, fmt.Errorf("shopping search item had no category levels")
	}
	return guess, nil
}

func guessFromItem(item searchItem) (domain.CategoryGuess, bool) {
	var levels []string
	for _, level := range []string{item.Category1, item.Category2, item.Category3, item.Category4} {
		level = strings.TrimSpace(level)
		if level == "" {
			break
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return domain.CategoryGuess{}, false
	}
	return domain.CategoryGuess{
		CategoryPath: strings.Join(levels, ">"),
		LeafTerm:     levels[len(levels)-1],
	}, true
}
