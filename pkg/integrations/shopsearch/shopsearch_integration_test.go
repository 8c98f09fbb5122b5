package shopsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIntegration(endpoint string) *Integration {
	return NewIntegration(IntegrationDependencies{
		Credential: Credential{ClientID: "id", ClientSecret: "secret"},
		Endpoint:   endpoint,
		Timeout:    time.Second,
	})
}

func TestSearchCategory_ExtractsHierarchy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "id", r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "1", r.URL.Query().Get("display"))
		w.Write([]byte(`{"items":[{"title":"스텐 밀폐용기 세트","category1":"생활/건강","category2":"주방용품","category3":"보관/밀폐용기","category4":""}]}`))
	}))
	defer srv.Close()

	guess := newTestIntegration(srv.URL).SearchCategory(context.Background(), "스텐 밀폐용기")

	assert.Equal(t, "생활/건강>주방용품>보관/밀폐용기", guess.CategoryPath)
	assert.Equal(t, "보관/밀폐용기", guess.LeafTerm)
}

func TestSearchCategory_FourLevels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"category1":"패션잡화","category2":"양말","category3":"여성양말","category4":"수면양말"}]}`))
	}))
	defer srv.Close()

	guess := newTestIntegration(srv.URL).SearchCategory(context.Background(), "수면양말")

	assert.Equal(t, "패션잡화>양말>여성양말>수면양말", guess.CategoryPath)
	assert.Equal(t, "수면양말", guess.LeafTerm)
}

func TestSearchCategory_FallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name:    "http error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTooManyRequests) },
		},
		{
			name:    "empty result",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"items":[]}`)) },
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{{{`)) },
		},
		{
			name:    "item without categories",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"items":[{"title":"x"}]}`)) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			guess := newTestIntegration(srv.URL).SearchCategory(context.Background(), "스텐 밀폐용기")

			// fallback still recognizes the kitchen-storage vocabulary
			assert.Equal(t, "생활/건강>주방용품>보관/밀폐용기", guess.CategoryPath)
			require.NotEmpty(t, guess.LeafTerm)
		})
	}
}

func TestSearchCategory_MissingCredentials(t *testing.T) {
	i := NewIntegration(IntegrationDependencies{})

	guess := i.SearchCategory(context.Background(), "캠핑 의자")

	assert.Equal(t, "스포츠/레저>캠핑>캠핑용품", guess.CategoryPath)
}

func TestHeuristicGuess_CatchAll(t *testing.T) {
	guess := HeuristicGuess("완전히 생소한 문구")

	assert.Equal(t, catchAllPath, guess.CategoryPath)
	assert.Equal(t, "생활잡화", guess.LeafTerm)
}
