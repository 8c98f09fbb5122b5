package textgen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNameConstraints(t *testing.T, name string) {
	t.Helper()

	require.NotEmpty(t, name)
	assert.LessOrEqual(t, len([]rune(name)), 35)

	for _, r := range name {
		assert.False(t, unicode.Is(unicode.Latin, r), "latin rune %q in %q", r, name)
		assert.False(t, unicode.IsPunct(r) || unicode.IsSymbol(r), "punctuation rune %q in %q", r, name)
	}

	seen := map[string]bool{}
	for _, tok := range strings.Fields(name) {
		assert.False(t, seen[tok], "duplicate token %q in %q", tok, name)
		seen[tok] = true
	}
}

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`))
	}))
}

func jsonString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func newServerBackedIntegration(srv *httptest.Server) *Integration {
	return NewIntegration(IntegrationDependencies{
		Credential: Credential{APIKey: "test-key"},
		BaseURL:    srv.URL + "/v1",
	})
}

func TestGenerateName_FromService(t *testing.T) {
	srv := chatServer(t, "국내산 수면양말 기모 겨울 따뜻한 선물용 3켤레!")
	defer srv.Close()

	name := newServerBackedIntegration(srv).GenerateName(context.Background(), "수면양말 기모", "패션잡화>양말>수면양말", "수면양말")

	assertNameConstraints(t, name)
	assert.Contains(t, name, "수면양말")
	assert.NotContains(t, name, "!")
}

func TestGenerateName_FallbackWithoutCredentials(t *testing.T) {
	i := NewIntegration(IntegrationDependencies{})

	name := i.GenerateName(context.Background(), "스텐 밀폐용기 보관", "생활/건강>주방용품>보관/밀폐용기", "보관/밀폐용기")

	assertNameConstraints(t, name)
	assert.Contains(t, name, "밀폐")
}

func TestGenerateName_FallbackOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	name := newServerBackedIntegration(srv).GenerateName(context.Background(), "캠핑 의자 휴대용", "스포츠/레저>캠핑>캠핑용품", "캠핑용품")

	assertNameConstraints(t, name)
}

func TestGenerateRelated_CapAndDedup(t *testing.T) {
	terms := make([]string, 0, 30)
	for i := 0; i < 15; i++ {
		terms = append(terms, "양말 세트")
	}
	terms = append(terms, "양말 선물", "양말 보관", "겨울 양말")
	srv := chatServer(t, strings.Join(terms, ", "))
	defer srv.Close()

	related := newServerBackedIntegration(srv).GenerateRelated(context.Background(), "양말", "따뜻한 수면양말")

	assert.LessOrEqual(t, len(related), 20)
	seen := map[string]bool{}
	for _, term := range related {
		key := strings.ToLower(term)
		assert.False(t, seen[key], "duplicate related term %q", term)
		seen[key] = true
	}
	assert.Equal(t, "양말 세트", related[0])
}

func TestGenerateRelated_FallbackExpansions(t *testing.T) {
	i := NewIntegration(IntegrationDependencies{})

	related := i.GenerateRelated(context.Background(), "수면양말 기모", "포근한 수면양말")

	require.NotEmpty(t, related)
	assert.LessOrEqual(t, len(related), 20)
	assert.Equal(t, "수면양말 세트", related[0])
	for _, term := range related {
		assert.NotContains(t, term, ",")
	}
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "스텐  밀폐용기 (Premium!) 2개", want: "스텐 밀폐용기 2개"},
		{in: "abc-def", want: ""},
		{in: "  양말 \t 세트  ", want: "양말 세트"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeText(tt.in))
	}
}

func TestTrimToWords(t *testing.T) {
	assert.Equal(t, "양말 세트", trimToWords("양말 세트 보관함 정리", 6))
	assert.Equal(t, "양말", trimToWords("양말", 10))
	// single oversized word survives whole
	assert.Equal(t, "아주아주아주긴단어", trimToWords("아주아주아주긴단어", 3))
}
