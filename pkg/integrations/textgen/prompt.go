package textgen

import (
	"fmt"
	"strings"
)

type PromptKind string

const (
	PromptKindName    PromptKind = "name"
	PromptKindRelated PromptKind = "related"
)

// RuleSet is the data-driven shape of one generation instruction. Each field
// turns into one numbered rule in the rendered prompt, so tuning the prompt
// means editing configuration, not branching code.
type RuleSet struct {
	MinLength            int
	MaxLength            int
	MaxTerms             int
	ForbidDuplicateWords bool
	ForbidLatin          bool
	ForbidSymbols        bool
	ForbidBrandTokens    bool
	ForbidOptionTokens   bool
}

// PromptSpec tags a rule set with the call shape it instructs.
type PromptSpec struct {
	Kind  PromptKind
	Rules RuleSet
}

// PromptInput carries the per-call values interpolated into the instruction.
type PromptInput struct {
	CombinedText string
	CategoryPath string
	LeafTerm     string
	ProductName  string
}

func NameSpec() PromptSpec {
	return PromptSpec{
		Kind: PromptKindName,
		Rules: RuleSet{
			MinLength:            25,
			MaxLength:            35,
			ForbidDuplicateWords: true,
			ForbidLatin:          true,
			ForbidSymbols:        true,
			ForbidBrandTokens:    true,
			ForbidOptionTokens:   true,
		},
	}
}

func RelatedSpec() PromptSpec {
	return PromptSpec{
		Kind: PromptKindRelated,
		Rules: RuleSet{
			MaxTerms:             20,
			ForbidDuplicateWords: true,
			ForbidLatin:          true,
			ForbidSymbols:        true,
		},
	}
}

// Instruction renders the prompt for one call: a task line from the kind and
// inputs, followed by the numbered rules the rule set enables.
func (s PromptSpec) Instruction(in PromptInput) string {
	var b strings.Builder

	switch s.Kind {
	case PromptKindRelated:
		fmt.Fprintf(&b, "상품명 '%s'(검색어: %s)에 어울리는 연관 검색어를 관련성이 높은 순서로 쉼표로 구분하여 나열하세요.\n", in.ProductName, in.CombinedText)
	default:
		fmt.Fprintf(&b, "검색어 '%s'(카테고리: %s, 핵심어: %s)에 맞는 판매용 상품명을 한 개만 작성하세요.\n", in.CombinedText, in.CategoryPath, in.LeafTerm)
	}

	b.WriteString("규칙:\n")
	n := 0
	rule := func(format string, args ...any) {
		n++
		fmt.Fprintf(&b, "%d. ", n)
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	r := s.Rules
	if r.MinLength > 0 && r.MaxLength > 0 {
		rule("전체 길이는 공백 포함 %d~%d자", r.MinLength, r.MaxLength)
	}
	if r.MaxTerms > 0 {
		rule("최대 %d개까지만 나열", r.MaxTerms)
	}
	if r.ForbidDuplicateWords {
		rule("같은 단어를 두 번 사용하지 말 것")
	}
	if r.ForbidSymbols {
		rule("문장부호, 특수문자 사용 금지")
	}
	if r.ForbidLatin {
		rule("영문 알파벳 사용 금지")
	}
	if r.ForbidBrandTokens {
		rule("브랜드명, 상표명 사용 금지")
	}
	if r.ForbidOptionTokens {
		rule("사이즈, 색상, 수량 옵션 표기 금지")
	}

	return b.String()
}
