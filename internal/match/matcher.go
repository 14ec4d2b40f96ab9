// Package match compiles category rules into text matchers.
//
// A category fires when any of its literal keyword phrases occurs as a
// case-insensitive substring, when one of its whole-word terms appears as a
// run of word tokens, or when both anchors of a near pair appear within the
// pair's word window in either order.
package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/stratclass/internal/model"
)

// HitKind names the kind of rule that fired
type HitKind string

const (
	HitKeyword HitKind = "keyword" // Literal substring
	HitWord    HitKind = "word"    // Whole-word term
	HitNear    HitKind = "near"    // Near pair
)

// Hit describes the first rule that fired for a text
type Hit struct {
	Kind HitKind
	Rule string
}

func (h Hit) String() string {
	return string(h.Kind) + ":" + h.Rule
}

type nearRule struct {
	a, b string
	max  int
}

func (n nearRule) String() string {
	return fmt.Sprintf("%s~%s/%d", n.a, n.b, n.max)
}

// Matcher decides whether a text belongs to one category. It is immutable
// after Compile and safe for concurrent use.
type Matcher struct {
	ID   int
	Name string

	keywords []string
	literals *regexp.Regexp // nil when the category has no keywords
	words    [][]string
	near     []nearRule
}

// Compile builds the matcher for a category. nearDefault is the word window
// used by near pairs that do not set their own.
func Compile(cat model.Category, nearDefault int) (*Matcher, error) {
	m := &Matcher{
		ID:       cat.ID,
		Name:     cat.Name,
		keywords: cat.Keywords,
	}

	if len(cat.Keywords) > 0 {
		escaped := make([]string, len(cat.Keywords))
		for i, kw := range cat.Keywords {
			escaped[i] = regexp.QuoteMeta(kw)
		}
		m.literals = regexp.MustCompile(`(?i)(?:` + strings.Join(escaped, "|") + `)`)
	}

	for _, w := range cat.Words {
		seq := terms(w)
		if len(seq) == 0 {
			return nil, fmt.Errorf("category %d: word term %q has no word characters", cat.ID, w)
		}
		m.words = append(m.words, seq)
	}

	for _, np := range cat.Near {
		a, b := terms(np.TermA), terms(np.TermB)
		if len(a) != 1 || len(b) != 1 {
			return nil, fmt.Errorf("category %d: near terms must be single words, got %q and %q", cat.ID, np.TermA, np.TermB)
		}
		window := np.Window(nearDefault)
		if window < 0 {
			return nil, fmt.Errorf("category %d: negative near window %d", cat.ID, window)
		}
		m.near = append(m.near, nearRule{a: a[0], b: b[0], max: window})
	}

	return m, nil
}

// CompileAll compiles every category in order
func CompileAll(cats []model.Category, nearDefault int) ([]*Matcher, error) {
	matchers := make([]*Matcher, 0, len(cats))
	for _, cat := range cats {
		m, err := Compile(cat, nearDefault)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}
	return matchers, nil
}

// Match reports whether text belongs to the category
func (m *Matcher) Match(text string) bool {
	_, ok := m.Explain(text)
	return ok
}

// Explain reports whether text belongs to the category and which rule fired.
// Keywords are checked first, then whole-word terms, then near pairs.
func (m *Matcher) Explain(text string) (Hit, bool) {
	if text == "" {
		return Hit{}, false
	}

	if m.literals != nil {
		if found := m.literals.FindString(text); found != "" {
			return Hit{Kind: HitKeyword, Rule: m.keywordFor(found)}, true
		}
	}

	if len(m.words) == 0 && len(m.near) == 0 {
		return Hit{}, false
	}

	tokens := terms(text)

	for _, seq := range m.words {
		if containsRun(tokens, seq) {
			return Hit{Kind: HitWord, Rule: strings.Join(seq, " ")}, true
		}
	}

	for _, rule := range m.near {
		if nearMatch(tokens, rule.a, rule.b, rule.max) {
			return Hit{Kind: HitNear, Rule: rule.String()}, true
		}
	}

	return Hit{}, false
}

// keywordFor maps matched text back to the configured keyword
func (m *Matcher) keywordFor(found string) string {
	for _, kw := range m.keywords {
		if strings.EqualFold(kw, found) {
			return kw
		}
	}
	return found
}

// containsRun reports whether seq occurs as consecutive tokens
func containsRun(tokens, seq []string) bool {
	n := len(seq)
	for i := 0; i+n <= len(tokens); i++ {
		ok := true
		for j := 0; j < n; j++ {
			if !sameWord(tokens[i+j], seq[j]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// nearMatch reports whether a and b occur at distinct positions with at most
// window tokens between them. Comparing each anchor against the most recent
// occurrence of the other is sufficient since that is the closest one.
func nearMatch(tokens []string, a, b string, window int) bool {
	lastA, lastB := -1, -1

	for i, tok := range tokens {
		isA := sameWord(tok, a)
		isB := sameWord(tok, b)

		if isA && lastB >= 0 && i-lastB-1 <= window {
			return true
		}
		if isB && lastA >= 0 && i-lastA-1 <= window {
			return true
		}

		if isA {
			lastA = i
		}
		if isB {
			lastB = i
		}
	}

	return false
}
