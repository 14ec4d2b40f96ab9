package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{}},
		{"   ...  ", []string{}},
		{"ESG risk", []string{"ESG", "risk"}},
		{"climate-related, risk!", []string{"climate", "related", "risk"}},
		{"SDG_7 and 2030", []string{"SDG_7", "and", "2030"}},
		{"énergie  renouvelable", []string{"énergie", "renouvelable"}},
		{"ends with word", []string{"ends", "with", "word"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := terms(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("terms(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	text := "né ESG"
	tokens := Tokenize(text)
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}

	for i, tok := range tokens {
		if tok.Position != i {
			t.Errorf("expected position %d, got %d", i, tok.Position)
		}
		if text[tok.Start:tok.End] != tok.Term {
			t.Errorf("offsets [%d:%d] do not cover %q", tok.Start, tok.End, tok.Term)
		}
	}
}
