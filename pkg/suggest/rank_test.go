package suggest

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTermString(t *testing.T) {
	tests := []struct {
		term Term
		want string
	}{
		{Term{"charizard", 100}, "100\tcharizard"},
		{Term{"charmander", 50}, "50\tcharmander"},
		{Term{"", 0}, "0\t"},
		{Term{"missingno", -1}, "-1\tmissingno"},
	}
	for _, tt := range tests {
		if got := tt.term.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.term, got, tt.want)
		}
	}
}

func TestRankByReverseWeight(t *testing.T) {
	idx := newPokedex(t, 10)
	terms, err := idx.SuggestionsFor("char")
	if err != nil {
		t.Fatal(err)
	}

	Rank(terms)

	var got []string
	for _, term := range terms {
		got = append(got, term.String())
	}
	want := []string{"100\tcharizard", "50\tcharmander", "25\tcharmeleon"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestRankIsStable(t *testing.T) {
	terms := []Term{{"arvind", 1210}, {"app", 3}, {"antarctica", 1210}, {"apple", 2}}
	Rank(terms)

	want := []Term{{"arvind", 1210}, {"antarctica", 1210}, {"app", 3}, {"apple", 2}}
	if diff := cmp.Diff(want, terms); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}

func TestTopK(t *testing.T) {
	terms := slices.Clone(pokedex)

	tests := []struct {
		name string
		k    int
		want []string
	}{
		{"top two", 2, []string{"charizard", "blastoise"}},
		{"more than available", 10, []string{"charizard", "blastoise", "bulbasaur", "charmander", "charmeleon", "squirtle"}},
		{"unlimited", 0, []string{"charizard", "blastoise", "bulbasaur", "charmander", "charmeleon", "squirtle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, term := range TopK(terms, tt.k) {
				got = append(got, term.Text)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TopK(%d) mismatch (-want +got):\n%s", tt.k, diff)
			}
		})
	}

	if diff := cmp.Diff(pokedex, terms); diff != "" {
		t.Errorf("TopK modified its input (-want +got):\n%s", diff)
	}
}

func TestCompareByText(t *testing.T) {
	terms := slices.Clone(pokedex)
	slices.SortFunc(terms, Compare)
	if terms[0].Text != "blastoise" || terms[len(terms)-1].Text != "squirtle" {
		t.Errorf("SortFunc(Compare) = %v", terms)
	}
}
