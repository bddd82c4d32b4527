package annotate

import (
	"errors"
	"testing"
)

func TestValidateTokens_KeepsCorrectOffsets(t *testing.T) {
	text := "Let x be"
	toks := []Token{
		{Text: "Let", Lemma: "let", POS: "VB", Start: 0, End: 3},
		{Text: "x", Lemma: "x", POS: "NN", Start: 4, End: 5},
		{Text: "be", Lemma: "be", POS: "VB", Start: 6, End: 8},
	}
	got, err := ValidateTokens(text, toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(got))
	}
	for i := range toks {
		if got[i] != toks[i] {
			t.Errorf("token %d: expected %+v, got %+v", i, toks[i], got[i])
		}
	}
}

func TestValidateTokens_RecoversMissingOffsets(t *testing.T) {
	text := "a b a"
	got, err := ValidateTokens(text, []Token{{Text: "a"}, {Text: "b"}, {Text: "a"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]int{{0, 1}, {2, 3}, {4, 5}}
	for i, w := range want {
		if got[i].Start != w[0] || got[i].End != w[1] {
			t.Errorf("token %d: expected [%d,%d), got [%d,%d)", i, w[0], w[1], got[i].Start, got[i].End)
		}
	}
}

func TestValidateTokens_FillsDefaults(t *testing.T) {
	got, err := ValidateTokens("Groups", []Token{{Text: "Groups", Start: 0, End: 6}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Lemma != "groups" {
		t.Errorf("expected lemma groups, got %q", got[0].Lemma)
	}
	if got[0].POS != "NN" {
		t.Errorf("expected default POS NN, got %q", got[0].POS)
	}
}

func TestValidateTokens_DropsBlankTokens(t *testing.T) {
	got, err := ValidateTokens("a b", []Token{{Text: "a"}, {Text: " "}, {Text: ""}, {Text: "b"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
}

func TestValidateTokens_WrongOffsetsAreRelocated(t *testing.T) {
	got, err := ValidateTokens("one two", []Token{{Text: "two", Start: 0, End: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Start != 4 || got[0].End != 7 {
		t.Errorf("expected [4,7), got [%d,%d)", got[0].Start, got[0].End)
	}
}

func TestValidateTokens_Misaligned(t *testing.T) {
	_, err := ValidateTokens("one two", []Token{{Text: "two"}, {Text: "one"}})
	if !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for out-of-order tokens, got %v", err)
	}

	_, err = ValidateTokens("one two", []Token{{Text: "three"}})
	if !errors.Is(err, ErrMisaligned) {
		t.Fatalf("expected ErrMisaligned for unknown token, got %v", err)
	}
}
