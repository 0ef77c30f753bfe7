package text

import (
	"testing"

	"github.com/pdiddy/motel/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words",
			text: "the motel is cheap",
			want: []string{"the", "motel", "is", "cheap"},
		},
		{
			name: "punctuation splits",
			text: "cheap, but clean.",
			want: []string{"cheap", ",", "but", "clean", "."},
		},
		{
			name: "inner apostrophe stays",
			text: "don't stop",
			want: []string{"don't", "stop"},
		},
		{
			name: "inner hyphen stays",
			text: "best-effort sample",
			want: []string{"best-effort", "sample"},
		},
		{
			name: "numbers",
			text: "room 42 was $19",
			want: []string{"room", "42", "was", "$", "19"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "whitespace only",
			text: "  \t\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.text)
			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(tt.want), tokens)
			}
			for i, tok := range tokens {
				if tok.Text != tt.want[i] {
					t.Errorf("token %d: got %q, want %q", i, tok.Text, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizeOffsets(t *testing.T) {
	text := "room 42."
	tokens := Tokenize(text)

	runes := []rune(text)
	for i, tok := range tokens {
		got := string(runes[tok.Start:tok.End])
		if got != tok.Text {
			t.Errorf("token %d: offsets [%d,%d) select %q, want %q",
				i, tok.Start, tok.End, got, tok.Text)
		}
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Motel", "Xx"},
		{"MOTEL", "X"},
		{"motel", "x"},
		{"2026", "d"},
		{"Rm42", "Xxd"},
		{"$", "$"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Shape(tt.text); got != tt.want {
			t.Errorf("Shape(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestClass(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"motel", "word"},
		{"42", "number"},
		{",", "punct"},
		{"Rm42", "word"},
	}

	for _, tt := range tests {
		if got := Class(tt.text); got != tt.want {
			t.Errorf("Class(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTokenFeatures(t *testing.T) {
	feats := TokenFeatures(types.Token{Text: "Motel"})
	if feats[types.FeatureText] != "motel" {
		t.Errorf("text feature = %q, want %q", feats[types.FeatureText], "motel")
	}
	if feats[types.FeatureShape] != "Xx" {
		t.Errorf("shape feature = %q, want %q", feats[types.FeatureShape], "Xx")
	}
	if feats[types.FeatureClass] != "word" {
		t.Errorf("class feature = %q, want %q", feats[types.FeatureClass], "word")
	}
}
