package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"empty string", "", []Token{}},
		{"single word", "python", []Token{{"python", 0, 6}}},
		{"two words", "hello world", []Token{{"hello", 0, 5}, {"world", 6, 11}}},
		{"uppercase lowered", "Python SQL", []Token{{"python", 0, 6}, {"sql", 7, 10}}},
		{"punctuation is separator", "node.js, react!", []Token{{"node", 0, 4}, {"js", 5, 7}, {"react", 9, 14}}},
		{"digits kept", "python3 v2", []Token{{"python3", 0, 7}, {"v2", 8, 10}}},
		{"symbols dropped", "c++ c#", []Token{{"c", 0, 1}, {"c", 4, 5}}},
		{"leading and trailing spaces", "  go  ", []Token{{"go", 2, 4}}},
		{"only symbols", "+-/#!", []Token{}},
		{"unicode offsets are runes", "café dev", []Token{{"café", 0, 4}, {"dev", 5, 8}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTexts(t *testing.T) {
	tokens := Tokenize("Senior Go Developer")
	want := []string{"senior", "go", "developer"}
	if got := Texts(tokens); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}

	if got := Texts(nil); !reflect.DeepEqual(got, []string{}) {
		t.Errorf("Texts(nil) = %v, want empty slice", got)
	}
}
