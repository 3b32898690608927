package analytics

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pemistahl/lingua-go"
)

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "< 1 min read"},
		{1, "1 min read"},
		{150, "1 min read"},
		{199, "1 min read"},
		{200, "1 min read"},
		{201, "2 min read"},
		{1000, "5 min read"},
		{1001, "6 min read"},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %q, want %q", tt.words, got, tt.want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("  one two\nthree\tfour  "); got != 4 {
		t.Errorf("WordCount() = %d, want 4", got)
	}
	if got := WordCount(""); got != 0 {
		t.Errorf("WordCount(\"\") = %d, want 0", got)
	}
}

func TestKeywords(t *testing.T) {
	text := "Gophers love Go. The gopher writes Go code; gophers test code. Code, code!"
	got := Keywords(text, 2)
	want := []string{"code", "gophers"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
	if got := Keywords("the and of", 5); len(got) != 0 {
		t.Errorf("Keywords() of stopwords = %v, want none", got)
	}
	if !IsStopword("The") {
		t.Error("IsStopword(\"The\") = false")
	}
}

func TestLanguageDetector(t *testing.T) {
	d := NewLanguageDetector(lingua.English, lingua.German, lingua.French)

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "english", text: "The quick brown fox jumps over the lazy dog while the farmer watches from the porch.", want: "en"},
		{name: "german", text: "Der schnelle braune Fuchs springt über den faulen Hund, während der Bauer zuschaut.", want: "de"},
		{name: "too short", text: "hi", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := d.Detect(strings.Repeat(" ", 40)); got != "" {
		t.Errorf("Detect(blank) = %q, want empty", got)
	}
}
