package feeds

import (
	"strings"
	"testing"
)

func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty text",
			text: "",
			want: 0,
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: 0,
		},
		{
			name: "single word",
			text: "hello",
			want: 1,
		},
		{
			name: "short paragraph",
			text: "This is a short paragraph with just a few words in it.",
			want: 1,
		},
		{
			name: "238 words equals 1 minute",
			text: strings.Repeat("word ", 238),
			want: 1,
		},
		{
			name: "239 words equals 2 minutes",
			text: strings.Repeat("word ", 239),
			want: 2,
		},
		{
			name: "1000 words is about 5 minutes",
			text: strings.Repeat("word ", 1000),
			want: 5,
		},
		{
			name: "2000 words is about 9 minutes",
			text: strings.Repeat("word ", 2000),
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateReadingTime(tt.text)
			if got != tt.want {
				t.Errorf("CalculateReadingTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "empty", content: "", want: ""},
		{name: "plain text", content: "A short post about slugs.", want: "1 min read"},
		{name: "long plain text", content: strings.Repeat("word ", 1000), want: "5 min read"},
		{name: "html fragment", content: "<p>" + strings.Repeat("word ", 500) + "</p>", want: "3 min read"},
		{name: "markup only", content: "<div></div>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.content); got != tt.want {
				t.Errorf("EstimateReadTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainText_DropsMarkup(t *testing.T) {
	got := PlainText("<p>Hello <strong>world</strong> &amp; friends</p>")
	if strings.Contains(got, "<") {
		t.Errorf("PlainText() kept markup: %q", got)
	}
	for _, word := range []string{"Hello", "world", "friends"} {
		if !strings.Contains(got, word) {
			t.Errorf("PlainText() = %q, missing %q", got, word)
		}
	}
}
