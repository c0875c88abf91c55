package normalize

import "testing"

func TestCanonicalLink(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases host and path",
			input: "HTTPS://Example.com/Jobs/42",
			want:  "https://example.com/jobs/42",
		},
		{
			name:  "strips trailing slash",
			input: "https://example.com/jobs/42/",
			want:  "https://example.com/jobs/42",
		},
		{
			name:  "strips fragment",
			input: "https://example.com/jobs/42#apply",
			want:  "https://example.com/jobs/42",
		},
		{
			name:  "strips utm parameters",
			input: "https://example.com/jobs/42?utm_source=feed&utm_medium=rss",
			want:  "https://example.com/jobs/42",
		},
		{
			name:  "strips click trackers, keeps real params",
			input: "https://example.com/jobs?gclid=abc&fbclid=def&id=42",
			want:  "https://example.com/jobs?id=42",
		},
		{
			name:  "sorts query parameters",
			input: "https://example.com/jobs?b=2&a=1",
			want:  "https://example.com/jobs?a=1&b=2",
		},
		{
			name:  "trims whitespace",
			input: "  https://example.com/jobs/42  ",
			want:  "https://example.com/jobs/42",
		},
		{
			name:  "unparsable input falls back to lowercase trim",
			input: "Not A URL/",
			want:  "not a url",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalLink(tt.input); got != tt.want {
				t.Errorf("CanonicalLink(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCanonicalLinkConvergence(t *testing.T) {
	variants := []string{
		"https://example.com/jobs/42",
		"https://EXAMPLE.com/jobs/42/",
		"https://example.com/jobs/42?utm_campaign=x#top",
	}
	want := CanonicalLink(variants[0])
	for _, v := range variants[1:] {
		if got := CanonicalLink(v); got != want {
			t.Errorf("CanonicalLink(%q) = %q, want %q", v, got, want)
		}
	}
}
