package normalize

import (
	"strings"
	"testing"
)

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "  We are hiring   a Go developer. ",
			want:  "We are hiring a Go developer.",
		},
		{
			name:  "strips tags and keeps paragraph breaks",
			input: "<p>First paragraph.</p><p>Second paragraph.</p>",
			want:  "First paragraph.\nSecond paragraph.",
		},
		{
			name:  "removes scripts and images",
			input: `<p>Role</p><script>alert(1)</script><img src="x.png"/>`,
			want:  "Role",
		},
		{
			name:  "list items on separate lines",
			input: "<ul><li>Go</li><li>Postgres</li></ul>",
			want:  "Go\nPostgres",
		},
		{
			name:  "empty",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanDescription(tt.input); got != tt.want {
				t.Errorf("CleanDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanDescriptionNoScriptLeak(t *testing.T) {
	got := CleanDescription("<div>Apply now</div><style>body{}</style>")
	if strings.Contains(got, "body{}") {
		t.Errorf("style content leaked into %q", got)
	}
}
