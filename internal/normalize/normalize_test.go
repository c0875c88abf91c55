package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/itjobhub/importer/internal/model"
)

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2024-06-10T09:30:00Z",
			want:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2024-06-10T11:30:00+02:00",
			want:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "iso without zone",
			input: "2024-06-10T09:30:00",
			want:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: "2024-06-10 09:30:00",
			want:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rss pubdate",
			input: "Mon, 10 Jun 2024 09:30:00 +0000",
			want:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "plain date",
			input: "2024-06-10",
			want:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "day month year",
			input: "10 Jun 2024",
			want:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "padded with whitespace",
			input: "  2024-06-10  ",
			want:  time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if !ok {
				t.Fatalf("ParseDate(%q) not parsed", tt.input)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "yesterday", "10/06/24 9am", "1718011800"} {
		if _, ok := ParseDate(input); ok {
			t.Errorf("ParseDate(%q) parsed, want rejection", input)
		}
	}
}

func TestPostingRequiredFields(t *testing.T) {
	valid := model.RawPosting{
		Title:       "Backend Developer",
		Link:        "https://example.com/jobs/1",
		PublishedAt: "2024-06-10",
		Language:    "en",
	}

	tests := []struct {
		name      string
		mutate    func(*model.RawPosting)
		wantField string
	}{
		{"missing link", func(r *model.RawPosting) { r.Link = "  " }, "link"},
		{"missing title", func(r *model.RawPosting) { r.Title = "" }, "title"},
		{"bad date", func(r *model.RawPosting) { r.PublishedAt = "soon" }, "published_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := valid
			tt.mutate(&raw)
			_, err := Posting(raw)

			var vErr *model.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Posting() error = %v, want ValidationError", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestPostingBuildsJob(t *testing.T) {
	raw := model.RawPosting{
		Title:       "  Senior Go   Developer ",
		Description: "<p>Build services</p>",
		Link:        "HTTPS://Example.com/jobs/42?utm_source=feed",
		CompanyName: " Acme  Corp ",
		LocationRaw: "Milan, Italy",
		Source:      "Adzuna",
		Language:    "en",
		PublishedAt: "2024-06-10T09:30:00Z",
		SalaryMin:   50000,
		SalaryMax:   70000,
	}

	job, err := Posting(raw)
	if err != nil {
		t.Fatalf("Posting() error = %v", err)
	}

	if job.Title != "Senior Go Developer" {
		t.Errorf("Title = %q", job.Title)
	}
	if job.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q", job.CompanyName)
	}
	if job.Link != "https://example.com/jobs/42" {
		t.Errorf("Link = %q", job.Link)
	}
	if job.Enrichment != model.EnrichmentPending {
		t.Errorf("Enrichment = %q, want pending", job.Enrichment)
	}
	if job.Fingerprint == "" {
		t.Error("Fingerprint not set")
	}
	if !job.PublishedAt.Equal(time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("PublishedAt = %v", job.PublishedAt)
	}
}

func TestFingerprintInsensitiveToCaseAndSpacing(t *testing.T) {
	day := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	laterSameDay := time.Date(2024, 6, 10, 22, 15, 0, 0, time.UTC)

	a := Fingerprint("Senior Go Developer", "Acme Corp", day, "en")
	b := Fingerprint("  senior   go developer ", "ACME CORP", laterSameDay, "EN")
	if a != b {
		t.Errorf("fingerprints differ for equivalent postings:\n%s\n%s", a, b)
	}

	otherDay := Fingerprint("Senior Go Developer", "Acme Corp", day.AddDate(0, 0, 1), "en")
	if a == otherDay {
		t.Error("fingerprint should differ across published days")
	}

	otherLang := Fingerprint("Senior Go Developer", "Acme Corp", day, "it")
	if a == otherLang {
		t.Error("fingerprint should differ across languages")
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText(" a b \n\t c ")
	if got != "a b c" {
		t.Errorf("CleanText = %q, want %q", got, "a b c")
	}
}
