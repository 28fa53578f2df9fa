package uploads

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"photo.jpg", "photo.jpg"},
		{"my photo.jpg", "my_photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"weird☃name.png", "weird___name.png"},
		{"", "image"},
		{"UPPER-case_ok.PNG", "UPPER-case_ok.PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_LongNameKeepsExtension(t *testing.T) {
	long := strings.Repeat("a", 200) + ".jpeg"
	got := SanitizeFilename(long)
	if len(got) > 100 {
		t.Errorf("sanitized name too long: %d chars", len(got))
	}
	if !strings.HasSuffix(got, ".jpeg") {
		t.Errorf("extension lost: %q", got)
	}
}
