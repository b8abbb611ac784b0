package utils

import (
	"path/filepath"
	"testing"
)

func TestSiblingPath(t *testing.T) {
	tests := []struct {
		src, dir, ext, want string
	}{
		{filepath.Join("csv_files", "joan_01-01-2024.csv"), "pdf_files", ".pdf", filepath.Join("pdf_files", "joan_01-01-2024.pdf")},
		{"scv_01-01-2024.csv", "out", ".pdf", filepath.Join("out", "scv_01-01-2024.pdf")},
		{"a.csv.csv", "out", ".html", filepath.Join("out", "a.csv.html")},
		{"noext", "out", ".pdf", filepath.Join("out", "noext.pdf")},
	}
	for _, tt := range tests {
		if got := SiblingPath(tt.src, tt.dir, tt.ext); got != tt.want {
			t.Errorf("SiblingPath(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
