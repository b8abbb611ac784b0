package utils

import (
	"path/filepath"
	"strings"
)

// SiblingPath places the base name of src in dir with its extension replaced by ext.
// Only the final extension is replaced, so "a.csv.csv" becomes "a.csv.pdf".
func SiblingPath(src, dir, ext string) string {
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+ext)
}
