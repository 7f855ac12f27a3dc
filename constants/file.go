package constants

import "strings"

// Source formats stored in the format field of import_jobs.
const (
	FormatImage = "IMAGE"
	FormatWords = "WORDS"
	FormatText  = "TXT"
)

// AllowedExtensions holds the default allowed extensions for schedule photos.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsImageExt reports whether a normalized extension is an importable image.
func IsImageExt(ext string) bool {
	_, ok := AllowedExtensions[ext]
	return ok
}

// IsImportableExt reports whether a normalized extension can be imported:
// schedule photos, plus plain-text OCR dumps that skip the OCR stage.
func IsImportableExt(ext string) bool {
	return IsImageExt(ext) || ext == "txt"
}
