package constants

import (
	"path/filepath"
	"strings"
)

// Format is the coarse source type of a receipt file.
type Format string

const (
	PDF   Format = "PDF"
	IMAGE Format = "IMAGE"
)

// imageExtensions holds every image extension the OCR stage accepts.
// Tesseract is format-agnostic once the preprocessor has decoded the
// file, so this list mirrors what the image decoder can open.
var imageExtensions = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {},
	"tif": {}, "tiff": {}, "webp": {}, "heic": {}, "heif": {},
}

// AllowedExtensions holds the default allowed file extensions for batch discovery.
var AllowedExtensions = func() map[string]struct{} {
	m := map[string]struct{}{"pdf": {}}
	for k := range imageExtensions {
		m[k] = struct{}{}
	}
	return m
}()

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a Format, or "" if unsupported.
func MapExtToFormat(ext string) Format {
	ext = NormalizeExt(ext)
	if ext == "pdf" {
		return PDF
	}
	if _, ok := imageExtensions[ext]; ok {
		return IMAGE
	}
	return ""
}

// IsHEICExt reports whether the extension needs HEIC conversion before OCR.
func IsHEICExt(ext string) bool {
	ext = NormalizeExt(ext)
	return ext == "heic" || ext == "heif"
}

// IsSupportedFile is the format gate run before any text is requested.
func IsSupportedFile(path string) bool {
	return MapExtToFormat(filepath.Ext(path)) != ""
}
