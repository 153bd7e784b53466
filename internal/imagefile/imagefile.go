package imagefile

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// MIME types for the image extensions the app accepts.
var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
	".webp": "image/webp",
}

// allowedContentTypes is the set of media types an upload may declare.
var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// DetectContentType determines the content type of a file based on its extension.
func DetectContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if mimeType, ok := imageMimeTypes[ext]; ok {
		return mimeType
	}

	// Fall back to the standard library
	if mimeType := mime.TypeByExtension(ext); mimeType != "" {
		return mimeType
	}

	return "application/octet-stream"
}

// SniffContentType determines the content type from the leading bytes of the buffer.
func SniffContentType(data []byte) string {
	return http.DetectContentType(data)
}

// IsAllowed checks whether a media type is one the app accepts.
func IsAllowed(contentType string) bool {
	return allowedContentTypes[strings.ToLower(contentType)]
}

// IsAllowedFile checks if a filename carries an accepted image extension.
func IsAllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := imageMimeTypes[ext]
	return ok
}
