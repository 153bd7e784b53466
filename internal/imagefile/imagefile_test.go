package imagefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectContentType("photo.JPG"))
	assert.Equal(t, "image/jpeg", DetectContentType("photo.jpeg"))
	assert.Equal(t, "image/tiff", DetectContentType("scan.tif"))
	assert.Equal(t, "image/webp", DetectContentType("pic.webp"))
	assert.Equal(t, "application/octet-stream", DetectContentType("noextension"))
}

func TestIsAllowed(t *testing.T) {
	assert.True(t, IsAllowed("image/jpeg"))
	assert.True(t, IsAllowed("IMAGE/PNG"))
	assert.False(t, IsAllowed("video/mp4"))
	assert.False(t, IsAllowed("application/pdf"))
}

func TestIsAllowedFile(t *testing.T) {
	assert.True(t, IsAllowedFile("holiday.png"))
	assert.True(t, IsAllowedFile("HOLIDAY.BMP"))
	assert.False(t, IsAllowedFile("notes.txt"))
	assert.False(t, IsAllowedFile("archive.zip"))
}
