package metadata

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bstardust/geophoto/internal/exif"
	"github.com/bstardust/geophoto/internal/geo"
	"github.com/bstardust/geophoto/pkg/common"
	"github.com/bstardust/geophoto/pkg/models"
)

func encodeTestImage(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 20), B: 64, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	switch format {
	case "jpeg":
		require.NoError(t, jpeg.Encode(buf, img, nil))
	case "png":
		require.NoError(t, png.Encode(buf, img))
	default:
		t.Fatalf("unsupported test format %q", format)
	}
	return buf.Bytes()
}

func TestBuildWithoutEXIF(t *testing.T) {
	asset := models.NewAsset("plain.png", "image/png", encodeTestImage(t, "png"))

	view, err := Build(asset)
	require.NoError(t, err)

	assert.Nil(t, view.GPS)
	assert.False(t, view.Has(CategoryGPS))
	require.True(t, view.Has(CategoryImage))

	fields := map[string]string{}
	for _, f := range view.Get(CategoryImage) {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "24px", fields["Width"])
	assert.Equal(t, "12px", fields["Height"])
	assert.Equal(t, "PNG", fields["Format"])
	assert.NotEmpty(t, fields["FileSize"])
}

func TestBuildWithGPS(t *testing.T) {
	coord := geo.Coordinate{Latitude: 45.4642, Longitude: 9.19}
	tagged, contentType, err := exif.SetLocation(encodeTestImage(t, "jpeg"), "image/jpeg", coord)
	require.NoError(t, err)

	asset := models.NewAsset("milan.jpg", contentType, tagged)
	view, err := Build(asset)
	require.NoError(t, err)

	require.NotNil(t, view.GPS)
	assert.InDelta(t, coord.Latitude, view.GPS.Latitude, 1e-5)
	assert.InDelta(t, coord.Longitude, view.GPS.Longitude, 1e-5)

	require.True(t, view.Has(CategoryGPS))
	fields := map[string]string{}
	for _, f := range view.Get(CategoryGPS) {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "45.464200", fields["Latitude"])
	assert.Equal(t, "9.190000", fields["Longitude"])

	// Raw DMS rationals are folded into the decimal coordinate.
	assert.NotContains(t, fields, "GPSLatitude")
	assert.NotContains(t, fields, "GPSLatitudeRef")
}

func TestBuildRejectsGarbage(t *testing.T) {
	asset := models.NewAsset("junk.jpg", "image/jpeg", []byte("definitely not an image"))

	_, err := Build(asset)
	require.Error(t, err)
	var derr *common.DecodeError
	assert.ErrorAs(t, err, &derr)
}

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryCamera, categorize("Make"))
	assert.Equal(t, CategoryCamera, categorize("FocalLength"))
	assert.Equal(t, CategoryDateTime, categorize("DateTimeOriginal"))
	assert.Equal(t, CategoryGPS, categorize("GPSAltitude"))
	assert.Equal(t, CategoryImage, categorize("Orientation"))
	assert.Equal(t, CategoryOther, categorize("Software"))
}

func TestCategoryTitles(t *testing.T) {
	assert.Equal(t, "GPS", CategoryGPS.Title())
	assert.Equal(t, "Date/Time", CategoryDateTime.Title())
	assert.Equal(t, "Other", CategoryOther.Title())
}
