package metadata

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dustin/go-humanize"

	"github.com/bstardust/geophoto/internal/exif"
	"github.com/bstardust/geophoto/internal/geo"
	"github.com/bstardust/geophoto/pkg/common"
	"github.com/bstardust/geophoto/pkg/models"
)

// Category is an enumerated tag-category key. Dispatch happens on these
// values, never on display text.
type Category string

const (
	CategoryGPS      Category = "gps"
	CategoryCamera   Category = "camera"
	CategoryImage    Category = "image"
	CategoryDateTime Category = "datetime"
	CategoryOther    Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGPS,
	CategoryCamera,
	CategoryImage,
	CategoryDateTime,
	CategoryOther,
}

// Title returns the human-readable heading for a category.
func (c Category) Title() string {
	switch c {
	case CategoryGPS:
		return "GPS"
	case CategoryCamera:
		return "Camera"
	case CategoryImage:
		return "Image"
	case CategoryDateTime:
		return "Date/Time"
	default:
		return "Other"
	}
}

// View is the read-only, display-ready metadata of one image.
type View struct {
	// GPS is nil when the image carries no location tags.
	GPS    *geo.Coordinate
	Fields map[Category][]exif.Field
}

// Has reports whether the view holds any fields for the category.
func (v *View) Has(c Category) bool {
	return len(v.Fields[c]) > 0
}

// Get returns the fields for a category.
func (v *View) Get(c Category) []exif.Field {
	return v.Fields[c]
}

var cameraTags = map[string]bool{
	"Make":              true,
	"Model":             true,
	"LensMake":          true,
	"LensModel":         true,
	"ISOSpeedRatings":   true,
	"FNumber":           true,
	"ApertureValue":     true,
	"ExposureTime":      true,
	"ShutterSpeedValue": true,
	"FocalLength":       true,
	"Flash":             true,
	"WhiteBalance":      true,
	"ExposureMode":      true,
}

var dateTimeTags = map[string]bool{
	"DateTime":          true,
	"DateTimeOriginal":  true,
	"DateTimeDigitized": true,
}

var imageTags = map[string]bool{
	"Orientation":     true,
	"PixelXDimension": true,
	"PixelYDimension": true,
	"XResolution":     true,
	"YResolution":     true,
	"ImageWidth":      true,
	"ImageLength":     true,
}

// rawCoordinateTags are shown as one decimal coordinate instead of raw
// DMS rationals.
var rawCoordinateTags = map[string]bool{
	"GPSLatitude":     true,
	"GPSLatitudeRef":  true,
	"GPSLongitude":    true,
	"GPSLongitudeRef": true,
}

// Build extracts and categorizes the metadata of an uploaded asset.
// It fails with a DecodeError when the buffer is not a recognized image.
func Build(asset *models.Asset) (*View, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(asset.Data))
	if err != nil {
		return nil, common.NewDecodeError("unrecognized image %q: %v", asset.FileName, err)
	}

	data := exif.Extract(asset.Data)

	view := &View{
		GPS:    data.GPS,
		Fields: make(map[Category][]exif.Field),
	}

	for _, f := range data.Fields {
		if rawCoordinateTags[f.Name] {
			continue
		}
		view.Fields[categorize(f.Name)] = append(view.Fields[categorize(f.Name)], f)
	}

	// Basic image facts are available even when there is no EXIF block.
	view.Fields[CategoryImage] = append(view.Fields[CategoryImage],
		exif.Field{Name: "Width", Value: fmt.Sprintf("%dpx", cfg.Width)},
		exif.Field{Name: "Height", Value: fmt.Sprintf("%dpx", cfg.Height)},
		exif.Field{Name: "Format", Value: strings.ToUpper(format)},
		exif.Field{Name: "FileSize", Value: humanize.Bytes(uint64(asset.Size))},
	)

	if view.GPS != nil {
		view.Fields[CategoryGPS] = append([]exif.Field{
			{Name: "Latitude", Value: fmt.Sprintf("%.6f", view.GPS.Latitude)},
			{Name: "Longitude", Value: fmt.Sprintf("%.6f", view.GPS.Longitude)},
		}, view.Fields[CategoryGPS]...)
	}

	for c := range view.Fields {
		sortFields(view.Fields[c])
	}

	return view, nil
}

func categorize(name string) Category {
	switch {
	case strings.HasPrefix(name, "GPS"):
		return CategoryGPS
	case cameraTags[name]:
		return CategoryCamera
	case dateTimeTags[name]:
		return CategoryDateTime
	case imageTags[name]:
		return CategoryImage
	default:
		return CategoryOther
	}
}

// sortFields keeps template output stable; goexif walks tags in map order.
func sortFields(fields []exif.Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})
}
