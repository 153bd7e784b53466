package exif

import (
	"bytes"
	"fmt"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/bstardust/geophoto/internal/geo"
)

func init() {
	// Register manufacturer-specific note parsers so vendor fields decode correctly.
	goexif.RegisterParsers(mknote.All...)
}

// Field is one decoded EXIF tag rendered as a display string.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Data is the metadata decoded from one image buffer.
type Data struct {
	// GPS is nil when the image carries no usable location tags,
	// which is distinct from a location of (0,0).
	GPS    *geo.Coordinate
	Fields []Field
}

// Extract decodes the EXIF block of an image buffer. Images without an
// EXIF block (or in formats that cannot carry one) yield empty Data
// rather than an error. The input buffer is never mutated.
func Extract(data []byte) *Data {
	out := &Data{}

	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		// No EXIF block, or one too damaged to read. Absence of
		// metadata is not an error for the caller.
		return out
	}

	if lat, lon, err := x.LatLong(); err == nil {
		coord := geo.Coordinate{Latitude: lat, Longitude: lon}
		if coord.Validate() == nil {
			out.GPS = &coord
		}
	}

	collector := &fieldCollector{}
	if err := x.Walk(collector); err == nil {
		out.Fields = collector.fields
	}

	return out
}

type fieldCollector struct {
	fields []Field
}

func (c *fieldCollector) Walk(name goexif.FieldName, tag *tiff.Tag) error {
	c.fields = append(c.fields, Field{
		Name:  string(name),
		Value: formatTag(string(name), tag),
	})
	return nil
}

var flashModes = map[int64]string{
	0: "No Flash",
	1: "Fired",
	5: "Fired, No Return",
	7: "Fired, Return",
}

var whiteBalanceModes = map[int64]string{
	0: "Auto",
	1: "Manual",
}

var exposureModes = map[int64]string{
	0: "Auto",
	1: "Manual",
	2: "Auto Bracket",
}

var orientations = map[int64]string{
	1: "Normal",
	2: "Mirrored",
	3: "Rotated 180°",
	4: "Mirrored & Rotated 180°",
	5: "Mirrored & Rotated 270°",
	6: "Rotated 90°",
	7: "Mirrored & Rotated 90°",
	8: "Rotated 270°",
}

// formatTag renders a tag value the way the results page displays it.
func formatTag(name string, tag *tiff.Tag) string {
	switch name {
	case "FNumber", "ApertureValue":
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			return fmt.Sprintf("f/%.1f", float64(num)/float64(den))
		}
	case "ExposureTime", "ShutterSpeedValue":
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			if num == 1 {
				return fmt.Sprintf("1/%ds", den)
			}
			return fmt.Sprintf("%d/%ds", num, den)
		}
	case "FocalLength":
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			return fmt.Sprintf("%.1fmm", float64(num)/float64(den))
		}
	case "Flash":
		if v, err := tag.Int64(0); err == nil {
			if mode, ok := flashModes[v]; ok {
				return mode
			}
			return fmt.Sprintf("Mode %d", v)
		}
	case "WhiteBalance":
		if v, err := tag.Int64(0); err == nil {
			if mode, ok := whiteBalanceModes[v]; ok {
				return mode
			}
		}
	case "ExposureMode":
		if v, err := tag.Int64(0); err == nil {
			if mode, ok := exposureModes[v]; ok {
				return mode
			}
		}
	case "Orientation":
		if v, err := tag.Int64(0); err == nil {
			if o, ok := orientations[v]; ok {
				return o
			}
		}
	case "GPSAltitude":
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			return fmt.Sprintf("%.1fm", float64(num)/float64(den))
		}
	case "GPSSpeed":
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			return fmt.Sprintf("%.1f", float64(num)/float64(den))
		}
	}

	if s, err := tag.StringVal(); err == nil {
		return strings.TrimSpace(s)
	}
	return tag.String()
}
