package geo

import (
	"fmt"

	"github.com/bstardust/geophoto/pkg/common"
)

// Coordinate is a latitude/longitude pair in signed decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate is within the WGS84 range.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return common.NewValidationError("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return common.NewValidationError("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// String renders the coordinate as copyable "lat, lon" text.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// MapLink returns a Google Maps URL for the coordinate.
func (c Coordinate) MapLink() string {
	return fmt.Sprintf("https://www.google.com/maps?q=%.6f,%.6f", c.Latitude, c.Longitude)
}

// secondsDenominator preserves fractional seconds as an EXIF rational.
// 1/10000 s of arc is ~3e-9 degrees, far below display precision.
const secondsDenominator = 10000

// DMS is one coordinate axis in the EXIF GPS representation: unsigned
// degrees/minutes/seconds rationals plus a hemisphere reference letter.
// N and E map to non-negative decimal degrees, S and W to negative.
type DMS struct {
	Degrees    uint32
	Minutes    uint32
	SecondsNum uint32
	SecondsDen uint32
	Ref        string
}

// ToDMS converts one signed decimal-degree value to its EXIF GPS form.
func ToDMS(decimal float64, isLatitude bool) DMS {
	abs := decimal
	if abs < 0 {
		abs = -abs
	}

	degrees := uint32(abs)
	minutesDecimal := (abs - float64(degrees)) * 60
	minutes := uint32(minutesDecimal)
	seconds := (minutesDecimal - float64(minutes)) * 60

	var ref string
	if isLatitude {
		ref = "N"
		if decimal < 0 {
			ref = "S"
		}
	} else {
		ref = "E"
		if decimal < 0 {
			ref = "W"
		}
	}

	return DMS{
		Degrees:    degrees,
		Minutes:    minutes,
		SecondsNum: uint32(seconds*secondsDenominator + 0.5),
		SecondsDen: secondsDenominator,
		Ref:        ref,
	}
}

// Decimal converts the EXIF GPS form back to signed decimal degrees.
func (d DMS) Decimal() (float64, error) {
	if d.SecondsDen == 0 {
		return 0, common.NewDecodeError("zero denominator in GPS seconds rational")
	}
	seconds := float64(d.SecondsNum) / float64(d.SecondsDen)
	decimal := float64(d.Degrees) + float64(d.Minutes)/60 + seconds/3600

	switch d.Ref {
	case "N", "E":
		return decimal, nil
	case "S", "W":
		return -decimal, nil
	}
	return 0, common.NewDecodeError("invalid GPS reference direction %q", d.Ref)
}
