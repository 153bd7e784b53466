package exif

import (
	"bytes"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	dsexif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/bstardust/geophoto/internal/geo"
	"github.com/bstardust/geophoto/pkg/common"
)

const jpegQuality = 95

// SetLocation returns a new image buffer with the GPS tags set to coord,
// along with the content type of the result. JPEG input keeps its pixel
// data and every non-GPS metadata segment byte for byte; other formats
// are converted to JPEG before tagging, so the result is always
// image/jpeg. The input buffer is never mutated.
func SetLocation(data []byte, contentType string, coord geo.Coordinate) ([]byte, string, error) {
	if err := coord.Validate(); err != nil {
		return nil, "", err
	}

	if contentType != "image/jpeg" {
		converted, err := convertToJPEG(data, contentType)
		if err != nil {
			return nil, "", err
		}
		data = converted
	}

	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseBytes(data)
	if err != nil {
		return nil, "", common.NewDecodeError("cannot parse JPEG structure: %v", err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// Image has no EXIF block yet; start an empty one.
		im, mapErr := exifcommon.NewIfdMappingWithStandard()
		if mapErr != nil {
			return nil, "", common.NewEncodeError("cannot build IFD mapping: %v", mapErr)
		}
		rootIb = dsexif.NewIfdBuilder(im, dsexif.NewTagIndex(),
			exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder)
	}

	gpsIb, err := dsexif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return nil, "", common.NewEncodeError("cannot open GPS IFD: %v", err)
	}

	latDMS := geo.ToDMS(coord.Latitude, true)
	lonDMS := geo.ToDMS(coord.Longitude, false)

	gpsTags := []struct {
		name  string
		value interface{}
	}{
		{"GPSVersionID", []byte{2, 3, 0, 0}},
		{"GPSLatitudeRef", latDMS.Ref},
		{"GPSLatitude", dmsRationals(latDMS)},
		{"GPSLongitudeRef", lonDMS.Ref},
		{"GPSLongitude", dmsRationals(lonDMS)},
	}
	for _, t := range gpsTags {
		if err := gpsIb.SetStandardWithName(t.name, t.value); err != nil {
			return nil, "", common.NewEncodeError("cannot set %s: %v", t.name, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, "", common.NewEncodeError("cannot attach updated EXIF block: %v", err)
	}

	out := new(bytes.Buffer)
	if err := sl.Write(out); err != nil {
		return nil, "", common.NewEncodeError("cannot serialize image: %v", err)
	}
	return out.Bytes(), "image/jpeg", nil
}

// convertToJPEG re-encodes a non-JPEG image as JPEG so it can carry an
// EXIF block.
func convertToJPEG(data []byte, contentType string) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, common.NewDecodeError("cannot decode %s image: %v", contentType, err)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, common.NewEncodeError("cannot convert image to JPEG: %v", err)
	}
	return buf.Bytes(), nil
}

func dmsRationals(d geo.DMS) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: d.Degrees, Denominator: 1},
		{Numerator: d.Minutes, Denominator: 1},
		{Numerator: d.SecondsNum, Denominator: d.SecondsDen},
	}
}
