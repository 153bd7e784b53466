package geo

import (
	"testing"

	"github.com/bstardust/geophoto/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name    string
		coord   Coordinate
		wantErr bool
	}{
		{"valid", Coordinate{45.4642, 9.19}, false},
		{"zero is a real location", Coordinate{0, 0}, false},
		{"extremes", Coordinate{-90, 180}, false},
		{"latitude too high", Coordinate{91, 0}, true},
		{"latitude too low", Coordinate{-90.0001, 0}, true},
		{"longitude too low", Coordinate{0, -181}, true},
		{"longitude too high", Coordinate{0, 180.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var verr *common.ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDMSRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		decimal    float64
		isLatitude bool
		wantRef    string
	}{
		{"milan latitude", 45.4642, true, "N"},
		{"milan longitude", 9.19, false, "E"},
		{"paris latitude", 48.8566, true, "N"},
		{"southern hemisphere", -33.8688, true, "S"},
		{"western hemisphere", -122.4194, false, "W"},
		{"equator", 0, true, "N"},
		{"prime meridian", 0, false, "E"},
		{"latitude limit", 90, true, "N"},
		{"longitude limit", -180, false, "W"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dms := ToDMS(tt.decimal, tt.isLatitude)
			assert.Equal(t, tt.wantRef, dms.Ref)

			got, err := dms.Decimal()
			require.NoError(t, err)
			assert.InDelta(t, tt.decimal, got, 1e-5)
		})
	}
}

func TestDMSDecimalRejectsBadInput(t *testing.T) {
	_, err := DMS{Degrees: 10, SecondsDen: 0, Ref: "N"}.Decimal()
	assert.Error(t, err)

	_, err = DMS{Degrees: 10, SecondsDen: 1, Ref: "Q"}.Decimal()
	assert.Error(t, err)
}
