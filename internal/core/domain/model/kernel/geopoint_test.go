package kernel_test

import (
	"math"
	"testing"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name      string
		lat, lng  float64
		wantErr   bool
		errSubstr []string
	}{
		{name: "hanoi centre", lat: 21.0285, lng: 105.8542},
		{name: "south west corner of the world", lat: -90, lng: -180},
		{name: "north east corner of the world", lat: 90, lng: 180},
		{name: "latitude too high", lat: 90.0001, lng: 0, wantErr: true, errSubstr: []string{"latitude"}},
		{name: "longitude too low", lat: 0, lng: -180.5, wantErr: true, errSubstr: []string{"longitude"}},
		{name: "both invalid", lat: 100, lng: 200, wantErr: true, errSubstr: []string{"latitude", "longitude"}},
		{name: "NaN latitude", lat: math.NaN(), lng: 0, wantErr: true, errSubstr: []string{"latitude"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lng)

			if tt.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				for _, s := range tt.errSubstr {
					assert.Contains(t, err.Error(), s)
				}
				return
			}
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.InDelta(t, tt.lat, p.Latitude(), 0)
			assert.InDelta(t, tt.lng, p.Longitude(), 0)
		})
	}
}

func TestGeoPoint_Optionals(t *testing.T) {
	p, err := kernel.NewGeoPoint(21.0285, 105.8542)
	require.NoError(t, err)

	t.Run("accuracy is absent by default", func(t *testing.T) {
		_, ok := p.Accuracy()
		assert.False(t, ok)
	})

	t.Run("accuracy is attached to a copy", func(t *testing.T) {
		withAcc, err := p.WithAccuracy(12.5)

		require.NoError(t, err)
		acc, ok := withAcc.Accuracy()
		assert.True(t, ok)
		assert.InDelta(t, 12.5, acc, 0)
		_, ok = p.Accuracy()
		assert.False(t, ok)
	})

	t.Run("negative accuracy is rejected", func(t *testing.T) {
		_, err := p.WithAccuracy(-1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("address is trimmed and does not affect equality", func(t *testing.T) {
		named := p.WithAddress("  Hoan Kiem Lake  ")

		assert.Equal(t, "Hoan Kiem Lake", named.Address())
		assert.True(t, named.IsEqual(p))
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	var zero kernel.GeoPoint

	require.ErrorIs(t, zero.Validate(), kernel.ErrGeoPointIsNotConstructed)

	valid, _ := kernel.NewGeoPoint(0, 0)
	_, err := zero.DistanceTo(valid)
	require.Error(t, err)
}

func TestGeoPoint_DistanceTo(t *testing.T) {
	hoanKiem, _ := kernel.NewGeoPoint(21.0285, 105.8542)
	baDinh, _ := kernel.NewGeoPoint(21.0368, 105.8342)
	noiBai, _ := kernel.NewGeoPoint(21.2187, 105.8042)

	t.Run("short intra-city distance", func(t *testing.T) {
		d, err := hoanKiem.DistanceTo(baDinh)

		require.NoError(t, err)
		assert.InDelta(t, 2.26, d, 0.05)
	})

	t.Run("airport distance", func(t *testing.T) {
		d, err := hoanKiem.DistanceTo(noiBai)

		require.NoError(t, err)
		assert.InDelta(t, 21.7, d, 0.3)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(0, 0)
		b, _ := kernel.NewGeoPoint(1, 0)

		d, err := a.DistanceTo(b)

		require.NoError(t, err)
		assert.InDelta(t, kernel.EarthRadiusKm*math.Pi/180, d, 1e-9)
	})
}

func TestGeoPoint_DistanceProperties(t *testing.T) {
	points := make([]kernel.GeoPoint, 0)
	for _, c := range [][2]float64{
		{21.0285, 105.8542}, {21.0368, 105.8342}, {20.9, 105.7}, {-33.86, 151.21}, {51.5, -0.12}, {0, 179.9},
	} {
		p, err := kernel.NewGeoPoint(c[0], c[1])
		require.NoError(t, err)
		points = append(points, p)
	}

	t.Run("symmetry", func(t *testing.T) {
		for _, a := range points {
			for _, b := range points {
				ab, _ := a.DistanceTo(b)
				ba, _ := b.DistanceTo(a)
				assert.Equal(t, ab, ba, "distance(%s,%s) must equal distance(%s,%s)", a, b, b, a)
			}
		}
	})

	t.Run("identity", func(t *testing.T) {
		for _, a := range points {
			d, err := a.DistanceTo(a)
			require.NoError(t, err)
			assert.Zero(t, d)
		}
	})

	t.Run("triangle inequality", func(t *testing.T) {
		for _, a := range points {
			for _, b := range points {
				for _, c := range points {
					ab, _ := a.DistanceTo(b)
					bc, _ := b.DistanceTo(c)
					ac, _ := a.DistanceTo(c)
					assert.LessOrEqual(t, ac, ab+bc+1e-9)
				}
			}
		}
	})
}
