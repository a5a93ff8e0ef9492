package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "48.58600", Format(48.586))
	assert.Equal(t, "0.00000", Format(0))
	assert.Equal(t, "-2.39944", Format(-2.39944))
	assert.Equal(t, "180.00000", Format(180))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "48.58600", Normalize("48.586"))
	assert.Equal(t, "48.58600", Normalize("48.58600"))
	assert.Equal(t, "10.00000", Normalize("10"))
	assert.Equal(t, "0.00000", Normalize("not a number"))
	assert.Equal(t, "0.00000", Normalize(""))
}

func TestNormalize_Idempotent(t *testing.T) {
	once := Normalize("2.399443")
	assert.Equal(t, once, Normalize(once))
}

func TestParse(t *testing.T) {
	v, err := Parse("48.58600")
	require.NoError(t, err)
	assert.InDelta(t, 48.586, v, 1e-9)

	_, err = Parse("bogus")
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestValidLatitude(t *testing.T) {
	assert.True(t, ValidLatitude("48.86626"))
	assert.True(t, ValidLatitude("-90.00000"))
	assert.True(t, ValidLatitude("90.00000"))
	assert.False(t, ValidLatitude("90.00001"))
	assert.False(t, ValidLatitude("bogus"))
}

func TestValidLongitude(t *testing.T) {
	assert.True(t, ValidLongitude("2.39944"))
	assert.True(t, ValidLongitude("-180.00000"))
	assert.False(t, ValidLongitude("180.00001"))
	assert.False(t, ValidLongitude(""))
}

func TestPointFrom4326(t *testing.T) {
	p := PointFrom4326(0, 0)
	xy, ok := p.XY()
	require.True(t, ok)
	assert.InDelta(t, 0, xy.X, 1e-6)
	assert.InDelta(t, 0, xy.Y, 1e-6)

	// Paris should land well inside the mercator plane
	p = PointFrom4326(2.39944, 48.86626)
	xy, ok = p.XY()
	require.True(t, ok)
	assert.Greater(t, xy.X, 260000.0)
	assert.Greater(t, xy.Y, 6000000.0)
}
