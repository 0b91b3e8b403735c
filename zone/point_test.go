package zone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b97tsk/beaconzone/zone"
)

func TestSensorRadius(t *testing.T) {
	s := sensor(8, 7, 2, 10)
	assert.Equal(t, int64(9), s.Radius())
	assert.Equal(t, int64(9), s.Position.Distance(zone.Point{X: 8, Y: -2}))
	assert.Equal(t, int64(10), s.Position.Distance(zone.Point{X: 8, Y: 17}))
}

func TestSensorCover(t *testing.T) {
	s := sensor(8, 7, 2, 10)

	r, ok := s.Cover(10)
	require.True(t, ok)
	assert.Equal(t, zone.Interval{Low: 2, High: 14}, r)

	r, ok = s.Cover(7)
	require.True(t, ok)
	assert.Equal(t, zone.Interval{Low: -1, High: 17}, r)

	// the tip of the diamond has zero reach
	_, ok = s.Cover(16)
	assert.False(t, ok)
	_, ok = s.Cover(-2)
	assert.False(t, ok)
	_, ok = s.Cover(100)
	assert.False(t, ok)
}

func TestSensorCoverSymmetry(t *testing.T) {
	for _, s := range sampleSensors {
		for v := int64(0); v <= s.Radius()+1; v++ {
			above, okAbove := s.Cover(s.Position.Y - v)
			below, okBelow := s.Cover(s.Position.Y + v)
			require.Equal(t, okAbove, okBelow, "sensor %v offset %d", s.Position, v)
			require.Equal(t, above, below, "sensor %v offset %d", s.Position, v)
		}
	}
}

func TestSensorCoverLargeCoordinates(t *testing.T) {
	s := sensor(3_999_999, -4_000_000, -4_000_000, 4_000_000)
	assert.Equal(t, int64(15_999_999), s.Radius())

	r, ok := s.Cover(4_000_000)
	require.True(t, ok)
	assert.Equal(t, zone.Interval{Low: -4_000_000, High: 11_999_998}, r)
}

func TestCoverage(t *testing.T) {
	sensors := []zone.Sensor{
		sensor(5, 0, 5, 6),
		sensor(100, 100, 101, 100),
		sensor(10, 3, 10, 4),
	}
	assert.Equal(t, []zone.Interval{{Low: 2, High: 8}, {Low: 9, High: 11}}, zone.Coverage(sensors, 3))
	assert.Empty(t, zone.Coverage(sensors, 50))
}
