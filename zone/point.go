// Package zone finds which cells of the plane sensors prove empty of beacons.
package zone

// Point is a cell on the integer plane.
type Point struct {
	X, Y int64
}

// Distance returns the Manhattan distance between p and q.
func (p Point) Distance(q Point) int64 {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Sensor pairs a sensor position with the closest beacon it detected.
// No other beacon lies within Radius of the sensor.
type Sensor struct {
	Position Point
	Beacon   Point
}

func (s Sensor) Radius() int64 {
	return s.Position.Distance(s.Beacon)
}

// Cover returns the x-range the sensor excludes on the given row.
// It reports false when the row lies outside the diamond or only touches
// its tip.
func (s Sensor) Cover(row int64) (Interval, bool) {
	reach := s.Radius() - abs(row-s.Position.Y)
	if reach <= 0 {
		return Interval{}, false
	}
	return Interval{s.Position.X - reach, s.Position.X + reach}, true
}

// Coverage collects the intervals every sensor contributes to row.
func Coverage(sensors []Sensor, row int64) []Interval {
	return appendCoverage(nil, sensors, row)
}

func appendCoverage(dst []Interval, sensors []Sensor, row int64) []Interval {
	for _, s := range sensors {
		if r, ok := s.Cover(row); ok {
			dst = append(dst, r)
		}
	}
	return dst
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
