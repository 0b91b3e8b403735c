package zone_test

import "github.com/b97tsk/beaconzone/zone"

func sensor(sx, sy, bx, by int64) zone.Sensor {
	return zone.Sensor{Position: zone.Point{X: sx, Y: sy}, Beacon: zone.Point{X: bx, Y: by}}
}

// sampleSensors has exactly one uncovered cell in [0,20]x[0,20], at (14,11).
var sampleSensors = []zone.Sensor{
	sensor(2, 18, -2, 15),
	sensor(9, 16, 10, 16),
	sensor(13, 2, 15, 3),
	sensor(12, 14, 10, 16),
	sensor(10, 20, 10, 16),
	sensor(14, 17, 10, 16),
	sensor(8, 7, 2, 10),
	sensor(2, 0, 2, 10),
	sensor(0, 11, 2, 10),
	sensor(20, 14, 25, 17),
	sensor(17, 20, 21, 22),
	sensor(16, 7, 15, 3),
	sensor(14, 3, 15, 3),
	sensor(20, 1, 15, 3),
}
