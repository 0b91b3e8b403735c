// Package input loads sensor reports.
//
// Two formats are understood. The text format has one report per line:
//
//	Sensor at x=2, y=18: closest beacon is at x=-2, y=15
//
// The YAML format lists the same pairs under a sensors key:
//
//	sensors:
//	  - sensor: {x: 2, y: 18}
//	    beacon: {x: -2, y: 15}
package input

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/b97tsk/beaconzone/zone"
)

// ErrSyntax is returned for a line that is not a sensor report.
var ErrSyntax = errors.New("input: malformed sensor report")

const _maxLineSize = 1024

var _reportRegexp = regexp.MustCompile(
	`^Sensor at x=(-?\d+), y=(-?\d+): closest beacon is at x=(-?\d+), y=(-?\d+)$`,
)

// Dataset is a parsed input file.
type Dataset struct {
	Sensors []zone.Sensor
	// Checksum is the CRC-32 (IEEE) of the raw file contents.
	Checksum uint32
}

// Load reads the named file. Files ending in .yaml or .yml are decoded as
// YAML, anything else as text reports.
func Load(name string) (*Dataset, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var sensors []zone.Sensor
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		sensors, err = ParseYAML(bytes.NewReader(data))
	default:
		sensors, err = Parse(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}

	return &Dataset{Sensors: sensors, Checksum: crc32.ChecksumIEEE(data)}, nil
}

// Parse reads text reports from r. Blank lines are skipped.
func Parse(r io.Reader) (sensors []zone.Sensor, err error) {
	s := bufio.NewScanner(r)
	s.Buffer(nil, _maxLineSize)
	lineno := 1
	for ; s.Scan(); lineno++ {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		sensor, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		sensors = append(sensors, sensor)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineno, err)
	}
	return sensors, nil
}

func parseLine(line string) (zone.Sensor, error) {
	m := _reportRegexp.FindStringSubmatch(line)
	if m == nil {
		return zone.Sensor{}, fmt.Errorf("%w: %q", ErrSyntax, line)
	}

	var v [4]int64
	for i := range v {
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return zone.Sensor{}, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		v[i] = n
	}

	return zone.Sensor{
		Position: zone.Point{X: v[0], Y: v[1]},
		Beacon:   zone.Point{X: v[2], Y: v[3]},
	}, nil
}

type _yamlPoint struct {
	X *int64 `yaml:"x"`
	Y *int64 `yaml:"y"`
}

type _yamlReport struct {
	Sensor *_yamlPoint `yaml:"sensor"`
	Beacon *_yamlPoint `yaml:"beacon"`
}

type _yamlDataset struct {
	Sensors []_yamlReport `yaml:"sensors"`
}

// ParseYAML decodes a YAML dataset from r. Every report must name both
// coordinates of both points.
func ParseYAML(r io.Reader) ([]zone.Sensor, error) {
	var doc _yamlDataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	sensors := make([]zone.Sensor, 0, len(doc.Sensors))
	for i, rep := range doc.Sensors {
		position, ok1 := rep.Sensor.point()
		beacon, ok2 := rep.Beacon.point()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("sensor %d: %w: missing coordinate", i, ErrSyntax)
		}
		sensors = append(sensors, zone.Sensor{Position: position, Beacon: beacon})
	}
	return sensors, nil
}

func (p *_yamlPoint) point() (zone.Point, bool) {
	if p == nil || p.X == nil || p.Y == nil {
		return zone.Point{}, false
	}
	return zone.Point{X: *p.X, Y: *p.Y}, true
}
