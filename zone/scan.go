package zone

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/b97tsk/rangeset"
	"golang.org/x/sync/errgroup"
)

// FrequencyMultiplier scales the x-coordinate of a gap in its tuning
// frequency.
const FrequencyMultiplier = 4_000_000

// Frequency returns the tuning frequency of p.
func Frequency(p Point) int64 {
	return p.X*FrequencyMultiplier + p.Y
}

// CountExcluded returns how many cells on row cannot hold an undetected
// beacon. Cells occupied by known beacons are not counted.
func CountExcluded(sensors []Sensor, row int64) int64 {
	excluded := merge(Coverage(sensors, row), -1).rangeSet()
	for _, s := range sensors {
		if s.Beacon.Y == row {
			excluded.Delete(s.Beacon.X)
		}
	}
	return int64(excluded.Count())
}

// SearchFrequency locates the gap within [0, bound]x[0, bound] and returns
// its tuning frequency.
func SearchFrequency(ctx context.Context, sensors []Sensor, bound int64, opts ...Option) (int64, error) {
	p, err := FindGap(ctx, sensors, bound, opts...)
	if err != nil {
		return 0, err
	}
	return Frequency(p), nil
}

// FindGap returns the only cell within [0, bound]x[0, bound] not covered by
// any sensor. Rows are scanned in increasing order and the first row with
// an uncovered cell decides the result: a single cell is returned, more
// than one yields ErrAmbiguousGap. ErrNoGap means every row is covered.
func FindGap(ctx context.Context, sensors []Sensor, bound int64, opts ...Option) (Point, error) {
	if bound < 0 {
		return Point{}, ErrBound
	}
	o := newOptions(opts)
	if o.workers > 1 {
		return findGapParallel(ctx, sensors, bound, &o)
	}
	return findGap(ctx, sensors, bound, &o)
}

// rangeSet converts s to half-open ranges. Touching intervals are joined.
func (s IntervalSet) rangeSet() rangeset.RangeSet[int64] {
	var set rangeset.RangeSet[int64]
	for _, r := range s {
		set.AddRange(r.Low, r.High+1)
	}
	return set
}

type rowScanner struct {
	sensors []Sensor
	square  rangeset.RangeSet[int64]
	bound   int64
	buf     []Interval
}

func newRowScanner(sensors []Sensor, bound int64) *rowScanner {
	return &rowScanner{
		sensors: sensors,
		square:  rangeset.FromRange(0, bound+1),
		bound:   bound,
	}
}

// scan reports the uncovered cell on row y, if any.
func (rs *rowScanner) scan(y int64) (x int64, found bool, err error) {
	rs.buf = appendCoverage(rs.buf[:0], rs.sensors, y)
	covered := merge(rs.buf, rs.bound).rangeSet()
	if len(covered) == 1 && covered[0].Low == 0 && covered[0].High == rs.bound+1 {
		return 0, false, nil
	}

	uncovered := rs.square.Difference(covered)
	switch n := uncovered.Count(); n {
	case 0:
		return 0, false, nil
	case 1:
		return uncovered[0].Low, true, nil
	default:
		return 0, false, fmt.Errorf("%w: row %d has %d uncovered cells", ErrAmbiguousGap, y, n)
	}
}

func findGap(ctx context.Context, sensors []Sensor, bound int64, o *options) (Point, error) {
	rs := newRowScanner(sensors, bound)
	for y := int64(0); y <= bound; y++ {
		if y%o.chunkSize == 0 && y > 0 {
			if err := ctx.Err(); err != nil {
				return Point{}, err
			}
			o.report(o.chunkSize)
		}
		x, found, err := rs.scan(y)
		if err != nil || found {
			o.report(y%o.chunkSize + 1)
		}
		if err != nil {
			return Point{}, err
		}
		if found {
			return Point{x, y}, nil
		}
	}
	o.report(bound%o.chunkSize + 1)
	return Point{}, ErrNoGap
}

// findGapParallel hands out chunks of rows in increasing order. Workers
// stop at the lowest row with a finding so far, so every row below the
// final answer has been scanned and the result matches findGap.
func findGapParallel(ctx context.Context, sensors []Sensor, bound int64, o *options) (Point, error) {
	var (
		mu     sync.Mutex
		first  atomic.Int64
		result Point
		resErr error
	)
	first.Store(bound + 1)

	settle := func(p Point, err error) {
		mu.Lock()
		defer mu.Unlock()
		if p.Y < first.Load() {
			first.Store(p.Y)
			result, resErr = p, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for low := int64(0); low <= bound && low < first.Load() && gctx.Err() == nil; low += o.chunkSize {
		low := low
		high := min(low+o.chunkSize-1, bound)
		g.Go(func() error {
			rs := newRowScanner(sensors, bound)
			y := low
			for ; y <= high && y < first.Load(); y++ {
				if (y-low)%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				x, found, err := rs.scan(y)
				if err != nil || found {
					settle(Point{x, y}, err)
					y++
					break
				}
			}
			o.report(y - low)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Point{}, err
	}
	if err := ctx.Err(); err != nil {
		return Point{}, err
	}
	if first.Load() > bound {
		return Point{}, ErrNoGap
	}
	if resErr != nil {
		return Point{}, resErr
	}
	return result, nil
}
