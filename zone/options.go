package zone

const _defaultChunkSize = 4096

type options struct {
	workers   int
	chunkSize int64
	progress  func(rows int64)
}

// Option configures FindGap.
type Option func(*options)

// WithWorkers scans rows on n goroutines. Values below 2 keep the scan
// sequential. The result is the same either way.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithChunkSize sets how many consecutive rows are handed out at once.
func WithChunkSize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithProgress registers fn to be called with the number of rows finished
// since the previous call. With more than one worker fn is called from
// several goroutines.
func WithProgress(fn func(rows int64)) Option {
	return func(o *options) { o.progress = fn }
}

func newOptions(opts []Option) options {
	o := options{workers: 1, chunkSize: _defaultChunkSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) report(rows int64) {
	if o.progress != nil && rows > 0 {
		o.progress(rows)
	}
}
