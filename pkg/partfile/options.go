package partfile

// ProgressFunc is an optional side channel invoked after each part (or,
// during merge, each appended part) has been fully processed. It is called
// from the operation's goroutine; implementations should be fast.
type ProgressFunc func(index int, size int64)

// Options configures split, merge, and self-check operations.
type Options struct {
	Progress ProgressFunc
}

// Option is a functional option for configuring partfile operations.
type Option func(*Options)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		o.Progress = fn
	}
}

func applyOptions(options []Option) Options {
	var opts Options
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}
