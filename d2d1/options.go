package d2d1

import "github.com/gogpu/dxbind/com"

// Option configures how wrappers reach native code.
type Option func(*options)

type options struct {
	abi   ABI
	table *com.Table
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.abi == nil {
		o.abi = NativeABI()
	}
	if o.table == nil {
		o.table = com.Default()
	}
	return o
}

// WithABI routes native calls through abi.
func WithABI(abi ABI) Option {
	return func(o *options) {
		o.abi = abi
	}
}

// WithTable tracks proxies in t instead of com.Default().
func WithTable(t *com.Table) Option {
	return func(o *options) {
		o.table = t
	}
}
