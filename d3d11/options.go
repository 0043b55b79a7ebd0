package d3d11

import "github.com/gogpu/dxbind/com"

// Option configures how wrappers reach native code.
//
// Example:
//
//	// Default: the loaded Direct3D 11 runtime and the process-wide table.
//	dev, err := d3d11.WrapDevice(addr)
//
//	// Injected boundary, e.g. an in-memory fake in tests.
//	dev, err := d3d11.WrapDevice(addr, d3d11.WithABI(fake), d3d11.WithTable(com.NewTable(fake)))
type Option func(*options)

type options struct {
	abi   ABI
	table *com.Table
}

func defaultOptions() options {
	return options{}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
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
