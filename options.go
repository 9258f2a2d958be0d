package apetag

import "github.com/apetaglib/apetag/internal/ape"

// DefaultMaxAPESize is the default ceiling on a whole APE region
// (header+items+footer), as recommended by the APEv2 specification.
const DefaultMaxAPESize = ape.MaxTagSize

type config struct {
	maxAPESize uint32
}

func newConfig(opts []Option) config {
	cfg := config{maxAPESize: DefaultMaxAPESize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures an optional parameter of a tag operation.
type Option func(*config)

// WithMaxAPESize overrides the maximum allowed size, in bytes, of a
// newly-built APE region. Reading an existing tag is always checked
// against the fixed ape.MaxTagSize cap instead (see engine.go's readAPE),
// matching the original implementation's read path, which enforces one
// constant ceiling regardless of what the write path is configured to.
func WithMaxAPESize(n uint32) Option {
	return func(c *config) { c.maxAPESize = n }
}
