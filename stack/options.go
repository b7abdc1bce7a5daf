package stack

import (
	"fmt"

	"github.com/haesemeyer/pixelstack/errs"
	"github.com/haesemeyer/pixelstack/internal/options"
)

// Option configures an allocating stack constructor.
type Option = options.Option[*stackBase]

func applyOptions(b *stackBase, opts ...Option) error {
	return options.Apply(b, opts...)
}

// WithSliceOrder sets the slice order of a newly allocated stack. The
// default is TBeforeZ, matching plane-wise time-series acquisition.
func WithSliceOrder(order SliceOrder) Option {
	return options.New(func(b *stackBase) error {
		if order != ZBeforeT && order != TBeforeZ {
			return fmt.Errorf("%w: unknown slice order %d", errs.ErrInvalidArgument, order)
		}
		b.order = order

		return nil
	})
}
