package nes

import (
	"image"

	"github.com/pkg/errors"
)

// Option configures a Console.
type Option func(c *Console) error

func (c *Console) setOptions(options ...Option) error {
	for i, option := range options {
		if err := option(c); err != nil {
			return errors.Wrapf(err, "failed to set option index %d", i)
		}
	}
	return nil
}

// WithTrace keeps a nestest style line of every executed instruction, logged at V(2).
func WithTrace(trace bool) Option {
	return func(c *Console) error {
		c.trace = trace
		return nil
	}
}

// WithHaltOnBreak makes BRK stop the console instead of jumping through the IRQ vector.
func WithHaltOnBreak(halt bool) Option {
	return func(c *Console) error {
		c.haltOnBreak = halt
		return nil
	}
}

// WithFrameHandler receives every rendered frame. The image is reused between frames.
func WithFrameHandler(handler func(frame *image.RGBA)) Option {
	return func(c *Console) error {
		if handler == nil {
			return configErrorf("frame handler is nil")
		}
		c.frameHandler = handler
		return nil
	}
}

// WithInputHandler is called once per frame before rendering, typically to poll the
// keyboard and call SetButtonMask.
func WithInputHandler(handler func()) Option {
	return func(c *Console) error {
		if handler == nil {
			return configErrorf("input handler is nil")
		}
		c.inputHandler = handler
		return nil
	}
}
