package nes

// Reference:
//   http://hp.vector.co.jp/authors/VA042397/nes/joypad.html (In Japanese)
//   https://www.nesdev.org/wiki/Controller_reading
//   https://www.nesdev.org/wiki/Standard_controller

type button int

// Controller bit assignments, in the order they are shifted out.
// bit    7     6    5  4    3     2      1 0
// button Right Left Down Up Start Select B A
const (
	ButtonA button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type Controller struct {
	buttons [8]bool
	index   byte
	strobe  byte
}

func NewController() *Controller {
	return &Controller{}
}

// SetMask replaces the pressed state of all eight buttons, bit 0 is A and bit 7 is Right.
func (c *Controller) SetMask(mask byte) {
	for i := range c.buttons {
		c.buttons[i] = mask&(1<<i) != 0
	}
}

// read shifts out the next button. After all eight have been read it keeps returning 1
// like an official controller.
func (c *Controller) read() byte {
	if c.index > 7 {
		return 1
	}
	var ret byte
	if c.buttons[c.index] {
		ret = 1
	}
	if c.strobe&1 == 0 {
		c.index++
	}
	return ret
}

// write writes strobe.
// https://bugzmanov.github.io/nes_ebook/chapter_7.html
// - strobe bit on - controller reports only status of the button A on every read
// - strobe bit off - controller cycles through all buttons
func (c *Controller) write(data byte) {
	c.strobe = data
	if c.strobe&1 == 1 {
		c.index = 0
	}
}
