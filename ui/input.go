package ui

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/jyane/famicore/nes"
)

// keymap lists the keys of each controller port, indexed by button.
// Port 0: WASD for directions, J/H for A/B, G/F for Start/Select.
// Port 1: arrows for directions, Period/Comma for A/B, RightShift/Slash for Start/Select.
var keymap = [2][8]glfw.Key{
	{
		nes.ButtonA:      glfw.KeyJ,
		nes.ButtonB:      glfw.KeyH,
		nes.ButtonSelect: glfw.KeyF,
		nes.ButtonStart:  glfw.KeyG,
		nes.ButtonUp:     glfw.KeyW,
		nes.ButtonDown:   glfw.KeyS,
		nes.ButtonLeft:   glfw.KeyA,
		nes.ButtonRight:  glfw.KeyD,
	},
	{
		nes.ButtonA:      glfw.KeyPeriod,
		nes.ButtonB:      glfw.KeyComma,
		nes.ButtonSelect: glfw.KeySlash,
		nes.ButtonStart:  glfw.KeyRightShift,
		nes.ButtonUp:     glfw.KeyUp,
		nes.ButtonDown:   glfw.KeyDown,
		nes.ButtonLeft:   glfw.KeyLeft,
		nes.ButtonRight:  glfw.KeyRight,
	},
}

// getKeys gets the state of keyboard for a controller port as a button mask.
func getKeys(window *glfw.Window, port int) byte {
	var mask byte
	for i, key := range keymap[port] {
		if window.GetKey(key) == glfw.Press {
			mask |= 1 << i
		}
	}
	return mask
}
