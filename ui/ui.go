package ui

import (
	"image"
	"time"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/jyane/famicore/nes"
)

const (
	frameWidth  = 256
	frameHeight = 240
	frameRate   = 60
)

// Start is the main entrypoint. It opens a window, builds the console with the
// presentation and keyboard hooks added to options, and runs it until the window is
// closed. It must be called from the main thread.
func Start(buf []byte, width int, height int, options ...nes.Option) error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "initializing glfw")
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(width, height, "famicore", nil, nil)
	if err != nil {
		return errors.Wrap(err, "creating window")
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(0)
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "initializing OpenGL")
	}
	glog.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))
	s, err := newScreen(frameWidth, frameHeight)
	if err != nil {
		return err
	}
	defer s.delete()

	// Frames are handed over from inside the emulation loop, pacing happens here.
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()
	var console *nes.Console
	onFrame := func(frame *image.RGBA) {
		s.updateTexture(frame)
		window.SwapBuffers()
		<-ticker.C
	}
	onInput := func() {
		glfw.PollEvents()
		if window.ShouldClose() {
			console.Stop()
			return
		}
		console.SetButtonMask(0, getKeys(window, 0))
		console.SetButtonMask(1, getKeys(window, 1))
	}
	options = append(options, nes.WithFrameHandler(onFrame), nes.WithInputHandler(onInput))
	console, err = nes.NewConsole(buf, options...)
	if err != nil {
		return err
	}
	return console.Run()
}
