package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/golang/glog"

	"github.com/jyane/famicore/nes"
	"github.com/jyane/famicore/ui"
)

var (
	path       = flag.String("path", "./rom/sample1.nes", "path to NES ROM file")
	width      = flag.Int("width", 256*4, "widow width")
	height     = flag.Int("height", 240*4, "widow height")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	debug      = flag.Bool("debug", false, "run as debug mode, commands are read from stdin")
	trace      = flag.Bool("trace", false, "log every instruction at -v=2")
	haltOnBRK  = flag.Bool("halt-on-brk", false, "stop when BRK is executed instead of jumping through the IRQ vector")
)

func init() {
	// glfw and OpenGL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	flag.Parse()
	defer glog.Flush()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			glog.Fatal("Failed to create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Fatal("Failed to start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	buf, err := os.ReadFile(*path)
	if err != nil {
		glog.Fatalf("Failed to read %s: %v", *path, err)
	}
	options := []nes.Option{nes.WithTrace(*trace), nes.WithHaltOnBreak(*haltOnBRK)}
	if *debug {
		console, err := nes.NewConsole(buf, options...)
		if err != nil {
			glog.Fatalf("Failed to initiate Console: %+v", err)
		}
		if err := nes.NewDebugConsole(console, os.Stdin, os.Stdout).Run(); err != nil {
			glog.Fatalf("Debugger stopped: %+v", err)
		}
		return
	}
	if err := ui.Start(buf, *width, *height, options...); err != nil {
		glog.Fatalf("Emulation stopped: %+v", err)
	}
}
