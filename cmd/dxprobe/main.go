// Command dxprobe creates a Direct3D 11 device and runs a binding plan
// against it: viewports and scissor rectangles are recorded on a
// deferred context, captured into command lists and executed.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/dxbind"
	"github.com/gogpu/dxbind/d3d11"
	"github.com/gogpu/dxbind/internal/probe"
)

var drivers = map[string]d3d11.DriverType{
	"hardware":  d3d11.DriverHardware,
	"warp":      d3d11.DriverWARP,
	"reference": d3d11.DriverReference,
	"null":      d3d11.DriverNull,
}

func main() {
	var (
		planPath = flag.String("plan", "", "YAML plan file (default: one full-target viewport)")
		driver   = flag.String("driver", "hardware", "driver type: hardware, warp, reference or null")
		debug    = flag.Bool("debug", false, "create the device with the debug layer")
		verbose  = flag.Bool("v", false, "log command list capture")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	dxbind.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	plan := probe.DefaultPlan()
	if *planPath != "" {
		p, err := probe.LoadPlan(*planPath)
		if err != nil {
			log.Fatalf("Failed to load plan: %v", err)
		}
		plan = p
	}

	dt, ok := drivers[strings.ToLower(*driver)]
	if !ok {
		log.Fatalf("Unknown driver type %q", *driver)
	}
	flags := d3d11.CreateBGRASupport
	if *debug {
		flags |= d3d11.CreateDebug
	}

	dev, fl, err := d3d11.CreateDevice(dt, flags)
	if err != nil {
		log.Fatalf("Failed to create device: %v", err)
	}
	defer dev.Release()
	log.Printf("Device created (driver %s, feature level %s)\n", *driver, fl)

	report, err := probe.Run(dev, plan)
	if err != nil {
		log.Fatalf("Plan %q failed: %v", plan.Name, err)
	}
	for _, m := range report.Mismatches {
		log.Printf("mismatch: %s\n", m)
	}
	log.Printf("Plan %q: %d iterations, %d command lists\n", report.Plan, report.Iterations, report.CommandLists)
	if !report.OK() {
		os.Exit(1)
	}
}
