// Package toolpath turns 2D toolpaths into G-code through a gcode.Emitter.
package toolpath

import (
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"golang.org/x/xerrors"

	"ngcsmooth/pkg/float"
	"ngcsmooth/pkg/gcode"
	"ngcsmooth/pkg/geometry"
)

// Path is a toolpath in the XY plane.
type Path []geometry.Point2

// Reverse returns a reversed copy of the path.
func (path Path) Reverse() Path {
	reversed := make(Path, len(path))
	for i, p := range path {
		reversed[len(path)-1-i] = p
	}
	return reversed
}

// Mill holds the machining parameters of one tool.
type Mill struct {
	Feed    float64
	Speed   float64
	ZChange float64 // tool change height
	ZSafe   float64 // height for moves between paths
	ZWork   float64 // depth of the final pass
	// StepSize is the depth of each pass. Zero cuts at ZWork in one pass.
	StepSize float64
}

// Depths returns the Z of each pass, shallowest first, ending at ZWork.
func (m Mill) Depths() []float64 {
	if m.StepSize <= 0 {
		return []float64{m.ZWork}
	}
	n := int(math.Abs(float64(int(m.ZWork / m.StepSize))))
	depths := make([]float64, 0, n+1)
	for k := n; k >= 0; k-- {
		depths = append(depths, m.ZWork+m.StepSize*float64(k))
	}
	return depths
}

// Layer is a set of toolpaths cut with one tool.
type Layer struct {
	Name   string
	Header []string
	Paths  []Path
	Mill   Mill
}

// Options controls how a layer is exported.
type Options struct {
	Tolerance float64
	Metric    bool
	Plane     geometry.Plane
	// Sort reorders paths to shorten travel, see Order.
	Sort   bool
	Logger *log.Logger
}

// ExportLayer writes a complete G-code program for the layer to w.
func ExportLayer(w io.Writer, layer Layer, opts Options) error {
	units := "G20"
	if opts.Metric {
		units = "G21"
	}
	mill := layer.Mill
	gc := gcode.New(w, gcode.Options{
		HomeHeight:   float.Float(mill.ZChange),
		SafetyHeight: float.Float(mill.ZSafe),
		Tolerance:    float.Float(opts.Tolerance),
		SpindleSpeed: float.Float(mill.Speed),
		Units:        units,
		Logger:       opts.Logger,
	})

	for _, s := range layer.Header {
		gc.Raw("( " + s + " )")
	}
	gc.Raw("")

	if opts.Metric {
		gc.Raw("G94     ( Millimeters per minute feed rate. )")
		gc.Raw("G21     ( Units == MILLIMETERS.             )")
	} else {
		gc.Raw("G94     ( Inches per minute feed rate. )")
		gc.Raw("G20     ( Units == INCHES.             )")
	}
	gc.Raw("G90     ( Absolute coordinates.        )")
	gc.Raw(fmt.Sprintf("S%-6s ( RPM spindle speed.           )", formatNumber(mill.Speed)))
	gc.Raw("M3      ( Spindle on clockwise.        )")
	gc.Raw("")
	gc.Raw(fmt.Sprintf("G64 P%s ( set maximum deviation from commanded toolpath )", formatNumber(opts.Tolerance)))
	gc.Raw("")
	gc.SetPlane(opts.Plane)

	paths := layer.Paths
	if opts.Sort {
		paths = Order(paths, 0, 0)
	}

	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		// retract, move to the starting point of the next contour
		gc.Safety()
		gc.Rapid(geometry.Move{X: geometry.Some(path[0].X), Y: geometry.Some(path[0].Y)})

		for _, z := range mill.Depths() {
			gc.SetFeed(float.Float(mill.Feed))
			gc.Cut(geometry.Move{Z: geometry.Some(float.Float(z))})
			for i, p := range path {
				if needed(path, i) {
					gc.Cut(geometry.Move{X: geometry.Some(p.X), Y: geometry.Some(p.Y)})
				}
			}
		}
	}

	gc.Raw("")
	if err := gc.End(); err != nil {
		return xerrors.Errorf("writing layer %q: %w", layer.Name, err)
	}
	return nil
}

// needed reports whether point i of the path has to be cut. Interior points
// that line up with both neighbours on X or on Y add nothing.
func needed(path Path, i int) bool {
	if i == 0 || i == len(path)-1 {
		return true
	}
	last, p, next := path[i-1], path[i], path[i+1]
	xAligned := last.X == p.X && p.X == next.X
	yAligned := last.Y == p.Y && p.Y == next.Y
	return !xAligned && !yAligned
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
