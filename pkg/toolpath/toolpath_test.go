package toolpath

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngcsmooth/pkg/geometry"
)

func TestDepths(t *testing.T) {
	assert.Equal(t, []float64{-0.1}, Mill{ZWork: -0.1}.Depths())
	assert.InDeltaSlice(t, []float64{-0.01, -0.04, -0.07, -0.1}, Mill{ZWork: -0.1, StepSize: 0.03}.Depths(), 1e-12)
	assert.InDeltaSlice(t, []float64{0, -0.001, -0.002}, Mill{ZWork: -0.002, StepSize: 0.001}.Depths(), 1e-12)
}

func TestNeeded(t *testing.T) {
	path := Path{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.5}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	var kept []bool
	for i := range path {
		kept = append(kept, needed(path, i))
	}
	assert.Equal(t, []bool{true, false, true, false, true, true}, kept)
}

func TestExportLayer(t *testing.T) {
	layer := Layer{
		Name:   "top",
		Header: []string{"top layer"},
		Paths: []Path{
			{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		},
		Mill: Mill{Feed: 10, Speed: 1000, ZChange: 1.5, ZSafe: 0.04, ZWork: -0.002},
	}
	var buf bytes.Buffer
	err := ExportLayer(&buf, layer, Options{Tolerance: 0.001, Plane: geometry.PlaneXY})
	require.NoError(t, err)

	want := []string{
		"( top layer )",
		"",
		"G94     ( Inches per minute feed rate. )",
		"G20     ( Units == INCHES.             )",
		"G90     ( Absolute coordinates.        )",
		"S1000   ( RPM spindle speed.           )",
		"M3      ( Spindle on clockwise.        )",
		"",
		"G64 P0.001 ( set maximum deviation from commanded toolpath )",
		"",
		"G00 Z0.040000",
		"X0.000000 Y0.000000",
		"F10",
		"G01 Z-0.002000",
		"X1.000000",
		"Y1.000000",
		"",
		"G00 Z0.040000",
		"M2",
	}
	assert.Equal(t, want, strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"))
}

func TestExportLayerPasses(t *testing.T) {
	layer := Layer{
		Paths: []Path{
			{{X: 0, Y: 0}, {X: 1, Y: 0}},
			{},
			{{X: 2, Y: 2}, {X: 3, Y: 2}},
		},
		Mill: Mill{Feed: 10, Speed: 1000, ZChange: 1.5, ZSafe: 0.04, ZWork: -0.002, StepSize: 0.001},
	}
	var buf bytes.Buffer
	require.NoError(t, ExportLayer(&buf, layer, Options{Tolerance: 0.001, Metric: true, Sort: true}))
	out := buf.String()

	assert.Equal(t, 6, strings.Count(out, "F10\n"), "three passes per path")
	assert.Contains(t, out, "G21     ( Units == MILLIMETERS.             )")
	assert.Contains(t, out, "Z-0.001000\n")
	assert.True(t, strings.HasSuffix(out, "M2\n"))
}

func TestOrder(t *testing.T) {
	a := Path{{X: 10, Y: 10}, {X: 11, Y: 10}}
	b := Path{{X: 1, Y: 0}, {X: 2, Y: 0}}
	c := Path{{X: 5, Y: 0}, {X: 3, Y: 0}}

	sorted := Order([]Path{a, {}, b, c}, 0, 0)
	require.Len(t, sorted, 3)
	assert.Equal(t, b, sorted[0])
	assert.Equal(t, c.Reverse(), sorted[1])
	assert.Equal(t, a, sorted[2])
}

func TestReadPaths(t *testing.T) {
	input := `# board outline
0 0
1 0
1,1

2 2
3 3   # tail
`
	paths, err := ReadPaths(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Path{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 2, Y: 2}, {X: 3, Y: 3}},
	}, paths)

	_, err = ReadPaths(strings.NewReader("1 2 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = ReadPaths(strings.NewReader("1 x\n"))
	require.Error(t, err)
}
