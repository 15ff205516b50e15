package toolpath

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"golang.org/x/xerrors"

	"ngcsmooth/pkg/float"
	"ngcsmooth/pkg/geometry"
)

// ReadPaths reads toolpaths from r. Each line holds an "x y" pair; blank
// lines separate paths and '#' starts a comment.
func ReadPaths(r io.Reader) ([]Path, error) {
	var paths []Path
	var current Path
	endPath := func() {
		if len(current) > 0 {
			paths = append(paths, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
		if len(fields) == 0 {
			if strings.TrimSpace(scanner.Text()) == "" {
				endPath()
			}
			continue
		}
		if len(fields) != 2 {
			return nil, xerrors.Errorf("line %d: want 2 coordinates, got %d", lineNo, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", lineNo, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, xerrors.Errorf("line %d: %w", lineNo, err)
		}
		current = append(current, geometry.Point2{X: float.Float(x), Y: float.Float(y)})
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("reading paths: %w", err)
	}
	endPath()
	return paths, nil
}
