package toolpath

import (
	"math"
	"sort"

	"github.com/asim/quadtree"

	"ngcsmooth/pkg/geometry"
)

var zeroPoint = quadtree.NewPoint(0, 0, nil)

// pathTree indexes the start and end points of paths by path index.
type pathTree struct {
	quadTree *quadtree.QuadTree
	paths    []Path
	midX     float64
	midY     float64
	width    float64
	height   float64
}

func newPathTree(paths []Path) *pathTree {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, path := range paths {
		if len(path) == 0 {
			continue
		}
		for _, p := range []geometry.Point2{path[0], path[len(path)-1]} {
			minX = math.Min(minX, float64(p.X))
			maxX = math.Max(maxX, float64(p.X))
			minY = math.Min(minY, float64(p.Y))
			maxY = math.Max(maxY, float64(p.Y))
		}
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}

	midX := (maxX + minX) / 2
	midY := (maxY + minY) / 2
	halfWidth := maxX - midX
	halfHeight := maxY - midY

	// Add a small margin to avoid dropping points at the edges
	halfWidth += 10
	halfHeight += 10

	aabb := quadtree.NewAABB(
		quadtree.NewPoint(midX, midY, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil))
	return &pathTree{
		quadTree: quadtree.New(aabb, 0, nil),
		paths:    paths,
		midX:     midX,
		midY:     midY,
		width:    halfWidth * 2,
		height:   halfHeight * 2,
	}
}

func endpoints(path Path) (start, end geometry.Point2) {
	return path[0], path[len(path)-1]
}

func (t *pathTree) addPath(index int) {
	path := t.paths[index]
	if len(path) == 0 {
		return
	}

	addOne := func(x, y float64) {
		point := quadtree.NewPoint(x, y, nil)
		points := t.quadTree.KNearest(quadtree.NewAABB(point, zeroPoint), 1, nil)
		if len(points) > 0 {
			pointX, pointY := points[0].Coordinates()
			if pointX == x && pointY == y {
				// Add the path to the existing list
				indices := points[0].Data().(map[int]struct{})
				indices[index] = struct{}{}
				return
			}
		}
		indices := map[int]struct{}{index: {}}
		t.quadTree.Insert(quadtree.NewPoint(x, y, indices))
	}

	start, end := endpoints(path)
	addOne(float64(start.X), float64(start.Y))
	addOne(float64(end.X), float64(end.Y))
}

func (t *pathTree) removePath(index int) {
	removeOne := func(x, y float64) {
		point := quadtree.NewPoint(x, y, nil)
		points := t.quadTree.KNearest(quadtree.NewAABB(point, zeroPoint), 1, nil)
		if len(points) > 0 {
			pointX, pointY := points[0].Coordinates()
			if pointX == x && pointY == y {
				indices := points[0].Data().(map[int]struct{})
				delete(indices, index)
				if len(indices) == 0 {
					t.quadTree.Remove(points[0])
				}
			}
		}
	}
	start, end := endpoints(t.paths[index])
	removeOne(float64(start.X), float64(start.Y))
	removeOne(float64(end.X), float64(end.Y))
}

// distance returns the distance from (x, y) to the start or end of a path.
func (t *pathTree) distance(x, y float64, index int, start bool) float64 {
	s, e := endpoints(t.paths[index])
	p := e
	if start {
		p = s
	}
	return math.Hypot(float64(p.X)-x, float64(p.Y)-y)
}

func (t *pathTree) nearestDistance(x, y float64, index int) float64 {
	return math.Min(t.distance(x, y, index, true), t.distance(x, y, index, false))
}

// findNearest returns the index of the path with an endpoint nearest to
// (x, y), or -1 when the tree is empty.
func (t *pathTree) findNearest(x, y float64) int {
	// Reach far enough from (x, y) to cover the whole tree.
	reach := math.Hypot(x-t.midX, y-t.midY)
	aabb := quadtree.NewAABB(
		quadtree.NewPoint(x, y, nil),
		quadtree.NewPoint(t.width+reach, t.height+reach, nil),
	)
	points := t.quadTree.KNearest(aabb, 4, nil)

	var nearest []int
	for _, point := range points {
		indices := point.Data().(map[int]struct{})
		for index := range indices {
			nearest = append(nearest, index)
		}
	}
	if len(nearest) == 0 {
		return -1
	}

	sort.Slice(nearest, func(i, j int) bool {
		di := t.nearestDistance(x, y, nearest[i])
		dj := t.nearestDistance(x, y, nearest[j])
		if di == dj {
			return nearest[i] < nearest[j]
		}
		return di < dj
	})
	return nearest[0]
}

// Order sorts paths to shorten the rapid moves between them, starting from
// (x, y) and always moving to the nearest unvisited path endpoint. A path
// whose end is nearer than its start is reversed. Empty paths are dropped.
func Order(paths []Path, x, y float64) []Path {
	tree := newPathTree(paths)
	for i := range paths {
		tree.addPath(i)
	}

	var sorted []Path
	for {
		index := tree.findNearest(x, y)
		if index < 0 {
			break
		}
		tree.removePath(index)

		path := paths[index]
		if tree.distance(x, y, index, false) < tree.distance(x, y, index, true) {
			path = path.Reverse()
		}
		end := path[len(path)-1]
		x, y = float64(end.X), float64(end.Y)
		sorted = append(sorted, path)
	}
	return sorted
}
