package detection

import "image"

// component is one 8-connected region of set mask pixels.
type component struct {
	// pixels holds every member pixel in mask-local coordinates.
	pixels []image.Point

	// boundary holds the member pixels with at least one 4-neighbour outside
	// the region; these are the external contour points.
	boundary []image.Point
}

// area is the enclosed area of the component in pixels.
func (c component) area() float64 {
	return float64(len(c.pixels))
}

// moments returns the zeroth and first raw image moments of the region.
func (c component) moments() (m00, m10, m01 float64) {
	for _, p := range c.pixels {
		m00++
		m10 += float64(p.X)
		m01 += float64(p.Y)
	}
	return m00, m10, m01
}

// findComponents groups the set pixels of grid into connected regions.
//
// Uses flood-fill with 8-connectivity. Regions are returned in scan order of
// their first pixel.
func findComponents(grid [][]bool) []component {
	height := len(grid)
	if height == 0 {
		return nil
	}
	width := len(grid[0])

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	var comps []component
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if grid[y][x] && !visited[y][x] {
				comps = append(comps, floodFill(grid, visited, x, y, width, height))
			}
		}
	}
	return comps
}

// floodFill collects the region containing (startX, startY).
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large regions.
func floodFill(grid, visited [][]bool, startX, startY, width, height int) component {
	var c component
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !grid[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		c.pixels = append(c.pixels, p)
		if onBoundary(grid, p.X, p.Y, width, height) {
			c.boundary = append(c.boundary, p)
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return c
}

// onBoundary reports whether a set pixel touches the outside of its region.
// Pixels on the image border always count as boundary.
func onBoundary(grid [][]bool, x, y, width, height int) bool {
	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return true
	}
	return !grid[y][x-1] || !grid[y][x+1] || !grid[y-1][x] || !grid[y+1][x]
}
