package geometry

import "github.com/gogpu/gg"

// TetrionSide is the side length of TetrionPath in path units.
const TetrionSide = 10

// TetrionPath is the square outline drawn for every board cell.
func TetrionPath() *gg.Path {
	return gg.BuildPath().
		MoveTo(0, 0).
		LineTo(0, TetrionSide).
		LineTo(TetrionSide, TetrionSide).
		LineTo(TetrionSide, 0).
		Close().
		Build()
}

// ClipRect covers normalised device coordinates.
func ClipRect() gg.Rect {
	return gg.Rect{Min: gg.Pt(-1, -1), Max: gg.Pt(1, 1)}
}
