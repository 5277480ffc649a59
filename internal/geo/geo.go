// Package geo holds the map rectangle used to scope hospital searches.
package geo

// Degrees covered by one kilometre around the service area (~36°N).
const (
	XPerKm = 0.0113
	YPerKm = 0.0091
)

// BoundingBox is a rectangle on the map. X runs west to east and Y runs
// south to north. An East of 0 means "no location filter".
type BoundingBox struct {
	East  float64 `json:"e"`
	West  float64 `json:"w"`
	South float64 `json:"s"`
	North float64 `json:"n"`
}

// Around returns the box extending km kilometres from (x, y) in every direction.
func Around(x, y, km float64) BoundingBox {
	dx := XPerKm * km
	dy := YPerKm * km
	return BoundingBox{
		East:  x + dx,
		West:  x - dx,
		South: y - dy,
		North: y + dy,
	}
}

// Bounded reports whether the box restricts results by location.
func (b BoundingBox) Bounded() bool {
	return b.East != 0
}

// Contains reports whether (x, y) lies inside the box, edges included.
// An unbounded box contains every point.
func (b BoundingBox) Contains(x, y float64) bool {
	if !b.Bounded() {
		return true
	}
	return x >= b.West && x <= b.East && y >= b.South && y <= b.North
}
