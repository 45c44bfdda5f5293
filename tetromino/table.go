// Package tetromino defines piece kinds, their shape grids and colours.
//
// The shape table is built once with NewTable and handed to every consumer;
// nothing in this package holds mutable global state.
package tetromino

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for names outside the table.
var ErrUnknownKind = errors.New("unknown piece kind")

// Kind identifies a piece type. None marks an empty board cell.
type Kind uint8

const (
	None Kind = iota
	I
	O
	T
	S
	Z
	J
	L
)

// Count is the number of kinds, None included.
const Count = 8

var kindNames = [Count]string{"NONE", "I", "O", "T", "S", "Z", "J", "L"}

func (k Kind) String() string {
	if int(k) < Count {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k indexes the table.
func (k Kind) Valid() bool {
	return int(k) < Count
}

// ParseKind maps a case-insensitive name back to its kind.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Random picks a playable kind uniformly from I through L.
func Random(r *rand.Rand) Kind {
	return Kind(1 + r.IntN(Count-1))
}

// Table holds the base grid, display name and colour of every kind.
type Table struct {
	shapes [Count]Grid
	colors [Count][4]float32
}

// NewTable builds the standard shape table.
func NewTable() *Table {
	return &Table{
		shapes: [Count]Grid{
			None: MustParseGrid(
				"...",
				"...",
				"...",
			),
			I: MustParseGrid(
				"....",
				"XXXX",
				"....",
				"....",
			),
			O: MustParseGrid(
				"....",
				".XX.",
				".XX.",
				"....",
			),
			T: MustParseGrid(
				"...",
				".X.",
				"XXX",
			),
			S: MustParseGrid(
				"...",
				".XX",
				"XX.",
			),
			Z: MustParseGrid(
				"...",
				"XX.",
				".XX",
			),
			J: MustParseGrid(
				"..X",
				"..X",
				".XX",
			),
			L: MustParseGrid(
				"X..",
				"X..",
				"XX.",
			),
		},
		colors: [Count][4]float32{
			None: {0, 0, 0, 0},
			I:    rgba(0x00C0C0FF),
			O:    rgba(0xFDE01AFF),
			T:    rgba(0x732982FF),
			S:    rgba(0x007940FF),
			Z:    rgb(0xD12229),
			J:    rgba(0x24408EFF),
			L:    rgba(0xF68A1EFF),
		},
	}
}

// Shape returns the base grid of k. Out-of-range kinds get the empty grid.
func (t *Table) Shape(k Kind) Grid {
	if !k.Valid() {
		return t.shapes[None]
	}
	return t.shapes[k]
}

// Rotated returns the base grid of k turned clockwise rotation times.
func (t *Table) Rotated(k Kind, rotation int) Grid {
	return Rotate(t.Shape(k), rotation)
}

// Color returns the fill colour of k as normalised RGBA.
func (t *Table) Color(k Kind) [4]float32 {
	if !k.Valid() {
		return t.colors[None]
	}
	return t.colors[k]
}

// Name returns the display name of k.
func (t *Table) Name(k Kind) string {
	return k.String()
}

func rgba(hex uint32) [4]float32 {
	return [4]float32{
		float32(hex>>24&0xFF) / 255,
		float32(hex>>16&0xFF) / 255,
		float32(hex>>8&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}

func rgb(hex uint32) [4]float32 {
	return rgba(hex<<8 | 0xFF)
}
