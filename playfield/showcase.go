package playfield

import "github.com/plus3/ruzzle/tetromino"

// Showcase fills b with a gallery of every shape: each band of four rows
// holds one kind on the left half and a mirrored second kind on the right.
func Showcase(b *Board, t *tetromino.Table) {
	half := b.Cols / 2
	for r := 0; r < b.Rows; r++ {
		band, local := r/4, r%4
		for c := 0; c < b.Cols; c++ {
			kind := tetromino.Kind(band)
			col := c
			if c >= half {
				kind = tetromino.Kind(4 + band)
				col = b.Cols - c - 1
			}
			if !kind.Valid() || !t.Shape(kind).IsSolid(col, local) {
				b.Set(c, r, tetromino.None)
				continue
			}
			b.Set(c, r, kind)
		}
	}
}
