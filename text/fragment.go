package text

// Fragment represents a piece of decoded text with its position on the page.
// X and Y are the baseline origin of the run in page coordinates, where larger
// Y values are higher on the page. Fragments are immutable values; the decoder
// produces them and the layout package consumes them.
type Fragment struct {
	Text   string
	X, Y   float64
	Width  float64
	Height float64
}

// EndX returns the X coordinate where the fragment's text ends.
func (f Fragment) EndX() float64 {
	return f.X + f.Width
}
