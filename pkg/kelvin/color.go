package kelvin

import "fmt"

// Color is an 8-bit per channel sRGB approximation of a black-body color.
// Values are immutable; construct them with NewColor or ToRGB.
type Color struct {
	r, g, b uint8
}

// NewColor creates a Color from its channels
func NewColor(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b}
}

// R returns the red channel
func (c Color) R() uint8 { return c.r }

// G returns the green channel
func (c Color) G() uint8 { return c.g }

// B returns the blue channel
func (c Color) B() uint8 { return c.b }

// RGB returns the channels as three values
func (c Color) RGB() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// Components returns the color as an ordered (red, green, blue) triple
func (c Color) Components() [3]uint8 {
	return [3]uint8{c.r, c.g, c.b}
}

// Equal reports whether both colors have identical channels
func (c Color) Equal(other Color) bool {
	return c == other
}

// EqualComponents reports whether the color matches a plain (red, green, blue) triple
func (c Color) EqualComponents(t [3]uint8) bool {
	return c.Components() == t
}

// Hex renders the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.r, c.g, c.b)
}
