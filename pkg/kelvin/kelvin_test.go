package kelvin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRGB_ReferenceTemperatures(t *testing.T) {
	testCases := []struct {
		kelvin  int
		r, g, b uint8
	}{
		{0, 255, 67, 0},
		{1500, 255, 108, 0},
		{2500, 255, 159, 70},
		{5000, 255, 228, 205},
		{6600, 255, 255, 255},
		{10000, 201, 218, 255},
		{15000, 181, 205, 255},
		{40000, 151, 185, 255},
		{60000, 151, 185, 255},
	}

	for _, tc := range testCases {
		got := ToRGB(tc.kelvin)
		assert.Equal(t, NewColor(tc.r, tc.g, tc.b), got, "kelvin=%d", tc.kelvin)
	}
}

func TestToRGB_AcceptsAnyNumericType(t *testing.T) {
	want := ToRGB(2500)

	assert.Equal(t, want, ToRGB(int64(2500)))
	assert.Equal(t, want, ToRGB(uint16(2500)))
	assert.Equal(t, want, ToRGB(float32(2500)))
	assert.Equal(t, want, ToRGB(2500.0))

	type lampKelvin int
	assert.Equal(t, want, ToRGB(lampKelvin(2500)))
}

func TestToRGB_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, ToRGB(1000), ToRGB(500))
	assert.Equal(t, ToRGB(1000), ToRGB(-273))
	assert.Equal(t, ToRGB(40000), ToRGB(100000))
	assert.Equal(t, ToRGB(40000), ToRGB(math.MaxFloat64))
	assert.Equal(t, ToRGB(1000), ToRGB(int8(-128)))
}

func TestToRGB_Breakpoints(t *testing.T) {
	// Scaled temperature t <= 66 keeps red at full
	for k := 1000; k <= 6600; k += 50 {
		assert.Equal(t, uint8(255), ToRGB(k).R(), "kelvin=%d", k)
	}

	// t >= 66 keeps blue at full
	for k := 6600; k <= 40000; k += 250 {
		assert.Equal(t, uint8(255), ToRGB(k).B(), "kelvin=%d", k)
	}

	// t <= 19 turns blue off
	for k := 1000; k <= 1900; k += 10 {
		assert.Equal(t, uint8(0), ToRGB(k).B(), "kelvin=%d", k)
	}

	assert.Equal(t, uint8(6), ToRGB(1950).B())
}

func TestToRGB_RedAndGreenDecreaseAboveSeam(t *testing.T) {
	prev := ToRGB(6700)
	for k := 6800; k <= 40000; k += 100 {
		c := ToRGB(k)
		assert.LessOrEqual(t, c.R(), prev.R(), "kelvin=%d", k)
		assert.LessOrEqual(t, c.G(), prev.G(), "kelvin=%d", k)
		prev = c
	}
}

func TestToRGB_Deterministic(t *testing.T) {
	for _, k := range []float64{1234.5, 2700, 6599.99, 6600.01, 33333} {
		first := ToRGB(k)
		for i := 0; i < 5; i++ {
			require.Equal(t, first, ToRGB(k))
		}
	}
}

func TestToRGB_NonFinite(t *testing.T) {
	assert.Equal(t, ToRGB(MaxTemperature), ToRGB(math.Inf(1)))
	assert.Equal(t, ToRGB(MinTemperature), ToRGB(math.Inf(-1)))
	assert.Equal(t, NewColor(0, 0, 0), ToRGB(math.NaN()))
}

func TestColor_Accessors(t *testing.T) {
	c := ToRGB(10000)

	assert.Equal(t, uint8(201), c.R())
	assert.Equal(t, uint8(218), c.G())
	assert.Equal(t, uint8(255), c.B())

	r, g, b := c.RGB()
	assert.Equal(t, [3]uint8{r, g, b}, c.Components())
}

func TestColor_EqualsPlainTriple(t *testing.T) {
	for _, k := range []int{0, 1500, 2500, 5000, 6600, 10000, 40000} {
		c := ToRGB(k)
		assert.True(t, c.EqualComponents(c.Components()), "kelvin=%d", k)
		assert.True(t, c.Equal(NewColor(c.RGB())), "kelvin=%d", k)
	}

	c := ToRGB(2500)
	assert.True(t, c.EqualComponents([3]uint8{255, 159, 70}))
	assert.False(t, c.EqualComponents([3]uint8{255, 159, 71}))
	assert.False(t, c.Equal(ToRGB(2600)))
}

func TestColor_Formatting(t *testing.T) {
	c := ToRGB(2500)
	assert.Equal(t, "#ff9f46", c.Hex())
	assert.Equal(t, "rgb(255, 159, 70)", c.String())
}

func TestSaturate(t *testing.T) {
	testCases := []struct {
		in   float64
		want uint8
	}{
		{-1, 0},
		{-0.5, 0},
		{0, 0},
		{0.99, 0},
		{1, 1},
		{254.999, 254},
		{255, 255},
		{255.6, 255},
		{1e9, 255},
		{math.Inf(1), 255},
		{math.Inf(-1), 0},
		{math.NaN(), 0},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, saturate(tc.in), "in=%v", tc.in)
	}
}
