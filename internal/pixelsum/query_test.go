package pixelsum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelSum_SinglePixels(t *testing.T) {
	ix := fixture(t)

	assert.Equal(t, uint32(0), ix.PixelSum(0, 0, 0, 0))
	assert.Equal(t, uint32(0), ix.PixelSum(-5, -5, -5, -5))
	assert.Equal(t, uint32(0), ix.PixelSum(5, 5, 5, 5))
	assert.Equal(t, uint32(0), ix.PixelSum(5000, 5000, 5000, 5000))
	assert.Equal(t, uint32(4), ix.PixelSum(1, 0, 1, 0))
}

func TestPixelSum_Regions(t *testing.T) {
	ix := fixture(t)

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           uint32
	}{
		{"row prefix past data", 0, 0, 5, 0, 7},
		{"row prefix exact", 0, 0, 4, 0, 7},
		{"row prefix short", 0, 0, 3, 0, 6},
		{"inner row span", 2, 0, 5, 0, 3},
		{"inner block", 2, 0, 5, 5, 3},
		{"two pixels", 0, 0, 1, 0, 4},
		{"column", 0, 0, 0, 1, 0},
		{"fully negative", -100, -100, -50, -50, 0},
		{"negative x start", -100, 0, 4, 0, 7},
		{"tall past bottom", 0, 0, 3, 5000, 6},
		{"beyond far border", 2048, 2048, 5000, 5000, 0},
		{"beyond right only", 2048, 0, 3000, 0, 0},
		{"extreme coordinates", math.MinInt, math.MinInt, math.MaxInt, math.MaxInt, 7},
		{"extreme low side", math.MinInt, math.MinInt, math.MinInt, math.MinInt, 0},
		{"extreme high side", math.MaxInt, math.MaxInt, math.MaxInt, math.MaxInt, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.PixelSum(tt.x0, tt.y0, tt.x1, tt.y1))
		})
	}
}

func TestPixelSum_TotalCoverage(t *testing.T) {
	const w, h = 64, 48
	rng := rand.New(rand.NewSource(1))
	buf := make([]byte, w*h)
	var total uint32
	for i := range buf {
		buf[i] = byte(rng.Intn(256))
		total += uint32(buf[i])
	}

	ix, err := New(buf, w, h)
	require.NoError(t, err)

	assert.Equal(t, total, ix.PixelSum(0, 0, w-1, h-1))
	assert.Equal(t, total, ix.PixelSum(w-1, h-1, 0, 0))
}

func TestQueries_MatchBruteForce(t *testing.T) {
	const w, h = 31, 17
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, w*h)
	for i := range buf {
		if rng.Intn(4) == 0 {
			buf[i] = byte(1 + rng.Intn(255))
		}
	}

	ix, err := New(buf, w, h)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		x0, x1 := rng.Intn(w+20)-10, rng.Intn(w+20)-10
		y0, y1 := rng.Intn(h+20)-10, rng.Intn(h+20)-10

		wantSum, wantNZ := bruteSum(buf, w, h, x0, y0, x1, y1)
		require.Equal(t, wantSum, ix.PixelSum(x0, y0, x1, y1), "PixelSum(%d,%d,%d,%d)", x0, y0, x1, y1)
		require.Equal(t, wantNZ, ix.NonZeroCount(x0, y0, x1, y1), "NonZeroCount(%d,%d,%d,%d)", x0, y0, x1, y1)
	}
}

func TestQueries_AxisSymmetry(t *testing.T) {
	ix := fixture(t)

	rects := [][4]int{
		{0, 0, 5, 0},
		{-5, 10, 500, 25},
		{1, 2, 3, 4},
		{800, 5000, 5, 0},
		{-1, 5, 0, 8},
		{2500, 7000, 0, 1000},
		{-3, -3, 4, 1},
	}

	for _, r := range rects {
		x0, y0, x1, y1 := r[0], r[1], r[2], r[3]
		variants := [][4]int{
			{x1, y0, x0, y1},
			{x0, y1, x1, y0},
			{x1, y1, x0, y0},
		}
		for _, v := range variants {
			assert.Equal(t, ix.PixelSum(x0, y0, x1, y1), ix.PixelSum(v[0], v[1], v[2], v[3]), "PixelSum %v vs %v", r, v)
			assert.Equal(t, ix.PixelAverage(x0, y0, x1, y1), ix.PixelAverage(v[0], v[1], v[2], v[3]), "PixelAverage %v vs %v", r, v)
			assert.Equal(t, ix.NonZeroCount(x0, y0, x1, y1), ix.NonZeroCount(v[0], v[1], v[2], v[3]), "NonZeroCount %v vs %v", r, v)
			assert.Equal(t, ix.NonZeroAverage(x0, y0, x1, y1), ix.NonZeroAverage(v[0], v[1], v[2], v[3]), "NonZeroAverage %v vs %v", r, v)
		}
	}
}

func TestPixelAverage(t *testing.T) {
	ix := fixture(t)

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           float64
	}{
		{"zero pixel", 0, 0, 0, 0, 0.0},
		{"single four", 1, 0, 1, 0, 4.0},
		{"single one", 4, 0, 4, 0, 1.0},
		{"single negative", -5, 0, -5, 0, 0.0},
		{"single far", 5000, 0, 5000, 0, 0.0},
		{"two wide", 0, 0, 1, 0, 2.0},
		{"three wide", 0, 0, 2, 0, 4.0 / 3.0},
		{"four wide", 0, 0, 3, 0, 1.5},
		{"five wide", 0, 0, 4, 0, 1.4},
		{"six wide", 0, 0, 5, 0, 7.0 / 6.0},
		{"seven wide", 0, 0, 6, 0, 1.0},
		{"straddles origin", -5, -5, 5, 5, 7.0 / 121.0},
		{"all negative", -5, -5, -1, -1, 0.0},
		{"all beyond", 7000, 3000, 8000, 3500, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ix.PixelAverage(tt.x0, tt.y0, tt.x1, tt.y1), 1e-12)
		})
	}
}

// The denominator is the requested area, not the in-grid area. A rectangle
// that overhangs the grid averages lower than its visible part.
func TestPixelAverage_UnclampedDenominator(t *testing.T) {
	ix := fixture(t)

	assert.InDelta(t, 3.0/(98*2.0), ix.PixelAverage(3, 0, 100, 1), 1e-12)

	small, err := New([]byte{10, 10, 10, 10}, 2, 2)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, small.PixelAverage(0, 0, 1, 1), 1e-12)
	// 40 over a requested 4x4 area, though only 2x2 pixels exist.
	assert.InDelta(t, 40.0/16.0, small.PixelAverage(0, 0, 3, 3), 1e-12)
	assert.InDelta(t, 40.0/16.0, small.PixelAverage(-2, -2, 1, 1), 1e-12)
}

func TestNominalArea(t *testing.T) {
	assert.Equal(t, 1.0, NominalArea(3, 3, 3, 3))
	assert.Equal(t, 6.0, NominalArea(0, 0, 2, 1))
	assert.Equal(t, 6.0, NominalArea(2, 1, 0, 0))
	assert.Equal(t, 121.0, NominalArea(-5, -5, 5, 5))
	assert.Greater(t, NominalArea(math.MinInt, 0, math.MaxInt, 0), 1e18)
}

func TestNonZeroCount(t *testing.T) {
	ix := fixture(t)

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           int
	}{
		{"row prefix", 0, 0, 5, 0, 3},
		{"long row", 0, 0, 10, 0, 3},
		{"first two", 0, 0, 1, 0, 1},
		{"tail", 3, 0, 6, 0, 2},
		{"block", 0, 0, 5, 5, 3},
		{"zero pixel", 0, 0, 0, 0, 0},
		{"one pixel", 1, 0, 1, 0, 1},
		{"negative pixel", -1, -1, -1, -1, 0},
		{"far pixel", 5000, 3000, 5000, 3000, 0},
		{"whole grid", -1, -1, 5000, 5000, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ix.NonZeroCount(tt.x0, tt.y0, tt.x1, tt.y1))
		})
	}
}

func TestNonZeroAverage(t *testing.T) {
	ix := fixture(t)

	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           float64
	}{
		{"row prefix", 0, 0, 5, 0, 7.0 / 3.0},
		{"from minus one", -1, 0, 5, 0, 7.0 / 3.0},
		{"from negative block", -5, -5, 5, 0, 7.0 / 3.0},
		{"long row", 0, 0, 50, 0, 7.0 / 3.0},
		{"tall", 0, 0, 5, 10, 7.0 / 3.0},
		{"from column one", 1, 0, 5, 0, 7.0 / 3.0},
		{"single one", 4, 0, 4, 0, 1.0},
		{"single zero", 0, 0, 0, 0, 0.0},
		{"negative", -5, -5, -5, -5, 0.0},
		{"far", 8000, 6000, 8000, 6000, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ix.NonZeroAverage(tt.x0, tt.y0, tt.x1, tt.y1), 1e-12)
		})
	}
}

func TestNonZeroAverage_CoupledToPixelSum(t *testing.T) {
	const w, h = 20, 20
	rng := rand.New(rand.NewSource(3))
	buf := make([]byte, w*h)
	for i := range buf {
		if rng.Intn(5) == 0 {
			buf[i] = byte(rng.Intn(256))
		}
	}
	ix, err := New(buf, w, h)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		x0, y0 := rng.Intn(30)-5, rng.Intn(30)-5
		x1, y1 := rng.Intn(30)-5, rng.Intn(30)-5

		n := ix.NonZeroCount(x0, y0, x1, y1)
		got := ix.NonZeroAverage(x0, y0, x1, y1)
		if n == 0 {
			require.Equal(t, 0.0, got)
			continue
		}
		require.Equal(t, float64(ix.PixelSum(x0, y0, x1, y1))/float64(n), got)
	}
}

func TestStats(t *testing.T) {
	ix := fixture(t)

	s := ix.Stats(5, 0, 0, 0)
	assert.Equal(t, uint32(7), s.Sum)
	assert.InDelta(t, 7.0/6.0, s.Average, 1e-12)
	assert.Equal(t, 3, s.NonZeroCount)
	assert.InDelta(t, 7.0/3.0, s.NonZeroAverage, 1e-12)
}

func TestQueries_Concurrent(t *testing.T) {
	ix := fixture(t)

	done := make(chan uint32)
	for g := 0; g < 8; g++ {
		go func() {
			var acc uint32
			for i := 0; i < 1000; i++ {
				acc += ix.PixelSum(0, 0, 5, 0)
			}
			done <- acc
		}()
	}
	for g := 0; g < 8; g++ {
		assert.Equal(t, uint32(7000), <-done)
	}
}
