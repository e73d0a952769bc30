package pixelsum

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	fixtureWidth  = 2048
	fixtureHeight = 2048
)

var (
	fixtureOnce  sync.Once
	fixtureIndex *Index
	fixtureErr   error
)

// fixture returns a shared 2048x2048 index that is zero everywhere except
// row 0, which starts with [0, 4, 0, 2, 1].
func fixture(t *testing.T) *Index {
	t.Helper()
	fixtureOnce.Do(func() {
		buf := make([]byte, fixtureWidth*fixtureHeight)
		copy(buf, []byte{0, 4, 0, 2, 1, 0})
		fixtureIndex, fixtureErr = New(buf, fixtureWidth, fixtureHeight)
	})
	require.NoError(t, fixtureErr)
	return fixtureIndex
}

// bruteSum sums the in-grid pixels of the rectangle directly.
func bruteSum(buf []byte, w, h, x0, y0, x1, y1 int) (sum uint32, nonZero int) {
	for y := max(min(y0, y1), 0); y <= min(max(y0, y1), h-1); y++ {
		for x := max(min(x0, x1), 0); x <= min(max(x0, x1), w-1); x++ {
			v := buf[x+y*w]
			sum += uint32(v)
			if v != 0 {
				nonZero++
			}
		}
	}
	return sum, nonZero
}
