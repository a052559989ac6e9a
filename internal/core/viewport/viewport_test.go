package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const epsilon = 1e-9

func assertInvariants(t require.TestingT, v *Viewport) {
	require.GreaterOrEqual(t, v.TimeStart, -epsilon)
	require.LessOrEqual(t, v.TimeStart, v.TimeEnd+epsilon)
	require.LessOrEqual(t, v.TimeEnd, v.TimeTotal+epsilon)
	require.InDelta(t, (v.TimeEnd-v.TimeStart)/v.TimeTotal, v.Zoom, 1e-6)
}

func TestNew(t *testing.T) {
	v := New()

	start, end := v.VisibleRange()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 1.0, end)
	assert.Equal(t, 1.0, v.TimeTotal)
	assert.Equal(t, 1.0, v.Zoom)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		total         float64
		expectedTotal float64
	}{
		{"normal extent", 3600, 3600},
		{"zero extent floors to one", 0, 1},
		{"negative extent floors to one", -20, 1},
		{"sub-second extent floors to one", 0.25, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ZoomIn()
			v.Fit(tt.total)

			assert.Equal(t, tt.expectedTotal, v.TimeTotal)
			assert.Equal(t, 0.0, v.TimeStart)
			assert.Equal(t, tt.expectedTotal, v.TimeEnd)
			assert.Equal(t, 1.0, v.Zoom)
			assert.True(t, v.IsFit())
		})
	}
}

func TestZoomInShrinksAroundCenter(t *testing.T) {
	v := New()
	v.Fit(100)

	prevWidth := v.Width()
	for i := 0; i < 4; i++ {
		v.ZoomIn()

		assert.Less(t, v.Width(), prevWidth, "step %d", i)
		assert.InDelta(t, 50.0, (v.TimeStart+v.TimeEnd)/2, epsilon, "step %d", i)
		assert.InDelta(t, prevWidth*0.7, v.Width(), epsilon, "step %d", i)
		assertInvariants(t, v)
		prevWidth = v.Width()
	}
}

func TestZoomOutReturnsExactlyToFit(t *testing.T) {
	v := New()
	v.Fit(100)
	for i := 0; i < 4; i++ {
		v.ZoomIn()
	}

	for i := 0; i < 20 && !v.IsFit(); i++ {
		v.ZoomOut()
		assertInvariants(t, v)
	}

	assert.Equal(t, 0.0, v.TimeStart)
	assert.Equal(t, 100.0, v.TimeEnd)
	assert.Equal(t, 1.0, v.Zoom)
}

func TestZoomOutClampsAtEdges(t *testing.T) {
	v := New()
	v.Fit(100)
	v.ZoomIn()
	v.ZoomIn()
	for i := 0; i < 10; i++ {
		v.PanLeft()
	}
	require.Equal(t, 0.0, v.TimeStart)

	v.ZoomOut()

	assert.Equal(t, 0.0, v.TimeStart)
	assertInvariants(t, v)
}

func TestPanAtBoundaryIsNoop(t *testing.T) {
	v := New()
	v.Fit(100)

	before := *v
	v.PanRight()
	assert.Equal(t, before, *v)

	v.PanLeft()
	assert.Equal(t, before, *v)
}

func TestPanRight(t *testing.T) {
	v := New()
	v.Fit(100)
	v.ZoomIn() // [15, 85]
	width := v.Width()

	v.PanRight()
	assert.InDelta(t, 99.0, v.TimeEnd, epsilon)
	assert.InDelta(t, width, v.Width(), epsilon)

	v.PanRight()
	assert.Equal(t, 100.0, v.TimeEnd)
	assert.InDelta(t, width, v.Width(), epsilon)

	before := *v
	v.PanRight()
	assert.Equal(t, before, *v)
	assertInvariants(t, v)
}

func TestPanLeft(t *testing.T) {
	v := New()
	v.Fit(100)
	v.ZoomIn() // [15, 85]
	width := v.Width()

	v.PanLeft()
	assert.InDelta(t, 1.0, v.TimeStart, epsilon)
	assert.InDelta(t, width, v.Width(), epsilon)

	v.PanLeft()
	assert.Equal(t, 0.0, v.TimeStart)
	assert.InDelta(t, width, v.Width(), epsilon)

	before := *v
	v.PanLeft()
	assert.Equal(t, before, *v)
}

func TestContains(t *testing.T) {
	v := New()
	v.Fit(10)
	v.ZoomIn()

	start, end := v.VisibleRange()
	assert.True(t, v.Contains(start))
	assert.True(t, v.Contains(end))
	assert.True(t, v.Contains((start+end)/2))
	assert.False(t, v.Contains(start-0.001))
	assert.False(t, v.Contains(end+0.001))
}

func TestViewportInvariantsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := New()
		v.Fit(rapid.Float64Range(0, 200000).Draw(rt, "total"))

		ops := rapid.SliceOfN(rapid.IntRange(0, 4), 1, 60).Draw(rt, "ops")
		for _, op := range ops {
			switch op {
			case 0:
				v.ZoomIn()
			case 1:
				v.ZoomOut()
			case 2:
				v.PanLeft()
			case 3:
				v.PanRight()
			case 4:
				v.Fit(v.TimeTotal)
			}
			assertInvariants(rt, v)
		}
	})
}
