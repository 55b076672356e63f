package outline

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func square(x, y, side int) Outline {
	return Outline{{x, y}, {x, y + side}, {x + side, y + side}, {x + side, y}}
}

func TestAreaOfSquareIgnoresWinding(t *testing.T) {
	cw := square(0, 0, 4)
	ccw := Outline{cw[3], cw[2], cw[1], cw[0]}

	assert.Equal(t, 16.0, Area(cw))
	assert.Equal(t, 16.0, Area(ccw))
}

func TestAreaDegenerate(t *testing.T) {
	assert.Zero(t, Area(nil))
	assert.Zero(t, Area(Outline{{1, 1}}))
	assert.Zero(t, Area(Outline{{1, 1}, {5, 5}}))
	assert.Zero(t, Area(Outline{{0, 0}, {2, 2}, {4, 4}}), "collinear")
}

func TestAreaTranslationInvariant(t *testing.T) {
	shapes := []Outline{
		square(3, 4, 7),
		{{0, 0}, {10, 0}, {10, 3}, {4, 3}, {4, 8}, {0, 8}},
		{{5, 1}, {9, 6}, {2, 9}},
	}
	shifts := []image.Point{{1, 0}, {-40, 17}, {1000, -1000}, {123456, 654321}}

	for _, s := range shapes {
		want := Area(s)
		for _, d := range shifts {
			assert.Equal(t, want, Area(Translate(s, d)), "shift %v", d)
		}
	}
}

func TestAreaMatchesOpenCV(t *testing.T) {
	shape := Outline{{0, 0}, {10, 0}, {10, 3}, {4, 3}, {4, 8}, {0, 8}}

	pv := gocv.NewPointVectorFromPoints(shape)
	defer pv.Close()

	assert.InDelta(t, gocv.ContourArea(pv), Area(shape), 1e-9)
}

func TestBounds(t *testing.T) {
	b := Bounds(Outline{{2, 3}, {7, 1}, {4, 9}})
	assert.Equal(t, image.Rect(2, 1, 8, 10), b)
	assert.True(t, Bounds(nil).Empty())
}

func TestSetHelpers(t *testing.T) {
	set := Set{square(0, 0, 2), square(5, 5, 3)}

	assert.Equal(t, []float64{4, 9}, set.Areas())

	pts := set.Points()
	require.Len(t, pts, 2)
	pts[0][0] = image.Pt(99, 99)
	assert.Equal(t, image.Pt(0, 0), set[0][0], "Points must copy")
}
