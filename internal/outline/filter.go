package outline

import (
	"fmt"
	"image"

	"particle-meter/internal/models"
)

// Excluder decides whether an outline is an artifact rather than a particle.
// all is the complete candidate set, including o.
type Excluder interface {
	ShouldExclude(o Outline, all Set) bool
	Name() string
}

// LargestArea flags the outline with the maximum area. Padding makes the
// frame the largest outline for any specimen smaller than the image.
type LargestArea struct{}

func (LargestArea) Name() string { return "largest" }

func (LargestArea) ShouldExclude(o Outline, all Set) bool {
	if len(all) == 0 {
		return false
	}

	area := Area(o)
	for _, other := range all {
		if Area(other) > area {
			return false
		}
	}
	return true
}

// Index finds the first outline of maximum area in one pass.
func (LargestArea) Index(all Set) int {
	best, bestArea := -1, -1.0
	for i, o := range all {
		if area := Area(o); area > bestArea {
			best, bestArea = i, area
		}
	}
	return best
}

// TouchesImageEdge flags an outline whose bounding box reaches the outermost
// row or column of the padded image. Only the frame can do that, since every
// particle sits at least one padding pixel inside.
type TouchesImageEdge struct {
	Size image.Point
}

func (TouchesImageEdge) Name() string { return "touches-border" }

func (t TouchesImageEdge) ShouldExclude(o Outline, _ Set) bool {
	if len(o) == 0 {
		return false
	}

	b := Bounds(o)
	return b.Min.X <= 0 || b.Min.Y <= 0 || b.Max.X >= t.Size.X || b.Max.Y >= t.Size.Y
}

// NewExcluder resolves a configured strategy name. size is the padded image
// size seen by the extractor.
func NewExcluder(name string, size image.Point) (Excluder, error) {
	switch name {
	case models.ExcludeLargest:
		return LargestArea{}, nil
	case models.ExcludeTouchesBorder:
		return TouchesImageEdge{Size: size}, nil
	default:
		return nil, &models.OpError{
			Op:   "new_excluder",
			Kind: models.KindInvalidConfig,
			Err:  fmt.Errorf("unknown exclusion strategy %q", name),
		}
	}
}

// FilterFrame removes the first outline the excluder flags and returns the
// rest in their original order. The input is not modified. If nothing is
// flagged the result is a copy of the input.
//
// An empty input fails with ErrEmptyOutlineSet: a padded image always has a
// frame, so no outlines at all means extraction went wrong.
func FilterFrame(set Set, excluder Excluder) (Set, error) {
	if len(set) == 0 {
		return nil, &models.OpError{Op: "filter_frame", Kind: models.KindEmptyOutlineSet}
	}

	skip := FrameIndex(set, excluder)

	out := make(Set, 0, len(set))
	for i, o := range set {
		if i == skip {
			continue
		}
		out = append(out, o)
	}

	return out, nil
}

// indexer is implemented by excluders that can locate their target without
// a per-outline scan of the whole set.
type indexer interface {
	Index(all Set) int
}

// FrameIndex reports the position of the outline FilterFrame would remove,
// or -1.
func FrameIndex(set Set, excluder Excluder) int {
	if ix, ok := excluder.(indexer); ok {
		return ix.Index(set)
	}

	for i, o := range set {
		if excluder.ShouldExclude(o, set) {
			return i
		}
	}
	return -1
}
