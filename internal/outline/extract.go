package outline

import (
	"particle-meter/internal/models"
	"particle-meter/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Extract traces every boundary in a binary image. Non-zero pixels are
// objects; both outer borders and the borders of holes inside them are
// returned (two-level hierarchy). Straight runs are compressed to their end
// points. An image without any boundary yields an empty Set.
func Extract(binary *safe.Mat) (Set, error) {
	if err := safe.ValidateSingleChannel(binary, "Extract"); err != nil {
		return nil, &models.OpError{Op: "extract_outlines", Kind: models.KindInvalidImage, Err: err}
	}

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	contours := gocv.FindContoursWithParams(binary.GetMat(), &hierarchy, gocv.RetrievalCComp, gocv.ChainApproxSimple)
	defer contours.Close()

	set := make(Set, 0, contours.Size())
	for _, pts := range contours.ToPoints() {
		set = append(set, Outline(pts))
	}

	return set, nil
}
