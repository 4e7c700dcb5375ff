package types

// Box is a normalized bounding box with coordinates in [0,1] range,
// relative to whatever image buffer was submitted to the face locator.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Face is one detected face.
type Face struct {
	Box        Box     `json:"box"`
	Confidence float64 `json:"confidence"`
}

// DetectionResult contains the complete response from the face locator.
type DetectionResult struct {
	Faces       []Face `json:"faces"`
	Description string `json:"description"`
}
