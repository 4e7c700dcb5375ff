package detection

import (
	"context"
	"fmt"

	"github.com/pictora/facecrop/pkg/client"
	"github.com/pictora/facecrop/pkg/geometry"
)

// SimpleTestPrompt for testing if the model can see images
const SimpleTestPrompt = `What do you see in this image? Describe it briefly.`

// DefaultPrompt is the default prompt for face detection
const DefaultPrompt = `You are a face locator.

Return JSON only:
{
  "faces": [
    {"box": {"x": 0.0, "y": 0.0, "w": 0.0, "h": 0.0}, "confidence": 0.0}
  ],
  "description": "short neutral sentence (≤ 20 words)"
}

HARD RULES
- All coordinates are normalized to [0,1] (NOT pixels).
- Return one entry per clearly visible human face, tightly boxed around the
  head including hair and chin.
- Sort faces by confidence, highest first.
- Description must be brief and factual. Do not guess real identities.
- If no face is visible, return: {"faces": [], "description": "no face visible"}
- JSON only. No markdown, no code fences, no comments, no trailing commas.`

// ReduceMode selects how a multi-face detection collapses to the single
// region of interest the crop planner works with.
type ReduceMode int

const (
	// ReduceEnclose uses the smallest box containing every detected face.
	ReduceEnclose ReduceMode = iota
	// ReduceLargest uses the face with the largest area.
	ReduceLargest
)

// ParseReduceMode maps a mode name to its ReduceMode.
func ParseReduceMode(name string) (ReduceMode, error) {
	switch name {
	case "enclose", "all":
		return ReduceEnclose, nil
	case "largest", "primary":
		return ReduceLargest, nil
	default:
		return 0, fmt.Errorf("unknown reduce mode %q (use enclose or largest)", name)
	}
}

// Detector locates faces using a vision model client.
type Detector struct {
	client client.FaceClient
}

// NewDetector creates a new detector with a face client
func NewDetector(client client.FaceClient) *Detector {
	return &Detector{client: client}
}

// DetectFaces asks the vision model for face boxes and converts them into
// pixel coordinates of the submitted frame. Boxes are clamped into the frame
// and degenerate boxes are dropped. An image without any visible face yields
// an empty slice, not an error; RegionOfInterest is where that becomes one.
func (d *Detector) DetectFaces(ctx context.Context, model, imageB64 string, frame geometry.Vec2) ([]geometry.BBox, string, error) {
	result, err := d.client.DetectFaces(ctx, model, DefaultPrompt, imageB64)
	if err != nil {
		return nil, "", err
	}

	faces := make([]geometry.BBox, 0, len(result.Faces))
	for _, f := range result.Faces {
		b := geometry.BBox{
			X1: f.Box.X * frame.X,
			Y1: f.Box.Y * frame.Y,
			X2: (f.Box.X + f.Box.W) * frame.X,
			Y2: (f.Box.Y + f.Box.H) * frame.Y,
		}
		b = b.Clip(frame.X, frame.Y)
		if b.Area() == 0 {
			continue
		}
		faces = append(faces, b)
	}

	return faces, result.Description, nil
}

// TestVision tests if the model can actually see the image with a simple prompt
func (d *Detector) TestVision(ctx context.Context, model, imageB64 string) (string, error) {
	return d.client.SimpleQuery(ctx, model, SimpleTestPrompt, imageB64)
}

// RegionOfInterest reduces a face list to the single box the crop planner
// positions around. An empty list is an error here, deliberately: letting
// the empty-reduction sentinel flow into the planners would only fail later
// and further from the cause.
func RegionOfInterest(faces []geometry.BBox, mode ReduceMode) (geometry.BBox, error) {
	if len(faces) == 0 {
		return geometry.BBox{}, fmt.Errorf("no faces detected")
	}

	switch mode {
	case ReduceEnclose:
		return geometry.Enclosing(faces), nil
	case ReduceLargest:
		best := faces[0]
		for _, f := range faces[1:] {
			if f.Area() > best.Area() {
				best = f
			}
		}
		return best, nil
	default:
		return geometry.BBox{}, fmt.Errorf("unknown reduce mode %d", mode)
	}
}
