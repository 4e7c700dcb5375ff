package client

import (
	"context"
	"github.com/pictora/facecrop/pkg/types"
)

type FaceClient interface {
	SimpleQuery(ctx context.Context, model, prompt, imgB64 string) (string, error)
	DetectFaces(ctx context.Context, model, prompt, imgB64 string) (*types.DetectionResult, error)
}
