// Package facecrop turns a detected face box into a crop the image
// synthesis model can work with.
//
// The package solves a coordinate-geometry problem: a face is detected in
// one image buffer (often a downscaled copy), its bounding box has to be
// carried through resizes and crops without drifting, and the final crop
// window must hit one of the aspect ratios the synthesis model supports
// while keeping the face sensibly placed.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/pictora/facecrop"
//		"github.com/pictora/facecrop/pkg/geometry"
//	)
//
//	func main() {
//		engine := facecrop.New()
//
//		img, err := engine.LoadImage("portrait.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		// Face box from the detection collaborator, in this image's frame.
//		face := geometry.BBox{X1: 420, Y1: 180, X2: 660, Y2: 470}
//
//		result, err := engine.CropForSynthesis(img, face)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("crop %+v -> %dx%d\n", result.Region,
//			result.Resolution.Width, result.Resolution.Height)
//		if err := engine.SaveImage(result.Image, "portrait_crop.jpg"); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of four main components:
//
// 1. Geometry (pkg/geometry): bounding-box arithmetic and coordinate-space transforms
// 2. Crop planning (pkg/cropplan): the two crop-window planners
// 3. Resolution (pkg/resolution): the closest-aspect-ratio matcher
// 4. Processing (pkg/processing): the pixel-level crop/resize/IO collaborators
//
// Everything in pkg/geometry, pkg/cropplan and pkg/resolution is pure and
// stateless; calls can run concurrently without coordination.
package facecrop

import (
	"fmt"
	"image"

	"github.com/pictora/facecrop/pkg/cropplan"
	"github.com/pictora/facecrop/pkg/geometry"
	"github.com/pictora/facecrop/pkg/processing"
	"github.com/pictora/facecrop/pkg/resolution"
)

// Version of the facecrop library
const Version = "1.0.0"

// Engine provides a high-level interface for planning and applying
// face-aware crops.
type Engine struct {
	processor *processing.Processor
	catalog   resolution.Catalog
	algorithm cropplan.Algorithm
	zoom      float64
}

// New creates an Engine with the centered planner, no zoom, and the default
// resolution catalog.
func New() *Engine {
	return &Engine{
		processor: processing.NewProcessor(),
		catalog:   resolution.Default(),
		algorithm: cropplan.AlgorithmCentered,
		zoom:      1,
	}
}

// NewWithOptions creates an Engine with a specific planner, zoom factor and
// resolution catalog.
func NewWithOptions(algorithm cropplan.Algorithm, zoom float64, catalog resolution.Catalog) *Engine {
	if len(catalog) == 0 {
		catalog = resolution.Default()
	}
	return &Engine{
		processor: processing.NewProcessor(),
		catalog:   catalog,
		algorithm: algorithm,
		zoom:      zoom,
	}
}

// Result is a planned and applied synthesis crop.
type Result struct {
	// Image is the cropped pixels, fitted to Resolution.
	Image image.Image
	// Region is the planned crop window in the source image's frame.
	Region cropplan.Region
	// Face is the region of interest re-expressed in Region's frame.
	Face geometry.BBox
	// Resolution is the catalog entry the cropped image was fitted to.
	Resolution resolution.Resolution
}

// PlanCrop computes a crop window of the given aspect ratio around roi,
// using the engine's planner and zoom. Pure coordinate math; no pixels are
// touched.
func (e *Engine) PlanCrop(imageWidth, imageHeight int, roi geometry.BBox, aspectRatio float64) (cropplan.Region, error) {
	return cropplan.Plan(e.algorithm, imageWidth, imageHeight, roi, aspectRatio, e.zoom)
}

// BestResolution returns the catalog entry closest in aspect ratio to an
// imageWidth x imageHeight image.
func (e *Engine) BestResolution(imageWidth, imageHeight int) resolution.Resolution {
	return e.catalog.Closest(imageWidth, imageHeight)
}

// CropForSynthesis runs the full pipeline on one image: pick the catalog
// resolution closest to the image, plan a crop of that ratio around the
// face, cut it out, and fit the pixels to the exact synthesis size. The
// face box must be in img's coordinate frame.
func (e *Engine) CropForSynthesis(img image.Image, face geometry.BBox) (Result, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return Result{}, fmt.Errorf("invalid image dimensions")
	}

	res := e.catalog.Closest(w, h)
	region, err := e.PlanCrop(w, h, face, res.AspectRatio())
	if err != nil {
		return Result{}, fmt.Errorf("failed to plan crop: %w", err)
	}

	cropped, err := e.processor.ApplyRegion(img, region)
	if err != nil {
		return Result{}, fmt.Errorf("failed to apply crop: %w", err)
	}

	return Result{
		Image:      e.processor.FitToResolution(cropped, res),
		Region:     region,
		Face:       region.Reframe(face),
		Resolution: res,
	}, nil
}

// CropToRatio plans and applies a crop of an arbitrary aspect ratio,
// without fitting to a catalog resolution.
func (e *Engine) CropToRatio(img image.Image, face geometry.BBox, aspectRatio float64) (image.Image, cropplan.Region, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, cropplan.Region{}, fmt.Errorf("invalid image dimensions")
	}

	region, err := e.PlanCrop(w, h, face, aspectRatio)
	if err != nil {
		return nil, cropplan.Region{}, fmt.Errorf("failed to plan crop: %w", err)
	}

	cropped, err := e.processor.ApplyRegion(img, region)
	if err != nil {
		return nil, cropplan.Region{}, fmt.Errorf("failed to apply crop: %w", err)
	}
	return cropped, region, nil
}

// LoadImage loads an image from a file path or URL.
func (e *Engine) LoadImage(source string) (image.Image, error) {
	return e.processor.LoadImageSmart(source)
}

// SaveImage saves an image to a file, inferring JPEG output.
func (e *Engine) SaveImage(img image.Image, path string) error {
	return e.processor.SaveImage(img, path, "jpg", 90, false)
}

// GetImageInfo returns basic information about an image.
func (e *Engine) GetImageInfo(img image.Image) processing.ImageInfo {
	return e.processor.GetImageInfo(img)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
