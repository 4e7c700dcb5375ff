// Package processing holds the pixel-level collaborators of the crop
// planner: image IO, the downscale sent to the face locator, the actual
// crop, and the final fit to a synthesis resolution. All coordinate math
// stays in pkg/geometry and pkg/cropplan; this package only moves pixels.
package processing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/pictora/facecrop/pkg/cropplan"
	"github.com/pictora/facecrop/pkg/geometry"
	"github.com/pictora/facecrop/pkg/resolution"
)

// Processor handles image loading, cropping and saving.
type Processor struct{}

// NewProcessor creates a new image processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadImageFromURL downloads and loads an image from a URL.
func (p *Processor) LoadImageFromURL(imageURL string) (image.Image, error) {
	parsedURL, err := url.Parse(imageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsedURL.Scheme)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	req, err := http.NewRequest("GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("User-Agent", "FaceCrop/1.0 (+https://github.com/pictora/facecrop)")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("URL does not point to an image (Content-Type: %s)", contentType)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %v", err)
	}

	return p.decodeImageFromBytes(imageData)
}

// LoadImage loads an image from a file path with WebP support.
func (p *Processor) LoadImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	low := strings.ToLower(path)
	if strings.Contains(low, ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
	}
	if _, err := f.Seek(0, 0); err == nil {
		if img, _, err := image.Decode(f); err == nil {
			return img, nil
		}
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// LoadImageSmart loads an image from either a file path or URL.
func (p *Processor) LoadImageSmart(source string) (image.Image, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return p.LoadImageFromURL(source)
	}
	return p.LoadImage(source)
}

// decodeImageFromBytes decodes an image from byte data with WebP support.
func (p *Processor) decodeImageFromBytes(data []byte) (image.Image, error) {
	reader := bytes.NewReader(data)
	if img, _, err := image.Decode(reader); err == nil {
		return img, nil
	}

	reader = bytes.NewReader(data)
	if img, err := webp.Decode(reader); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// DownscaleToFit resizes the image so its longer side is at most maxDim,
// preserving the aspect ratio. Returns the original image unchanged when it
// already fits. The second return value is the resulting size, which callers
// feed to geometry.Rescale to carry detection boxes back into the
// full-resolution frame.
func (p *Processor) DownscaleToFit(img image.Image, maxDim int) (image.Image, geometry.Vec2) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img, geometry.Vec2{X: float64(w), Y: float64(h)}
	}
	var resized image.Image
	if w >= h {
		resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
	}
	rb := resized.Bounds()
	return resized, geometry.Vec2{X: float64(rb.Dx()), Y: float64(rb.Dy())}
}

// PrepareImageForDetector downscales and encodes an image as base64 for the
// face-locator model. maxDim bounds the longer side; 0 keeps the original
// size. Format is "png" or jpeg otherwise. The returned size is the size of
// the encoded image, the coordinate frame the detector's boxes come back in.
func (p *Processor) PrepareImageForDetector(img image.Image, format string, maxDim, quality int) (string, geometry.Vec2, error) {
	prepared, size := p.DownscaleToFit(img, maxDim)

	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, prepared); err != nil {
			return "", geometry.Vec2{}, err
		}
	default: // jpg
		if err := jpeg.Encode(&buf, prepared, &jpeg.Options{Quality: quality}); err != nil {
			return "", geometry.Vec2{}, err
		}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), size, nil
}

// ApplyRegion cuts the planned crop window out of the image. The centered
// planner may legitimately hand over a window reaching past the image edge;
// this is where it gets clamped, by intersecting with the image bounds.
func (p *Processor) ApplyRegion(img image.Image, region cropplan.Region) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rect(
		bounds.Min.X+region.Left,
		bounds.Min.Y+region.Top,
		bounds.Min.X+region.Left+region.Width,
		bounds.Min.Y+region.Top+region.Height,
	).Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("crop region %+v is outside the image bounds", region)
	}
	return imaging.Crop(img, rect), nil
}

// FitToResolution resizes an image to exactly the given synthesis
// resolution, center-cropping away any leftover ratio mismatch from
// rounding.
func (p *Processor) FitToResolution(img image.Image, res resolution.Resolution) image.Image {
	return imaging.Fill(img, res.Width, res.Height, imaging.Center, imaging.Lanczos)
}

// SaveImage saves an image to a file with the specified format and quality.
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	default: // jpg/jpeg
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	}
}

// CreateDebugOverlay draws the detected face box and the planned crop window
// on a copy of the image. Both boxes are in the image's own pixel frame.
func (p *Processor) CreateDebugOverlay(img image.Image, face geometry.BBox, region cropplan.Region) image.Image {
	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	green := color.NRGBA{0, 255, 0, 255}  // face box
	gold := color.NRGBA{255, 204, 0, 255} // crop window
	red := color.NRGBA{255, 0, 0, 255}    // face center

	stroke := int(math.Max(2, 0.004*float64(minInt(w, h))))
	cross := int(math.Max(4, 0.01*float64(minInt(w, h))))

	if !face.IsEmptySentinel() {
		drawBox(nrgba, face, green, stroke)

		c := face.Center()
		px := int(c.X + 0.5)
		py := int(c.Y + 0.5)
		drawHLine(nrgba, py, px-cross, px+cross, red)
		drawVLine(nrgba, px, py-cross, py+cross, red)
	}

	if region.Width > 0 && region.Height > 0 {
		drawBox(nrgba, region.Bounds(), gold, stroke)
	}

	return nrgba
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func drawBox(img *image.NRGBA, b geometry.BBox, c color.NRGBA, stroke int) {
	clipped := b.Clip(float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	x0 := int(clipped.X1 + 0.5)
	y0 := int(clipped.Y1 + 0.5)
	x1 := int(clipped.X2 + 0.5)
	y1 := int(clipped.Y2 + 0.5)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for s := 0; s < stroke; s++ {
		drawHLine(img, y0+s, x0, x1, c)
		drawHLine(img, y1-1-s, x0, x1, c)
		drawVLine(img, x0+s, y0, y1, c)
		drawVLine(img, x1-1-s, y0, y1, c)
	}
}

func drawHLine(img *image.NRGBA, y, x0, x1 int, c color.NRGBA) {
	if y < 0 || y >= img.Bounds().Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x1 <= 0 || x0 >= img.Bounds().Dx() {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 > img.Bounds().Dx() {
		x1 = img.Bounds().Dx()
	}
	i := y*img.Stride + x0*4
	for x := x0; x < x1; x++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += 4
	}
}

func drawVLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if x < 0 || x >= img.Bounds().Dx() {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y1 <= 0 || y0 >= img.Bounds().Dy() {
		return
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 > img.Bounds().Dy() {
		y1 = img.Bounds().Dy()
	}
	i := y0*img.Stride + x*4
	for y := y0; y < y1; y++ {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
		i += img.Stride
	}
}
