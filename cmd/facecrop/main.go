package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pictora/facecrop/internal/config"
	"github.com/pictora/facecrop/internal/utils"
	"github.com/pictora/facecrop/pkg/client"
	"github.com/pictora/facecrop/pkg/cropplan"
	"github.com/pictora/facecrop/pkg/detection"
	"github.com/pictora/facecrop/pkg/geometry"
	"github.com/pictora/facecrop/pkg/llamacpp"
	"github.com/pictora/facecrop/pkg/ollama"
	"github.com/pictora/facecrop/pkg/processing"
	"github.com/pictora/facecrop/pkg/resolution"
)

// configFlagValue pre-scans the arguments for -config so the file can be
// loaded before the flag set is built. File values become the flag defaults;
// explicit flags still win.
func configFlagValue(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		for len(arg) > 0 && arg[0] == '-' {
			arg = arg[1:]
		}
		if arg == "config" && i+1 < len(args) {
			return args[i+1]
		}
		const prefix = "config="
		if len(arg) > len(prefix) && arg[:len(prefix)] == prefix {
			return arg[len(prefix):]
		}
	}
	return ""
}

func main() {
	defaults := config.Default()
	urlDefault := ""
	configPath := configFlagValue(os.Args[1:])
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := loaded.Validate(); err != nil {
			log.Fatal(err)
		}
		defaults = loaded
		urlDefault = loaded.Detector.URL
	}

	var in, outDir, model, url, backend, ext string
	var quality int
	var lossless bool
	var sendFmt string
	var sendSize int
	var sendQ int
	var zoom float64
	var algoName, reduceName string
	var debug bool

	flag.StringVar(&in, "in", "", "input image path or URL (jpg/png/webp)")
	flag.StringVar(&outDir, "out", defaults.Output.OutputDir, "output directory")
	flag.StringVar(&model, "model", defaults.Detector.Model, "vision model name")
	flag.StringVar(&backend, "backend", defaults.Detector.Backend, "backend to use: ollama or llamacpp")
	flag.StringVar(&url, "url", urlDefault, "server URL (defaults: ollama=http://localhost:11434, llamacpp=http://localhost:8080)")

	flag.StringVar(&ext, "ext", defaults.Output.Format, "output format for crops: jpg|png|webp")
	flag.IntVar(&quality, "quality", defaults.Output.Quality, "JPEG/WebP output quality for crops (1-100)")
	flag.BoolVar(&lossless, "lossless", defaults.Output.Lossless, "WebP output lossless mode for crops")

	flag.StringVar(&sendFmt, "sendfmt", defaults.Detector.SendFormat, "format sent to the detector: jpg|png")
	flag.IntVar(&sendSize, "sendsize", defaults.Detector.SendMaxDim, "max long side sent to the detector (px), 0=original")
	flag.IntVar(&sendQ, "sendq", defaults.Detector.SendQuality, "JPEG quality for image sent to the detector (1-100)")

	flag.Float64Var(&zoom, "zoom", defaults.Planner.Zoom, "zoom factor for the centered planner (1=none, >1 tightens)")
	flag.StringVar(&algoName, "algo", defaults.Planner.Algorithm, "crop algorithm: corner|center")
	flag.StringVar(&reduceName, "reduce", defaults.Detector.ReduceMode, "multi-face reduction: enclose|largest")
	flag.StringVar(&configPath, "config", configPath, "config file whose values become the flag defaults (explicit flags still win)")
	flag.BoolVar(&debug, "debug", false, "create debug overlay images")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in input.jpg|URL [-backend ollama|llamacpp] [-url server_url] [-out outdir] [-algo corner|center] [-zoom 1.2]", filepath.Base(os.Args[0]))
	}

	cfg := defaults

	algo, err := cropplan.ParseAlgorithm(algoName)
	if err != nil {
		log.Fatal(err)
	}
	reduce, err := detection.ParseReduceMode(reduceName)
	if err != nil {
		log.Fatal(err)
	}

	catalog := make(resolution.Catalog, 0, len(cfg.Catalog))
	for _, s := range cfg.Catalog {
		catalog = append(catalog, resolution.Resolution{Width: s.Width, Height: s.Height})
	}

	if err := utils.EnsureDir(outDir); err != nil {
		log.Fatal(err)
	}

	processor := processing.NewProcessor()

	var faceClient client.FaceClient
	switch backend {
	case "ollama":
		if url == "" {
			url = "http://localhost:11434"
		}
		faceClient, err = ollama.NewClient(url)
		if err != nil {
			log.Fatalf("Failed to create Ollama client: %v", err)
		}
	case "llamacpp":
		if url == "" {
			url = "http://localhost:8080"
		}
		faceClient, err = llamacpp.NewClient(url)
		if err != nil {
			log.Fatalf("Failed to create llama.cpp client: %v", err)
		}
	default:
		log.Fatalf("Unknown backend: %s (use 'ollama' or 'llamacpp')", backend)
	}

	detector := detection.NewDetector(faceClient)

	// Load input image (from file or URL)
	img, err := processor.LoadImageSmart(in)
	if err != nil {
		log.Fatal(err)
	}
	if err := processor.ValidateImage(img, cfg.Planner.MinImageSize); err != nil {
		log.Fatal(err)
	}
	info := processor.GetImageInfo(img)
	fullSize := geometry.Vec2{X: float64(info.Width), Y: float64(info.Height)}
	log.Printf("input %dx%d (ratio %.3f)", info.Width, info.Height, info.AspectRatio)

	// The detector sees a downscaled copy; its boxes come back in that
	// frame and are rescaled into the full-resolution frame below.
	imgB64, detFrame, err := processor.PrepareImageForDetector(img, sendFmt, sendSize, sendQ)
	if err != nil {
		log.Fatal(err)
	}

	faces, desc, err := detector.DetectFaces(context.Background(), model, imgB64, detFrame)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("detector: %d face(s), %q", len(faces), desc)

	for i := range faces {
		faces[i] = geometry.Rescale(faces[i], detFrame, fullSize)
	}

	roi, err := detection.RegionOfInterest(faces, reduce)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("region of interest: (%.0f,%.0f)-(%.0f,%.0f)", roi.X1, roi.Y1, roi.X2, roi.Y2)

	best := catalog.Closest(info.Width, info.Height)

	// Produce one crop per catalog entry; the best-matching one is what the
	// synthesis request would use.
	for _, res := range catalog {
		region, err := cropplan.Plan(algo, info.Width, info.Height, roi, res.AspectRatio(), zoom)
		if err != nil {
			log.Printf("plan %dx%d failed: %v", res.Width, res.Height, err)
			continue
		}

		cropped, err := processor.ApplyRegion(img, region)
		if err != nil {
			log.Printf("crop %dx%d failed: %v", res.Width, res.Height, err)
			continue
		}
		final := processor.FitToResolution(cropped, res)

		suffix := fmt.Sprintf("%dx%d", res.Width, res.Height)
		if res == best {
			suffix += "_best"
		}
		outPath := utils.OutputFilename(in, outDir, suffix, ext)
		if err := processor.SaveImage(final, outPath, ext, quality, lossless); err != nil {
			log.Printf("save %s failed: %v", outPath, err)
			continue
		}
		log.Printf("wrote %s (region %+v)", outPath, region)

		if debug {
			overlay := processor.CreateDebugOverlay(img, roi, region)
			dbgPath := utils.OutputFilename(in, outDir, "debug_"+suffix, "png")
			if err := processor.SaveImage(overlay, dbgPath, "png", quality, false); err != nil {
				log.Printf("debug save %s failed: %v", dbgPath, err)
			} else {
				log.Printf("wrote %s", dbgPath)
			}
		}
	}

	// Save raw detection output for inspection
	report := struct {
		Faces       []geometry.BBox       `json:"faces"`
		Description string                `json:"description"`
		Best        resolution.Resolution `json:"best_resolution"`
	}{faces, desc, best}
	js, _ := json.MarshalIndent(report, "", "  ")
	_ = os.WriteFile(filepath.Join(outDir, "detection.json"), js, 0o644)
}
