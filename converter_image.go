package convctl

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode support only, WEBP has no pure-Go encoder
)

const defaultJPEGQuality = 95

// imageSources are the formats the image converter can decode.
var imageSources = []Format{FormatPNG, FormatJPG, FormatGIF, FormatBMP, FormatWEBP, FormatTIF}

// imageTargets are the formats the image converter can encode.
var imageTargets = []Format{FormatPNG, FormatJPG, FormatGIF, FormatBMP, FormatTIF}

// ImageConverter re-encodes raster images between the formats the Go image
// packages handle. The target format is taken from the output path
// extension, which the executor stamps with the edge's target format.
type ImageConverter struct {
	JPEGQuality int // 1-100, zero means 95
}

func NewImageConverter() *ImageConverter {
	return &ImageConverter{JPEGQuality: defaultJPEGQuality}
}

func (c *ImageConverter) Available() bool { return true }

func (c *ImageConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	img, err := decodeImage(inputPath)
	if err != nil {
		return err
	}

	target := FormatFromPath(outputPath)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outputPath, err)
	}

	switch target {
	case FormatPNG:
		err = png.Encode(out, img)
	case FormatJPG:
		// JPEG has no alpha channel; composite onto white first.
		q := c.JPEGQuality
		if q <= 0 || q > 100 {
			q = defaultJPEGQuality
		}
		err = jpeg.Encode(out, flattenToWhite(img), &jpeg.Options{Quality: q})
	case FormatGIF:
		err = gif.Encode(out, img, nil)
	case FormatBMP:
		err = bmp.Encode(out, img)
	case FormatTIF:
		err = tiff.Encode(out, img, nil)
	default:
		out.Close()
		os.Remove(outputPath)
		return fmt.Errorf("image: no encoder for %q", target)
	}
	if err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", target, err)
	}
	return out.Close()
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// flattenToWhite composites img over a white background, dropping any
// alpha channel.
func flattenToWhite(img image.Image) image.Image {
	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)
	return flat
}
