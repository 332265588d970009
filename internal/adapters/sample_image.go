package adapters

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rentaldesk/internal/ports"
)

const (
	sampleImageWidth  = 400
	sampleImageHeight = 300
)

type SampleImageAdapter struct{}

func NewSampleImageAdapter() SampleImageAdapter {
	return SampleImageAdapter{}
}

func (a SampleImageAdapter) WriteSampleImage(path string, hexColor string) error {
	fill, err := parseHexColor(hexColor)
	if err != nil {
		return err
	}
	img := image.NewRGBA(image.Rect(0, 0, sampleImageWidth, sampleImageHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: fill}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode sample image").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create image directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write sample image").
			WithCause(err)
	}
	return nil
}

func parseHexColor(value string) (color.RGBA, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.RGBA{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid colour %q", value))
	}
	rgb, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.RGBA{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid colour %q", value)).
			WithCause(err)
	}
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}, nil
}

var _ ports.SampleImagePort = SampleImageAdapter{}
