package processor

import (
	"bytes"
	"image"
	"image/png"
	"io"
)

var pngEncoder = png.Encoder{CompressionLevel: png.DefaultCompression}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return pngEncoder.Encode(w, img)
}

// EncodePNGBytes encodes img fully in memory so a failed encode never
// leaves a truncated file behind.
func EncodePNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
