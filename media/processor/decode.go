package processor

import (
	"bufio"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is a decoded image together with the format it was decoded from.
type Source struct {
	Image  image.Image
	Format string
}

// Width returns the source width in pixels.
func (s *Source) Width() int { return s.Image.Bounds().Dx() }

// Height returns the source height in pixels.
func (s *Source) Height() int { return s.Image.Bounds().Dy() }

// Decode reads a png, jpeg, gif, bmp, tiff or webp image.
func Decode(reader io.Reader) (*Source, error) {
	img, format, err := image.Decode(bufio.NewReader(reader))
	if err != nil {
		return nil, err
	}
	return &Source{Image: img, Format: format}, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}
