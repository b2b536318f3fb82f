package processor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestDecode_Formats(t *testing.T) {
	src := gradient(32, 24)

	var pngBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, jpeg.Encode(&jpegBuf, src, &jpeg.Options{Quality: 90}))

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"png", pngBuf.Bytes(), "png"},
		{"jpeg", jpegBuf.Bytes(), "jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(bytes.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.format, got.Format)
			assert.Equal(t, 32, got.Width())
			assert.Equal(t, 24, got.Height())
		})
	}
}

func TestDecode_RejectsText(t *testing.T) {
	_, err := Decode(strings.NewReader("this is not an image\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, gradient(16, 16)))
	require.NoError(t, f.Close())

	src, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)

	_, err = DecodeFile(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResamplers_ExactSize(t *testing.T) {
	src := gradient(64, 64)

	for _, name := range []string{ResamplerLanczos, ResamplerImaging, ResamplerCatmullRom} {
		r, err := NewResampler(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())

		for _, size := range []int{1, 20, 29, 64, 87, 180} {
			out, err := r.Resample(src, size, size)
			require.NoError(t, err, "%s %d", name, size)
			assert.Equal(t, size, out.Bounds().Dx(), "%s width", name)
			assert.Equal(t, size, out.Bounds().Dy(), "%s height", name)
		}
	}
}

func TestResamplers_RejectNonPositive(t *testing.T) {
	for _, r := range []Resampler{LanczosResampler{}, ImagingResampler{}, CatmullRomResampler{}} {
		_, err := r.Resample(gradient(8, 8), 0, 8)
		assert.Error(t, err, r.Name())
		_, err = r.Resample(gradient(8, 8), 8, -1)
		assert.Error(t, err, r.Name())
	}
}

func TestNewResampler_Default(t *testing.T) {
	r, err := NewResampler("")
	require.NoError(t, err)
	assert.Equal(t, ResamplerLanczos, r.Name())

	_, err = NewResampler("bicubic")
	assert.Error(t, err)
}

func TestResample_DoesNotMutateSource(t *testing.T) {
	src := gradient(32, 32)
	before := append([]uint8(nil), src.Pix...)

	for _, r := range []Resampler{LanczosResampler{}, ImagingResampler{}, CatmullRomResampler{}} {
		_, err := r.Resample(src, 16, 16)
		require.NoError(t, err)
	}
	assert.Equal(t, before, src.Pix)
}

func TestClone_Independent(t *testing.T) {
	src := gradient(8, 8)
	dup, ok := Clone(src).(*image.NRGBA)
	require.True(t, ok)

	dup.Set(0, 0, color.NRGBA{A: 0})
	assert.NotEqual(t, src.NRGBAAt(0, 0), dup.NRGBAAt(0, 0))
	assert.Equal(t, src.Bounds(), dup.Bounds())
}

func gray16(w, h int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(x*200 + y*3 + 7)})
		}
	}
	return img
}

// sixteenBit reports whether any channel holds a value an 8-bit image
// cannot represent.
func sixteenBit(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r%0x101 != 0 || g%0x101 != 0 || bl%0x101 != 0 {
				return true
			}
		}
	}
	return false
}

func TestClone_KeepsSixteenBitPrecision(t *testing.T) {
	src := gray16(300, 120)

	dup, ok := Clone(src).(*image.NRGBA64)
	require.True(t, ok, "16-bit source clones to NRGBA64")
	assert.Equal(t, image.Rect(0, 0, 300, 120), dup.Bounds())
	for _, p := range []image.Point{{0, 0}, {17, 5}, {299, 119}} {
		want := src.Gray16At(p.X, p.Y).Y
		assert.Equal(t, want, dup.NRGBA64At(p.X, p.Y).R, "pixel %v", p)
	}

	sub := src.SubImage(image.Rect(10, 20, 40, 50))
	moved := Clone(sub)
	assert.Equal(t, image.Rect(0, 0, 30, 30), moved.Bounds())
	assert.Equal(t, src.Gray16At(10, 20).Y, moved.(*image.NRGBA64).NRGBA64At(0, 0).R)
}

func TestResamplers_SixteenBitSource(t *testing.T) {
	src := Clone(gray16(300, 120))

	for _, r := range []Resampler{LanczosResampler{}, CatmullRomResampler{}} {
		out, err := r.Resample(src, 150, 60)
		require.NoError(t, err, r.Name())
		assert.Equal(t, image.Rect(0, 0, 150, 60), out.Bounds(), r.Name())
		assert.True(t, sixteenBit(out), "%s keeps 16-bit output", r.Name())
	}

	out, err := ImagingResampler{}.Resample(src, 20, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Bounds().Dx())
}

func TestEncodePNGBytes_RoundTrip(t *testing.T) {
	data, err := EncodePNGBytes(gradient(20, 20))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
}
