package scene

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format, 4 bytes per pixel. Row order depends on how the
	// texture was decoded; see DecodeTexture.
	Pixels []byte
	GLID   uint32
}

// LoadTexture reads an image file and converts it to RGBA8 with the bottom
// row first, the order OpenGL expects for texture coordinates with v up.
func LoadTexture(path string) (*Texture, error) {
	return loadTexture(path, true)
}

func loadTexture(path string, flipY bool) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()
	return DecodeTexture(path, f, flipY)
}

// DecodeTexture decodes any registered image format (png, jpeg, gif, bmp,
// tiff, webp). With flipY the rows are stored bottom-up.
func DecodeTexture(name string, r io.Reader, flipY bool) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	return textureFromImage(name, img, flipY), nil
}

func textureFromImage(name string, img image.Image, flipY bool) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	if flipY {
		flipRows(rgba)
	}
	return &Texture{
		Name:   name,
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: rgba.Pix,
	}
}

func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bot := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}

// CubeFaces are the skybox face names, in the order of GL_TEXTURE_CUBE_MAP_POSITIVE_X + i.
var CubeFaces = [6]string{"right", "left", "top", "bottom", "front", "back"}

// LoadCubeFaces decodes six skybox faces, unflipped. Faces whose size differs
// from the first are resampled to match, since a cubemap needs square faces
// of one size.
func LoadCubeFaces(paths [6]string) ([6]*Texture, error) {
	var faces [6]*Texture
	var imgs [6]image.Image
	for i, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return faces, fmt.Errorf("open cube face %s: %w", CubeFaces[i], err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return faces, fmt.Errorf("decode cube face %s: %w", CubeFaces[i], err)
		}
		imgs[i] = img
	}

	size := imgs[0].Bounds().Dx()
	if h := imgs[0].Bounds().Dy(); h < size {
		size = h
	}
	for i, img := range imgs {
		b := img.Bounds()
		if b.Dx() != size || b.Dy() != size {
			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
			img = dst
		}
		faces[i] = textureFromImage(paths[i], img, false)
	}
	return faces, nil
}
