// Package imagereader decodes still images from disk into frames.
package imagereader

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/vidutil/pkg/frame"
	"github.com/user/vidutil/pkg/ports"
)

// Reader implements ports.ImageReader with the registered Go image decoders
// (png, jpeg, gif, bmp, tiff, webp). Unknown formats go to Fallback when set.
type Reader struct {
	Fallback ports.ImageReader
}

// New creates a Reader with an optional fallback.
func New(fallback ports.ImageReader) *Reader {
	return &Reader{Fallback: fallback}
}

// ReadImage decodes the image at path into a 3-channel RGB frame.
func (r *Reader) ReadImage(path string) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if errors.Is(err, image.ErrFormat) && r.Fallback != nil {
		return r.Fallback.ReadImage(path)
	}
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	return frame.FromImage(img), nil
}

var _ ports.ImageReader = (*Reader)(nil)
