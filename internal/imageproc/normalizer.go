package imageproc

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Decoders for the allowed upload formats beyond the stdlib set.
	_ "github.com/gen2brain/heic"
	_ "golang.org/x/image/webp"
)

const (
	// maxDimension bounds the longer side of the transmitted image.
	maxDimension = 1536

	contrastFactor  = 1.2
	sharpnessFactor = 1.3

	jpegQuality = 75
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".heic": true,
	".heif": true,
	".webp": true,
}

var ErrUnsupportedType = errors.New("unsupported file type")

// ValidateFileExtension rejects filenames without an allowed image
// extension, case-insensitively.
func ValidateFileExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !allowedExt[ext] {
		return ErrUnsupportedType
	}
	return nil
}

// Normalize decodes an uploaded image and returns transmission-ready
// JPEG bytes: orientation-corrected, bounded to maxDimension on the
// longer side, contrast- and sharpness-enhanced.
func Normalize(data []byte, filename string) ([]byte, error) {
	if err := ValidateFileExtension(filename); err != nil {
		return nil, err
	}

	// AutoOrientation applies the EXIF orientation when present and
	// silently keeps the decoded orientation when the tag is missing
	// or broken.
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	img = imaging.AdjustContrast(img, (contrastFactor-1)*100)
	img = imaging.Sharpen(img, sharpnessFactor-1)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), nil
}
