package services

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	_ "image/gif"

	"github.com/dustin/go-humanize"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxImageUploadSize = 15 * 1024 * 1024 // 15MB
	// MaxImageEdge bounds the longest side kept in the document; larger photos are downscaled
	MaxImageEdge = 2400
	JPEGQuality  = 85
	// MaxImagePixels bounds the decoded size; a small compressed file can expand to gigabytes
	MaxImagePixels = 50_000_000
)

var (
	ErrImageTooLarge       = fmt.Errorf("image exceeds maximum allowed size of %s", humanize.IBytes(MaxImageUploadSize))
	ErrUnsupportedImage    = errors.New("only PNG, JPEG, GIF and WebP images are allowed")
	ErrImageUploadRequired = errors.New("image file required")
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageUpload is an uploaded photo encoded for embedding in the document
type ImageUpload struct {
	DataURI  string
	MimeType string
	Width    int
	Height   int
	Size     int64
}

// IsImageDataURI reports whether s is an inline image of an allowed type.
// Slot images must never point at remote URLs the PDF renderer would fetch.
func IsImageDataURI(s string) bool {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return false
	}
	mediaType, _, ok := strings.Cut(rest, ",")
	if !ok {
		return false
	}
	mimeType, _, _ := strings.Cut(mediaType, ";")
	return allowedImageTypes[strings.ToLower(mimeType)]
}

// ImageFromUpload validates a multipart image and returns it as a data URI
func ImageFromUpload(fileHeader *multipart.FileHeader) (*ImageUpload, error) {
	if fileHeader == nil {
		return nil, ErrImageUploadRequired
	}
	if fileHeader.Size > MaxImageUploadSize {
		return nil, ErrImageTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	return ImageFromReader(file)
}

// ImageFromReader reads at most MaxImageUploadSize bytes and encodes them as a data URI.
// Photos with an edge above MaxImageEdge are downscaled and re-encoded.
func ImageFromReader(r io.Reader) (*ImageUpload, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > MaxImageUploadSize {
		return nil, ErrImageTooLarge
	}
	if len(data) == 0 {
		return nil, ErrImageUploadRequired
	}

	mimeType := http.DetectContentType(data)
	if !allowedImageTypes[mimeType] {
		return nil, ErrUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxImagePixels {
		return nil, ErrImageTooLarge
	}

	width, height := cfg.Width, cfg.Height
	if width > MaxImageEdge || height > MaxImageEdge {
		data, mimeType, width, height, err = downscaleImage(data, mimeType)
		if err != nil {
			return nil, err
		}
	}

	return &ImageUpload{
		DataURI:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
		Width:    width,
		Height:   height,
		Size:     int64(len(data)),
	}, nil
}

// downscaleImage fits the image inside MaxImageEdge. PNGs stay PNG to keep transparency,
// everything else becomes JPEG.
func downscaleImage(data []byte, mimeType string) ([]byte, string, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	targetW, targetH := fitWithin(img.Bounds().Dx(), img.Bounds().Dy(), MaxImageEdge)
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if mimeType == "image/png" {
		err = png.Encode(&buf, dst)
	} else {
		mimeType = "image/jpeg"
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), mimeType, targetW, targetH, nil
}

func fitWithin(w, h, edge int) (int, int) {
	if w <= edge && h <= edge {
		return w, h
	}
	if w >= h {
		return edge, max(1, h*edge/w)
	}
	return max(1, w*edge/h), edge
}
