package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"artspace/internal/api"
)

var (
	ErrUnsupportedImage = errors.New("only PNG and JPEG images can be uploaded")
	ErrImageTooLarge    = errors.New("image dimensions are too large")
)

// MaxPixels bounds width*height of an upload before it is decoded.
const MaxPixels = 50_000_000

// Upload is one file picked in an admin form.
type Upload struct {
	Filename string
	Body     io.Reader
}

// UploadService re-encodes images before handing them to the backend so
// oversized photos never leave the server as-is.
type UploadService struct {
	API      *api.Client
	MaxWidth uint
}

func NewUploadService(c *api.Client, maxWidth uint) *UploadService {
	return &UploadService{API: c, MaxWidth: maxWidth}
}

// Upload stores the image and returns the backend's URL for it.
func (s *UploadService) Upload(ctx context.Context, u Upload) (string, error) {
	raw, err := io.ReadAll(u.Body)
	if err != nil {
		return "", err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", ErrImageTooLarge
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	if s.MaxWidth > 0 && uint(img.Bounds().Dx()) > s.MaxWidth {
		img = resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}

	var out struct {
		URL string `json:"url"`
	}
	name := uuid.NewString() + ".jpg"
	if err := s.API.Upload(ctx, "/upload/image", "file", name, &buf, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", &api.Error{Message: api.MsgMalformed}
	}
	return out.URL, nil
}
