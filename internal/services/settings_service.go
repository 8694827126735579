package services

import (
	"context"
	"net/http"

	"artspace/internal/api"
	"artspace/internal/domain"
)

type SettingsService struct {
	API     *api.Client
	Uploads *UploadService
}

func NewSettingsService(c *api.Client, uploads *UploadService) *SettingsService {
	return &SettingsService{API: c, Uploads: uploads}
}

// Home returns the landing page images, always with four featured slots.
func (s *SettingsService) Home(ctx context.Context) (domain.HomeSettings, error) {
	var h domain.HomeSettings
	if err := s.API.Do(ctx, api.Call{Method: http.MethodGet, Path: "/settings/home", Out: &h}); err != nil {
		return domain.HomeSettings{}, err
	}
	return h.Normalize(), nil
}

func (s *SettingsService) SaveHome(ctx context.Context, h domain.HomeSettings) error {
	return s.API.Do(ctx, api.Call{Method: http.MethodPut, Path: "/settings/home", Body: h.Normalize()})
}

// Slot is one image position in the settings form: a pasted URL and an
// optional picked file.
type Slot struct {
	URL  string
	File *Upload
}

// Apply uploads picked files, resolves every slot against current and saves.
func (s *SettingsService) Apply(ctx context.Context, current domain.HomeSettings, hero Slot, featured []Slot) (domain.HomeSettings, error) {
	current = current.Normalize()
	next := domain.HomeSettings{FeaturedImageURLs: make([]string, domain.FeaturedSlots)}

	var err error
	if next.HeroImageURL, err = s.resolve(ctx, current.HeroImageURL, hero); err != nil {
		return current, err
	}
	for i := range domain.FeaturedSlots {
		var slot Slot
		if i < len(featured) {
			slot = featured[i]
		}
		if next.FeaturedImageURLs[i], err = s.resolve(ctx, current.FeaturedImageURLs[i], slot); err != nil {
			return current, err
		}
	}
	if err := s.SaveHome(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

func (s *SettingsService) resolve(ctx context.Context, current string, slot Slot) (string, error) {
	var uploaded string
	if slot.File != nil {
		url, err := s.Uploads.Upload(ctx, *slot.File)
		if err != nil {
			return "", err
		}
		uploaded = url
	}
	return domain.PickImage(current, domain.Uploaded(uploaded), domain.External(slot.URL)), nil
}
