package domain

// FeaturedSlots is the number of featured images on the home page.
const FeaturedSlots = 4

type HomeSettings struct {
	HeroImageURL      string   `json:"heroImageUrl"`
	FeaturedImageURLs []string `json:"featuredImageUrls"`
}

// Normalize pads or truncates the featured list to FeaturedSlots.
func (h HomeSettings) Normalize() HomeSettings {
	out := make([]string, FeaturedSlots)
	copy(out, h.FeaturedImageURLs)
	h.FeaturedImageURLs = out
	return h
}

// DefaultHomeSettings is shown when the backend has nothing to offer.
func DefaultHomeSettings() HomeSettings {
	return HomeSettings{
		HeroImageURL: "https://images.unsplash.com/photo-1579783900882-c0d3dad7b119?w=1000",
		FeaturedImageURLs: []string{
			"https://images.unsplash.com/photo-1516905041604-7935af78f572?w=800",
			"https://images.unsplash.com/photo-1549490349-8643362247b5?w=800",
			"https://images.unsplash.com/photo-1541963463532-d68292c34b19?w=800",
			"https://images.unsplash.com/photo-1579783902614-a3fb3927b6a5?w=800",
		},
	}
}

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Kind string `json:"kind"` // success | error | info
	Text string `json:"text"`
}
