package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

// Categories offered by the gallery filter and the inventory editor.
var Categories = []string{"Abstract", "Landscape", "Portrait", "Still Life", "Modern"}

// CategoryAll is the gallery's "no filter" choice; it is never sent upstream.
const CategoryAll = "All"

// Price is a VND amount. Missing, null or non-numeric JSON values decode to
// zero; values always encode as bare JSON numbers.
type Price struct{ decimal.Decimal }

func NewPrice(n int64) Price { return Price{decimal.NewFromInt(n)} }

// ParsePrice reads the editor's text representation.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, err
	}
	return Price{d}, nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		p.Decimal = decimal.Zero
		return nil
	}
	p.Decimal = d
	return nil
}

type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Price       Price  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status"`
}

func (p Product) Sold() bool { return p.Status == StatusSold }

// ProductInput is the body of POST /products and PUT /products/{id}.
type ProductInput struct {
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Price       Price  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status"`
}

const (
	ImageUploaded = "uploaded"
	ImageExternal = "external"
)

// ImageSource says where a product or settings image came from.
type ImageSource struct {
	Kind string
	Ref  string
}

func Uploaded(ref string) ImageSource { return ImageSource{Kind: ImageUploaded, Ref: ref} }
func External(url string) ImageSource { return ImageSource{Kind: ImageExternal, Ref: url} }

func (s ImageSource) Empty() bool { return s.Kind == "" || strings.TrimSpace(s.Ref) == "" }

// PickImage chooses the image to store: an upload beats a pasted URL, and
// with neither the current value is kept.
func PickImage(current string, sources ...ImageSource) string {
	var ext string
	for _, s := range sources {
		if s.Empty() {
			continue
		}
		switch s.Kind {
		case ImageUploaded:
			return strings.TrimSpace(s.Ref)
		case ImageExternal:
			if ext == "" {
				ext = strings.TrimSpace(s.Ref)
			}
		}
	}
	if ext != "" {
		return ext
	}
	return current
}
