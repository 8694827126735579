package services

import (
	"context"
	"errors"
	"strings"

	"artspace/internal/domain"
	"artspace/internal/validate"
)

var ErrBadPrice = errors.New("price must be a non-negative number")

// ProductForm is the admin editor's state. Price stays text until submit.
type ProductForm struct {
	ID          string `form:"id"`
	Title       string `form:"title" validate:"required,max=120"`
	Artist      string `form:"artist" validate:"required,max=120"`
	Price       string `form:"price" validate:"required"`
	Description string `form:"description" validate:"max=2000"`
	Category    string `form:"category" validate:"category"`
	ImageURL    string `form:"imageUrl" validate:"max=500"`
	Status      string `form:"status" validate:"status"`
}

func (f ProductForm) Editing() bool { return f.ID != "" }

func EmptyForm() ProductForm {
	return ProductForm{Category: domain.Categories[0], Status: domain.StatusAvailable}
}

// FormFromProduct pre-fills the editor, defaulting blank fields.
func FormFromProduct(p domain.Product) ProductForm {
	f := ProductForm{
		ID:          p.ID,
		Title:       p.Title,
		Artist:      p.Artist,
		Price:       p.Price.String(),
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Status:      p.Status,
	}
	if f.Category == "" {
		f.Category = domain.Categories[0]
	}
	if f.Status == "" {
		f.Status = domain.StatusAvailable
	}
	return f
}

// Input validates the form and resolves the image; uploaded is the URL of a
// freshly uploaded file, or empty.
func (f ProductForm) Input(uploaded string) (domain.ProductInput, error) {
	f.Title = strings.TrimSpace(f.Title)
	f.Artist = strings.TrimSpace(f.Artist)
	if err := validate.Struct(f); err != nil {
		return domain.ProductInput{}, err
	}
	price, err := domain.ParsePrice(f.Price)
	if err != nil || price.IsNegative() {
		return domain.ProductInput{}, ErrBadPrice
	}
	return domain.ProductInput{
		Title:       f.Title,
		Artist:      f.Artist,
		Price:       price,
		Description: f.Description,
		Category:    f.Category,
		ImageURL:    domain.PickImage("", domain.Uploaded(uploaded), domain.External(f.ImageURL)),
		Status:      f.Status,
	}, nil
}

// Stock summarises the catalogue for the admin header.
type Stock struct {
	Total, Available, Sold int
}

type InventoryService struct {
	Products *ProductService
	Uploads  *UploadService
}

func NewInventoryService(products *ProductService, uploads *UploadService) *InventoryService {
	return &InventoryService{Products: products, Uploads: uploads}
}

func (s *InventoryService) List(ctx context.Context) ([]domain.Product, Stock, error) {
	list, err := s.Products.List(ctx, Filter{})
	if err != nil {
		return nil, Stock{}, err
	}
	st := Stock{Total: len(list)}
	for _, p := range list {
		if p.Sold() {
			st.Sold++
		} else {
			st.Available++
		}
	}
	return list, st, nil
}

func (s *InventoryService) Edit(ctx context.Context, id string) (ProductForm, error) {
	p, err := s.Products.Get(ctx, id)
	if err != nil {
		return ProductForm{}, err
	}
	return FormFromProduct(p), nil
}

// Save creates or updates depending on whether the form carries an id.
// A picked file is uploaded before the product is written.
func (s *InventoryService) Save(ctx context.Context, f ProductForm, file *Upload) (domain.Product, error) {
	if _, err := f.Input(""); err != nil {
		return domain.Product{}, err
	}
	var uploaded string
	if file != nil {
		url, err := s.Uploads.Upload(ctx, *file)
		if err != nil {
			return domain.Product{}, err
		}
		uploaded = url
	}
	in, err := f.Input(uploaded)
	if err != nil {
		return domain.Product{}, err
	}
	if f.Editing() {
		return s.Products.Update(ctx, f.ID, in)
	}
	return s.Products.Create(ctx, in)
}

func (s *InventoryService) Delete(ctx context.Context, id string) error {
	return s.Products.Delete(ctx, id)
}
