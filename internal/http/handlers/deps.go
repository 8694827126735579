package handlers

import (
	"artspace/internal/api"
	"artspace/internal/repos"
	"artspace/internal/services"
)

type Deps struct {
	Pages *Pages
	Auth  *services.AuthService

	AuthHandler      *AuthHandler
	HomeHandler      *HomeHandler
	GalleryHandler   *GalleryHandler
	ProductHandler   *ProductHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	InventoryHandler *InventoryHandler
	AdminHandler     *AdminHandler
}

// NewDeps wires every page handler over one visitor store and one backend client.
func NewDeps(store repos.Store, client *api.Client, uploadMaxWidth uint, cookieSecure bool) *Deps {
	cartRepo := repos.NewCartRepo(store)
	sessionRepo := repos.NewSessionRepo(store)
	noticeRepo := repos.NewNoticeRepo(store)

	authSvc := services.NewAuthService(client, sessionRepo)
	cartSvc := services.NewCartService(cartRepo)
	productSvc := services.NewProductService(client)
	orderSvc := services.NewOrderService(client)
	uploadSvc := services.NewUploadService(client, uploadMaxWidth)
	settingsSvc := services.NewSettingsService(client, uploadSvc)
	checkoutSvc := services.NewCheckoutService(cartSvc, orderSvc)
	invSvc := services.NewInventoryService(productSvc, uploadSvc)

	pages := &Pages{Cart: cartSvc, Notices: noticeRepo, CookieSecure: cookieSecure}

	return &Deps{
		Pages:            pages,
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Pages: pages, Auth: authSvc},
		HomeHandler:      &HomeHandler{Pages: pages, Settings: settingsSvc},
		GalleryHandler:   &GalleryHandler{Pages: pages, Products: productSvc},
		ProductHandler:   &ProductHandler{Pages: pages, Products: productSvc},
		CartHandler:      &CartHandler{Pages: pages, Cart: cartSvc, Products: productSvc},
		OrderHandler:     &OrderHandler{Pages: pages, Checkout: checkoutSvc, Orders: orderSvc},
		InventoryHandler: &InventoryHandler{Pages: pages, Inventory: invSvc},
		AdminHandler:     &AdminHandler{Pages: pages, Orders: orderSvc, Settings: settingsSvc},
	}
}
