package domain

const (
	PaymentCOD          = "cod"
	PaymentBankTransfer = "bank_transfer"
	PaymentVNPay        = "vnpay"
)

// PaymentMethods lists every option shown at checkout; only enabled ones
// can be submitted.
var PaymentMethods = []PaymentMethod{
	{Code: PaymentCOD, Label: "Cash on delivery", Enabled: true},
	{Code: PaymentBankTransfer, Label: "Bank transfer"},
	{Code: PaymentVNPay, Label: "VNPay"},
}

type PaymentMethod struct {
	Code    string
	Label   string
	Enabled bool
}

// NormalizePayment maps anything not enabled to cash on delivery.
func NormalizePayment(code string) string {
	for _, m := range PaymentMethods {
		if m.Code == code && m.Enabled {
			return code
		}
	}
	return PaymentCOD
}

// Order statuses as reported by the backend.
var OrderStatuses = []string{"pending", "confirmed", "shipping", "delivered", "cancelled"}
var PaymentStatuses = []string{"pending", "paid", "failed"}

type OrderItem struct {
	ProductID       string `json:"productId"`
	ProductTitle    string `json:"productTitle"`
	ProductImageURL string `json:"productImageUrl"`
	Price           Price  `json:"price"`
	Quantity        int    `json:"quantity"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	District string `json:"district"`
	Note     string `json:"note"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     Price           `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PaymentMethod   string          `json:"paymentMethod"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId,omitempty"`
	Username        string          `json:"username,omitempty"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     Price           `json:"totalAmount"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	CreatedAt       string          `json:"createdAt,omitempty"`
	UpdatedAt       string          `json:"updatedAt,omitempty"`
}

func (o Order) Cancellable() bool { return o.Status == "pending" }

// LineItems snapshots cart entries into order lines, one unit each.
func LineItems(cart []Product) []OrderItem {
	out := make([]OrderItem, 0, len(cart))
	for _, p := range cart {
		out = append(out, OrderItem{
			ProductID:       p.ID,
			ProductTitle:    p.Title,
			ProductImageURL: p.ImageURL,
			Price:           p.Price,
			Quantity:        1,
		})
	}
	return out
}
