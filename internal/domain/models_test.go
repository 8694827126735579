package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestPriceDecodeLenient(t *testing.T) {
	cases := map[string]int64{
		`{"id":"a","price":2500000}`:   2500000,
		`{"id":"a","price":"5000000"}`: 5000000,
		`{"id":"a"}`:                   0,
		`{"id":"a","price":null}`:      0,
		`{"id":"a","price":"n/a"}`:     0,
	}
	for raw, want := range cases {
		var p Product
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			t.Fatalf("%s: %v", raw, err)
		}
		if !p.Price.Equal(NewPrice(want).Decimal) {
			t.Errorf("%s: price = %s, want %d", raw, p.Price, want)
		}
	}
}

func TestPriceEncodesAsNumber(t *testing.T) {
	b, err := json.Marshal(OrderItem{ProductID: "p", Price: NewPrice(2500000), Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"productId":"p","productTitle":"","productImageUrl":"","price":2500000,"quantity":1}`
	if string(b) != want {
		t.Fatalf("got %s", b)
	}
}

func TestParsePriceRoundTrip(t *testing.T) {
	p := NewPrice(12345678900)
	back, err := ParsePrice(p.String())
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(p.Decimal) || back.String() != "12345678900" {
		t.Fatalf("lost precision: %s", back)
	}
	if _, err := ParsePrice("12a"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPickImage(t *testing.T) {
	if got := PickImage("/old.jpg"); got != "/old.jpg" {
		t.Fatalf("no source should keep current, got %q", got)
	}
	if got := PickImage("", External("https://x/a.jpg"), Uploaded("/uploads/b.jpg")); got != "/uploads/b.jpg" {
		t.Fatalf("upload should win, got %q", got)
	}
	if got := PickImage("/old.jpg", Uploaded(" "), External("https://x/a.jpg")); got != "https://x/a.jpg" {
		t.Fatalf("blank upload should be ignored, got %q", got)
	}
}

func TestSessionRolesAndExpiry(t *testing.T) {
	s := &Session{Token: "opaque", Username: "mai", Roles: []string{"ROLE_USER", RoleAdmin}}
	if !s.IsAdmin() || s.Expired(time.Now()) {
		t.Fatalf("opaque admin session misread: %+v", s)
	}
	var nilSess *Session
	if nilSess.IsAdmin() {
		t.Fatal("nil session cannot be admin")
	}

	sign := func(exp time.Time) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "mai", "exp": exp.Unix()}).
			SignedString([]byte("test-key"))
		if err != nil {
			t.Fatal(err)
		}
		return tok
	}
	if (&Session{Token: sign(time.Now().Add(-time.Hour))}).Expired(time.Now()) != true {
		t.Fatal("past exp should be expired")
	}
	if (&Session{Token: sign(time.Now().Add(time.Hour))}).Expired(time.Now()) {
		t.Fatal("future exp should be live")
	}
}

func TestNormalizePayment(t *testing.T) {
	for in, want := range map[string]string{"cod": "cod", "vnpay": "cod", "bank_transfer": "cod", "": "cod"} {
		if got := NormalizePayment(in); got != want {
			t.Errorf("NormalizePayment(%q) = %q", in, got)
		}
	}
}

func TestHomeSettingsNormalize(t *testing.T) {
	h := HomeSettings{FeaturedImageURLs: []string{"a"}}.Normalize()
	if len(h.FeaturedImageURLs) != FeaturedSlots || h.FeaturedImageURLs[0] != "a" || h.FeaturedImageURLs[3] != "" {
		t.Fatalf("pad failed: %+v", h)
	}
	h = HomeSettings{FeaturedImageURLs: []string{"1", "2", "3", "4", "5"}}.Normalize()
	if len(h.FeaturedImageURLs) != FeaturedSlots || h.FeaturedImageURLs[3] != "4" {
		t.Fatalf("truncate failed: %+v", h)
	}
}

func TestLineItems(t *testing.T) {
	items := LineItems([]Product{{ID: "a", Title: "Sunset", ImageURL: "/u/a.jpg", Price: NewPrice(10)}})
	if len(items) != 1 || items[0].Quantity != 1 || items[0].ProductTitle != "Sunset" || items[0].ProductImageURL != "/u/a.jpg" {
		t.Fatalf("bad line items: %+v", items)
	}
}
