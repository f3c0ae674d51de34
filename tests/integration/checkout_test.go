//go:build integration

package integration

import (
	"net/http"
	"testing"
)

func blindOwlCart(quantity int) []cartItem {
	return []cartItem{{
		BookID:          "bk-blind-owl",
		Title:           "The Blind Owl",
		Price:           120000,
		DiscountPercent: 10,
		Quantity:        quantity,
	}}
}

func testAddress() *addressForm {
	return &addressForm{
		FullName: "Sara Tehrani",
		Mobile:   "09120000000",
		Address:  "12 Enqelab St",
	}
}

func TestQuote_WithSeededCoupon(t *testing.T) {
	resp := doPost(t, "/api/checkout/quote", "", map[string]any{
		"items":      blindOwlCart(2),
		"couponCode": "welcome10",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	q := decodeJSON[quoteResponse](t, resp)
	// 120000 with 10% off is 108000 per copy, 216000 for two; the
	// coupon takes another 10% off.
	if q.Subtotal != "216000" {
		t.Errorf("subtotal: got %q, want 216000", q.Subtotal)
	}
	if q.DiscountAmount != "21600" {
		t.Errorf("discount: got %q, want 21600", q.DiscountAmount)
	}
	if q.Total != "194400" {
		t.Errorf("total: got %q, want 194400", q.Total)
	}
	if q.TotalFormatted != "194,400 Toman" {
		t.Errorf("formatted total: got %q", q.TotalFormatted)
	}
}

func TestQuote_UnknownCoupon(t *testing.T) {
	resp := doPost(t, "/api/checkout/quote", "", map[string]any{
		"items":      blindOwlCart(1),
		"couponCode": "NOPE",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckout_GuestOnlinePayment(t *testing.T) {
	resp := doPost(t, "/api/orders", "", checkoutRequest{
		Items:         blindOwlCart(1),
		PaymentMethod: "online",
		Address:       testAddress(),
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	o := decodeJSON[orderResponse](t, resp)
	if o.Status != "PROCESSING" {
		t.Errorf("status: got %q, want PROCESSING", o.Status)
	}
	if o.UserID != "guest" {
		t.Errorf("userId: got %q, want guest", o.UserID)
	}
	if o.TotalAmount != "108000" {
		t.Errorf("total: got %q, want 108000", o.TotalAmount)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	resp := doPost(t, "/api/orders", "", checkoutRequest{
		PaymentMethod: "online",
		Address:       testAddress(),
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCheckout_MissingAddressField(t *testing.T) {
	resp := doPost(t, "/api/orders", "", checkoutRequest{
		Items:         blindOwlCart(1),
		PaymentMethod: "online",
		Address:       &addressForm{FullName: "Sara", Address: "12 Enqelab St"},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Error == "" {
		t.Error("error message is empty")
	}
}

func TestCheckout_CardTransferFlow(t *testing.T) {
	// The card-to-card order is held as a draft until a receipt arrives.
	resp := doPost(t, "/api/orders", "", checkoutRequest{
		Items:         blindOwlCart(1),
		PaymentMethod: "card_to_card",
		Address:       testAddress(),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: expected 201, got %d", resp.StatusCode)
	}
	draft := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if draft.Status != "AWAITING_PAYMENT" {
		t.Fatalf("draft status: got %q, want AWAITING_PAYMENT", draft.Status)
	}

	// Receipt upload without an image is rejected.
	resp = doPost(t, "/api/orders/"+draft.ID+"/receipt", "", map[string]string{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty receipt: expected 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doPost(t, "/api/orders/"+draft.ID+"/receipt", "", map[string]string{
		"receiptImage": "data:image/jpeg;base64,dGVzdA==",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("receipt: expected 200, got %d", resp.StatusCode)
	}
	confirmed := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if confirmed.Status != "VERIFYING_PAYMENT" {
		t.Errorf("status: got %q, want VERIFYING_PAYMENT", confirmed.Status)
	}

	// The draft is consumed; a second upload misses.
	resp = doPost(t, "/api/orders/"+draft.ID+"/receipt", "", map[string]string{
		"receiptImage": "again.jpg",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("replayed receipt: expected 404, got %d", resp.StatusCode)
	}
}

func TestPaymentSettings_Public(t *testing.T) {
	resp := doGet(t, "/api/payment-settings", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	settings := decodeJSON[map[string]string](t, resp)
	if settings["cardNumber"] == "" {
		t.Error("cardNumber is empty")
	}
}
