package model

import "testing"

func TestCanTransition_ForwardFlow(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPending, OrderStatusShipping, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPreparing, OrderStatusShipping, true},
		{OrderStatusPreparing, OrderStatusCompleted, true},
		{OrderStatusShipping, OrderStatusCompleted, true},
		{OrderStatusPreparing, OrderStatusPending, false},
		{OrderStatusShipping, OrderStatusPreparing, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCompleted, OrderStatusShipping, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanTransition_CancelledIsAbsorbing(t *testing.T) {
	for _, to := range OrderStatuses {
		if CanTransition(OrderStatusCancelled, to) {
			t.Errorf("CanTransition(cancelled, %q) = true, want false", to)
		}
	}
}

func TestCanTransition_CancelReachableFromNonTerminal(t *testing.T) {
	for _, from := range []string{OrderStatusPending, OrderStatusPreparing, OrderStatusShipping, OrderStatusCompleted} {
		if !CanTransition(from, OrderStatusCancelled) {
			t.Errorf("CanTransition(%q, cancelled) = false, want true", from)
		}
	}
}

func TestParseDetails(t *testing.T) {
	o := Order{Details: `{"customer_name":"Ali Veli","customer_email":"ali@example.com","items":[{"product_id":1,"name":"Oksijen Tüpü","amount":2,"unit_price":450}]}`}

	d, ok := o.ParseDetails()
	if !ok {
		t.Fatal("ParseDetails() failed on valid JSON")
	}
	if d.CustomerName != "Ali Veli" {
		t.Errorf("CustomerName = %q, want %q", d.CustomerName, "Ali Veli")
	}
	if len(d.Items) != 1 || d.Items[0].Amount != 2 {
		t.Errorf("unexpected items: %+v", d.Items)
	}
}

func TestParseDetails_LegacyRawString(t *testing.T) {
	o := Order{Details: "2x oksijen tüpü, nakit ödeme"}

	if _, ok := o.ParseDetails(); ok {
		t.Error("ParseDetails() should report ok=false for legacy raw-string details")
	}
}

func TestItemsEqual(t *testing.T) {
	a := []OrderItem{{ProductID: 1, Name: "Azot", Amount: 3, UnitPrice: 100}}
	b := []OrderItem{{ProductID: 1, Name: "Azot", Amount: 3, UnitPrice: 100}}

	if !ItemsEqual(a, b) {
		t.Error("ItemsEqual should be true for identical slices")
	}

	b[0].Amount = 4
	if ItemsEqual(a, b) {
		t.Error("ItemsEqual should be false after amount change")
	}

	if ItemsEqual(a, nil) {
		t.Error("ItemsEqual should be false for different lengths")
	}
	if !ItemsEqual(nil, nil) {
		t.Error("ItemsEqual should be true for two empty slices")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TR", LanguageTR},
		{"tr", LanguageTR},
		{"EN", LanguageEN},
		{" en ", LanguageEN},
		{"", LanguageTR},
		{"de", LanguageTR},
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.in); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFolderForSection(t *testing.T) {
	if got := FolderForSection("images"); got != "galeri" {
		t.Errorf("FolderForSection(images) = %q, want galeri", got)
	}
	if got := FolderForSection("unknown-section"); got != DefaultUploadFolder {
		t.Errorf("FolderForSection(unknown) = %q, want %q", got, DefaultUploadFolder)
	}
}
