package services

import (
	"testing"

	"github.com/yungbote/storefront-backend/internal/types"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Coffee Mug", "coffee-mug"},
		{"  Trimmed  ", "trimmed"},
		{"Multi   Spaces", "multi-spaces"},
		{"Sale! 50% Off", "sale-50-off"},
		{"Ünicode Näme", "nicode-n-me"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateProduct(t *testing.T) {
	if err := validateProduct(nil); err == nil {
		t.Fatalf("nil product must fail")
	}
	if err := validateProduct(&types.Product{Name: "   "}); err == nil {
		t.Fatalf("blank name must fail")
	}
	if err := validateProduct(&types.Product{Name: "mug", Price: -1}); err == nil {
		t.Fatalf("negative price must fail")
	}
	if err := validateProduct(&types.Product{Name: "mug", Stock: -2}); err == nil {
		t.Fatalf("negative stock must fail")
	}
	product := &types.Product{Name: "  Mug  ", Price: 100, Stock: 3}
	if err := validateProduct(product); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}
	if product.Name != "Mug" {
		t.Fatalf("name not trimmed: %q", product.Name)
	}
}

func TestValidateCategory(t *testing.T) {
	if err := validateCategory(&types.Category{Name: ""}); err == nil {
		t.Fatalf("blank category name must fail")
	}
	category := &types.Category{Name: " Apparel "}
	if err := validateCategory(category); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	if category.Name != "Apparel" {
		t.Fatalf("name not trimmed: %q", category.Name)
	}
}
