package service

import (
	"strings"
	"testing"

	"github.com/skumatrix/internal/constants"
)

func TestSynthesizeSKU(t *testing.T) {
	combination := Combination{
		{Key: "color", Value: "Red"},
		{Key: "size", Value: "XL"},
	}
	sku := SynthesizeSKU("Classic Tee", combination, constants.SKUBaseMaxLenDefault)
	if sku != "classic-te-colred-sizxl" {
		t.Fatalf("sku want classic-te-colred-sizxl got %s", sku)
	}
}

func TestSynthesizeSKUWithoutCombination(t *testing.T) {
	sku := SynthesizeSKU("Classic Tee", nil, constants.SKUBaseMaxLenDefault)
	if sku != "classic-te" {
		t.Fatalf("sku want classic-te got %s", sku)
	}
}

func TestSynthesizeSKUEmptyName(t *testing.T) {
	combination := Combination{{Key: "color", Value: "Red"}}
	sku := SynthesizeSKU("", combination, constants.SKUBaseMaxLenDefault)
	if sku != "colred" {
		t.Fatalf("sku want colred got %s", sku)
	}

	if SynthesizeSKU("", nil, 0) != "sku" {
		t.Fatalf("fully degenerate input should fall back to literal sku")
	}
}

func TestSlugifySKUBase(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "spaces to hyphen", in: "Classic Tee", max: 20, want: "classic-tee"},
		{name: "symbol runs collapse", in: "A//B  C", max: 20, want: "a-b-c"},
		{name: "truncated", in: "Classic Tee", max: 10, want: "classic-te"},
		{name: "truncation trims hyphen", in: "abcdefghi jk", max: 10, want: "abcdefghi"},
		{name: "empty", in: "  ", max: 10, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := slugifySKUBase(tc.in, tc.max); got != tc.want {
				t.Fatalf("slugifySKUBase(%q) want %q got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestSKUAttributePart(t *testing.T) {
	if got := skuAttributePart("color", "Red"); got != "colred" {
		t.Fatalf("part want colred got %s", got)
	}
	// 键值取前 3 个字符后再过滤非法字符
	if got := skuAttributePart("sz", "X L"); got != "szx" {
		t.Fatalf("part want szx got %s", got)
	}
	if got := skuAttributePart("usb", "3.0"); got != "usb30" {
		t.Fatalf("part want usb30 got %s", got)
	}
}

func TestRandomSKUSuffix(t *testing.T) {
	suffix := randomSKUSuffix(constants.SKURandomSuffixLen)
	if len(suffix) != constants.SKURandomSuffixLen {
		t.Fatalf("suffix length want %d got %d", constants.SKURandomSuffixLen, len(suffix))
	}
	for _, r := range suffix {
		if !strings.ContainsRune(skuSuffixCharset, r) {
			t.Fatalf("suffix rune %q outside charset", r)
		}
	}

	if len(randomSKUSuffix(0)) != constants.SKURandomSuffixLen {
		t.Fatalf("non-positive length should fall back to default")
	}
}
