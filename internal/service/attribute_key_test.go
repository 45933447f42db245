package service

import (
	"errors"
	"testing"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
)

func TestDeriveAttributeKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Color", want: "color"},
		{name: "spaces", in: "Screen Size", want: "screen_size"},
		{name: "punctuation run", in: "Weight (kg)", want: "weight_kg"},
		{name: "leading trailing symbols", in: "--RAM--", want: "ram"},
		{name: "mixed symbols collapse", in: "A/B - C", want: "a_b_c"},
		{name: "digits kept", in: "USB 3.0", want: "usb_3_0"},
		{name: "empty", in: "   ", want: ""},
		{name: "only symbols", in: "!!!", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveAttributeKey(tc.in); got != tc.want {
				t.Fatalf("DeriveAttributeKey(%q) want %q got %q", tc.in, tc.want, got)
			}
		})
	}
}

func TestDeriveAttributeKeyTruncation(t *testing.T) {
	long := ""
	for i := 0; i < 10; i++ {
		long += "abcdefgh "
	}
	key := DeriveAttributeKey(long)
	if len(key) > 64 {
		t.Fatalf("key should be truncated to 64 chars, got %d", len(key))
	}
	if key[len(key)-1] == '_' {
		t.Fatalf("truncated key should not end with underscore: %q", key)
	}
}

func TestDisplayNameLocaleFallback(t *testing.T) {
	name := displayName(models.JSON{"zh-CN": "颜色", "en-US": "Color"})
	if name != "Color" {
		t.Fatalf("en-US should win, got %q", name)
	}

	name = displayName(models.JSON{"zh-CN": "颜色"})
	if name != "颜色" {
		t.Fatalf("zh-CN fallback failed, got %q", name)
	}

	// 未命中回退语言时取字典序最小的键
	name = displayName(models.JSON{"fr-FR": "Couleur", "de-DE": "Farbe"})
	if name != "Farbe" {
		t.Fatalf("lexicographic fallback failed, got %q", name)
	}

	if displayName(models.JSON{}) != "" {
		t.Fatalf("empty name map should yield empty display name")
	}
}

func TestValidateTemplateDefinition(t *testing.T) {
	normalized, err := validateTemplateDefinition(TemplateDefinition{
		NameJSON: map[string]interface{}{"en-US": "Screen Size"},
		Type:     "  SELECT ",
		Options:  []string{" 13in ", "15in", "13in", ""},
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if normalized.Key != "screen_size" {
		t.Fatalf("key want screen_size got %s", normalized.Key)
	}
	if normalized.Type != constants.AttributeTypeSelect {
		t.Fatalf("type want select got %s", normalized.Type)
	}
	if len(normalized.Options) != 2 || normalized.Options[0] != "13in" || normalized.Options[1] != "15in" {
		t.Fatalf("options should be trimmed and deduped in order: %v", normalized.Options)
	}
}

func TestValidateTemplateDefinitionDefaultsToText(t *testing.T) {
	normalized, err := validateTemplateDefinition(TemplateDefinition{
		NameJSON: map[string]interface{}{"en-US": "Material"},
		Options:  []string{"ignored"},
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if normalized.Type != constants.AttributeTypeText {
		t.Fatalf("empty type should default to text, got %s", normalized.Type)
	}
	if normalized.Options != nil {
		t.Fatalf("non-option type should drop options, got %v", normalized.Options)
	}
}

func TestValidateTemplateDefinitionErrors(t *testing.T) {
	_, err := validateTemplateDefinition(TemplateDefinition{NameJSON: map[string]interface{}{"en-US": "  "}})
	if !errors.Is(err, ErrTemplateNameRequired) {
		t.Fatalf("blank name want ErrTemplateNameRequired got %v", err)
	}

	_, err = validateTemplateDefinition(TemplateDefinition{
		NameJSON: map[string]interface{}{"en-US": "Color"},
		Type:     "dropdown",
	})
	if !errors.Is(err, ErrTemplateTypeInvalid) {
		t.Fatalf("unknown type want ErrTemplateTypeInvalid got %v", err)
	}

	_, err = validateTemplateDefinition(TemplateDefinition{
		NameJSON: map[string]interface{}{"en-US": "Color"},
		Type:     constants.AttributeTypeSelect,
	})
	if !errors.Is(err, ErrTemplateOptionsRequired) {
		t.Fatalf("select without options want ErrTemplateOptionsRequired got %v", err)
	}

	_, err = validateTemplateDefinition(TemplateDefinition{
		NameJSON: map[string]interface{}{"en-US": "Tags"},
		Type:     constants.AttributeTypeMultiSelect,
		Options:  []string{"  ", ""},
	})
	if !errors.Is(err, ErrTemplateOptionsRequired) {
		t.Fatalf("multi_select with blank options want ErrTemplateOptionsRequired got %v", err)
	}
}
