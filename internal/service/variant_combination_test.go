package service

import (
	"errors"
	"testing"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
)

func TestBuildVariantPairs(t *testing.T) {
	attributes := []models.ProductAttribute{
		{Key: "color", Type: constants.AttributeTypeSelect, Value: "Red", IsVariant: true},
		{Key: "material", Type: constants.AttributeTypeText, Value: "Cotton", IsVariant: false},
		{Key: "size", Type: constants.AttributeTypeMultiSelect, Value: "S,M,S", IsVariant: true},
		{Key: "blank", Type: constants.AttributeTypeText, Value: "   ", IsVariant: true},
	}

	pairs := buildVariantPairs(attributes)
	if len(pairs) != 3 {
		t.Fatalf("pairs want 3 got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].Key != "color" || pairs[0].Value != "Red" {
		t.Fatalf("first pair mismatch: %+v", pairs[0])
	}
	// multi_select 拆成多个取值并去重
	if pairs[1].Key != "size" || pairs[1].Value != "S" {
		t.Fatalf("second pair mismatch: %+v", pairs[1])
	}
	if pairs[2].Key != "size" || pairs[2].Value != "M" {
		t.Fatalf("third pair mismatch: %+v", pairs[2])
	}
}

func TestGenerateCombinationsOrderAndDedup(t *testing.T) {
	pairs := []AttributePair{
		{Key: "color", Value: "Red"},
		{Key: "size", Value: "S"},
		{Key: "color", Value: "Blue"},
		{Key: "color", Value: "Red"}, // 同键同值去重
		{Key: "size", Value: "M"},
	}

	combinations, err := GenerateCombinations(pairs, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(combinations) != 4 {
		t.Fatalf("combinations want 4 got %d", len(combinations))
	}

	// 维度按键首次出现排序，值按首次出现排序
	want := [][2]string{
		{"Red", "S"}, {"Red", "M"},
		{"Blue", "S"}, {"Blue", "M"},
	}
	for i, combination := range combinations {
		if len(combination) != 2 {
			t.Fatalf("combination %d should have 2 dimensions: %+v", i, combination)
		}
		if combination[0].Key != "color" || combination[1].Key != "size" {
			t.Fatalf("combination %d dimension order mismatch: %+v", i, combination)
		}
		if combination[0].Value != want[i][0] || combination[1].Value != want[i][1] {
			t.Fatalf("combination %d want %v got [%s %s]", i, want[i], combination[0].Value, combination[1].Value)
		}
	}
}

func TestGenerateCombinationsSingleAxis(t *testing.T) {
	combinations, err := GenerateCombinations([]AttributePair{{Key: "color", Value: "Red"}}, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(combinations) != 1 || len(combinations[0]) != 1 {
		t.Fatalf("single pair should yield one 1-dimension combination: %+v", combinations)
	}
}

func TestGenerateCombinationsNoPairs(t *testing.T) {
	if _, err := GenerateCombinations(nil, 0); !errors.Is(err, ErrNoVariantAttributes) {
		t.Fatalf("no pairs want ErrNoVariantAttributes got %v", err)
	}
	// 全空白取值也视为没有变体属性
	pairs := []AttributePair{{Key: " ", Value: "Red"}, {Key: "color", Value: "  "}}
	if _, err := GenerateCombinations(pairs, 0); !errors.Is(err, ErrNoVariantAttributes) {
		t.Fatalf("blank pairs want ErrNoVariantAttributes got %v", err)
	}
}

func TestGenerateCombinationsCap(t *testing.T) {
	pairs := make([]AttributePair, 0, 60)
	for _, key := range []string{"a", "b", "c"} {
		for i := 0; i < 20; i++ {
			pairs = append(pairs, AttributePair{Key: key, Value: string(rune('a' + i))})
		}
	}
	// 20^3 = 8000 超出默认上限
	_, err := GenerateCombinations(pairs, constants.VariantMaxCombinationsDefault)
	if !errors.Is(err, ErrTooManyCombinations) {
		t.Fatalf("over cap want ErrTooManyCombinations got %v", err)
	}

	// 不设上限时正常生成
	combinations, err := GenerateCombinations(pairs, 0)
	if err != nil {
		t.Fatalf("generate without cap failed: %v", err)
	}
	if len(combinations) != 8000 {
		t.Fatalf("combinations want 8000 got %d", len(combinations))
	}
}
