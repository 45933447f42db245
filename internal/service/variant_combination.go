package service

import (
	"strings"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
)

// AttributePair 变体维度上的一个取值
type AttributePair struct {
	Key      string
	NameJSON map[string]interface{}
	Value    string
}

// Combination 一个变体组合：每个变体维度取一个值，保持维度顺序
type Combination []AttributePair

// variantAxis 单个变体维度及其候选值
type variantAxis struct {
	Key      string
	NameJSON map[string]interface{}
	Values   []string
}

// buildVariantPairs 将商品属性展开为变体取值对。
// multi_select 属性的值按逗号拆分为多个取值，其余类型一行一个取值。
func buildVariantPairs(attributes []models.ProductAttribute) []AttributePair {
	pairs := make([]AttributePair, 0, len(attributes))
	for _, attr := range attributes {
		if !attr.IsVariant {
			continue
		}
		name := map[string]interface{}(attr.NameJSON)
		if attr.Type == constants.AttributeTypeMultiSelect {
			for _, value := range splitMultiSelectValue(attr.Value) {
				pairs = append(pairs, AttributePair{Key: attr.Key, NameJSON: name, Value: value})
			}
			continue
		}
		value := strings.TrimSpace(attr.Value)
		if value == "" {
			continue
		}
		pairs = append(pairs, AttributePair{Key: attr.Key, NameJSON: name, Value: value})
	}
	return pairs
}

// GenerateCombinations 计算变体取值对的笛卡尔积。
// 维度按键首次出现的顺序排列，候选值按值首次出现的顺序排列，同键同值去重，
// 结果顺序确定，可直接作为变体 sort_order 与 SKU 生成顺序。
// maxCombinations > 0 时超出上限返回 ErrTooManyCombinations，且不产生任何组合。
func GenerateCombinations(pairs []AttributePair, maxCombinations int) ([]Combination, error) {
	axes := groupVariantAxes(pairs)
	if len(axes) == 0 {
		return nil, ErrNoVariantAttributes
	}

	total := 1
	for _, axis := range axes {
		total *= len(axis.Values)
	}
	if maxCombinations > 0 && total > maxCombinations {
		return nil, ErrTooManyCombinations
	}

	combinations := make([]Combination, 0, total)
	current := make(Combination, len(axes))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(axes) {
			combination := make(Combination, len(current))
			copy(combination, current)
			combinations = append(combinations, combination)
			return
		}
		axis := axes[depth]
		for _, value := range axis.Values {
			current[depth] = AttributePair{Key: axis.Key, NameJSON: axis.NameJSON, Value: value}
			walk(depth + 1)
		}
	}
	walk(0)

	return combinations, nil
}

// groupVariantAxes 按键聚合取值对，保持键与值的首次出现顺序并去重
func groupVariantAxes(pairs []AttributePair) []variantAxis {
	axes := make([]variantAxis, 0, len(pairs))
	axisIndex := make(map[string]int, len(pairs))
	seenValues := make(map[string]map[string]struct{}, len(pairs))

	for _, pair := range pairs {
		key := strings.TrimSpace(pair.Key)
		value := strings.TrimSpace(pair.Value)
		if key == "" || value == "" {
			continue
		}
		idx, exists := axisIndex[key]
		if !exists {
			axisIndex[key] = len(axes)
			axes = append(axes, variantAxis{Key: key, NameJSON: pair.NameJSON})
			seenValues[key] = make(map[string]struct{})
			idx = len(axes) - 1
		}
		if _, dup := seenValues[key][value]; dup {
			continue
		}
		seenValues[key][value] = struct{}{}
		axes[idx].Values = append(axes[idx].Values, value)
	}
	return axes
}
