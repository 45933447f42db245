package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/skumatrix/internal/constants"
	"github.com/skumatrix/internal/models"
)

var attributeKeyPattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)
var nonAlnumRunPattern = regexp.MustCompile(`[^a-z0-9]+`)

// 名称取值的语言回退顺序
var nameLocaleFallback = []string{"en-US", "zh-CN", "zh-TW"}

// DeriveAttributeKey 从名称确定性派生属性键：
// 小写、非字母数字的连续片段替换为单个下划线、去除首尾下划线。
func DeriveAttributeKey(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if lowered == "" {
		return ""
	}
	key := nonAlnumRunPattern.ReplaceAllString(lowered, "_")
	key = strings.Trim(key, "_")
	if len(key) > 64 {
		key = strings.Trim(key[:64], "_")
	}
	return key
}

// displayName 从多语言名称中取派生键用的展示名
func displayName(nameJSON models.JSON) string {
	for _, locale := range nameLocaleFallback {
		if raw, ok := nameJSON[locale]; ok {
			if text, ok := raw.(string); ok && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text)
			}
		}
	}
	// 未命中回退语言时取字典序最小的键，保证派生结果稳定
	locales := make([]string, 0, len(nameJSON))
	for locale := range nameJSON {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		if text, ok := nameJSON[locale].(string); ok && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// TemplateDefinition 模板定义输入（分类模板与卖家自定义模板共用）
type TemplateDefinition struct {
	NameJSON        map[string]interface{}
	DescriptionJSON map[string]interface{}
	Type            string
	Options         []string
	Unit            string
	IsRequired      bool
	IsVariant       bool
	SortOrder       int
}

// normalizedTemplateDefinition 校验后的模板定义
type normalizedTemplateDefinition struct {
	Key     string
	Type    string
	Options []string
}

// validateTemplateDefinition 校验模板定义并派生属性键
func validateTemplateDefinition(def TemplateDefinition) (*normalizedTemplateDefinition, error) {
	name := displayName(models.JSON(def.NameJSON))
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	key := DeriveAttributeKey(name)
	if key == "" || !attributeKeyPattern.MatchString(key) {
		return nil, ErrTemplateNameRequired
	}

	typeValue := strings.ToLower(strings.TrimSpace(def.Type))
	if typeValue == "" {
		typeValue = constants.AttributeTypeText
	}
	if !isSupportedAttributeType(typeValue) {
		return nil, ErrTemplateTypeInvalid
	}

	options := normalizeOptions(def.Options)
	if requiresOptions(typeValue) && len(options) == 0 {
		return nil, ErrTemplateOptionsRequired
	}
	if !requiresOptions(typeValue) {
		options = nil
	}

	return &normalizedTemplateDefinition{
		Key:     key,
		Type:    typeValue,
		Options: options,
	}, nil
}

func isSupportedAttributeType(value string) bool {
	for _, t := range constants.AttributeTypes {
		if value == t {
			return true
		}
	}
	return false
}

func requiresOptions(typeValue string) bool {
	for _, t := range constants.OptionBackedAttributeTypes {
		if typeValue == t {
			return true
		}
	}
	return false
}

// normalizeOptions 去空白、去重，保持提交顺序
func normalizeOptions(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	options := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		text := strings.TrimSpace(item)
		if text == "" {
			continue
		}
		if _, exists := seen[text]; exists {
			continue
		}
		seen[text] = struct{}{}
		options = append(options, text)
	}
	return options
}
