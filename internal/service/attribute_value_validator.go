package service

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/skumatrix/internal/constants"
)

// multi_select 属性值使用逗号分隔多个候选项
const multiSelectSeparator = ","

// attributeSchema 属性校验用的模板快照（分类模板与自定义模板共用形状）
type attributeSchema struct {
	Key       string
	NameJSON  map[string]interface{}
	Type      string
	Options   []string
	Unit      string
	IsVariant bool
}

// validateAttributeValue 按模板类型校验并规整属性值
func validateAttributeValue(schema attributeSchema, rawValue string) (string, error) {
	value := strings.TrimSpace(rawValue)
	if value == "" {
		return "", ErrAttributeValueEmpty
	}

	switch schema.Type {
	case constants.AttributeTypeText:
		return value, nil
	case constants.AttributeTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "", ErrAttributeValueInvalid
		}
		return value, nil
	case constants.AttributeTypeSelect:
		if !containsOption(schema.Options, value) {
			return "", ErrAttributeValueInvalid
		}
		return value, nil
	case constants.AttributeTypeMultiSelect:
		parts := splitMultiSelectValue(value)
		if len(parts) == 0 {
			return "", ErrAttributeValueEmpty
		}
		for _, part := range parts {
			if !containsOption(schema.Options, part) {
				return "", ErrAttributeValueInvalid
			}
		}
		return strings.Join(parts, multiSelectSeparator), nil
	case constants.AttributeTypeBoolean:
		if _, err := strconv.ParseBool(strings.ToLower(value)); err != nil {
			return "", ErrAttributeValueInvalid
		}
		return strings.ToLower(value), nil
	case constants.AttributeTypeDate:
		if !isValidDateValue(value) {
			return "", ErrAttributeValueInvalid
		}
		return value, nil
	case constants.AttributeTypeURL:
		parsed, err := url.Parse(value)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return "", ErrAttributeValueInvalid
		}
		return value, nil
	case constants.AttributeTypeEmail:
		if _, err := mail.ParseAddress(value); err != nil {
			return "", ErrAttributeValueInvalid
		}
		return value, nil
	default:
		return "", ErrTemplateTypeInvalid
	}
}

// splitMultiSelectValue 拆分多选值，去空白、去重并保持提交顺序
func splitMultiSelectValue(value string) []string {
	raw := strings.Split(value, multiSelectSeparator)
	parts := make([]string, 0, len(raw))
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
		parts = append(parts, text)
	}
	return parts
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func isValidDateValue(value string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}
