package constants

// 属性模板类型常量
const (
	AttributeTypeText        = "text"
	AttributeTypeNumber      = "number"
	AttributeTypeSelect      = "select"
	AttributeTypeMultiSelect = "multi_select"
	AttributeTypeBoolean     = "boolean"
	AttributeTypeDate        = "date"
	AttributeTypeURL         = "url"
	AttributeTypeEmail       = "email"
)

// AttributeTypes 全部合法的属性类型
var AttributeTypes = []string{
	AttributeTypeText,
	AttributeTypeNumber,
	AttributeTypeSelect,
	AttributeTypeMultiSelect,
	AttributeTypeBoolean,
	AttributeTypeDate,
	AttributeTypeURL,
	AttributeTypeEmail,
}

// OptionBackedAttributeTypes 必须携带候选项的属性类型
var OptionBackedAttributeTypes = []string{
	AttributeTypeSelect,
	AttributeTypeMultiSelect,
}

// 商品状态常量
const (
	ProductStatusDraft    = "draft"
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

// 变体生成默认配置常量
const (
	VariantMaxCombinationsDefault = 500
	SKUMaxAttemptsDefault         = 3
	SKUBaseMaxLenDefault          = 10
	SKUAttrPartMaxLen             = 3
	SKURandomSuffixLen            = 4
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskVariantGenerate = "variant:generate"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sm"
)
