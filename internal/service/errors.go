package service

import "errors"

// 校验类错误（对应 HTTP 400）
var (
	ErrTemplateNameRequired       = errors.New("模板名称不能为空")
	ErrTemplateTypeInvalid        = errors.New("属性类型不合法")
	ErrTemplateOptionsRequired    = errors.New("select/multi_select 类型必须提供候选项")
	ErrAttributeKeyInvalid        = errors.New("属性键不存在于可用模板中")
	ErrAttributeValueEmpty        = errors.New("属性键和属性值不能为空")
	ErrAttributeValueInvalid      = errors.New("属性值不符合模板类型约束")
	ErrNoVariantAttributes        = errors.New("商品没有参与变体组合的属性")
	ErrTooManyCombinations        = errors.New("变体组合数量超过上限")
	ErrVariantPriceInvalid        = errors.New("变体价格必须大于 0")
	ErrVariantDiscountInvalid     = errors.New("折扣价必须低于变体价格")
	ErrVariantQuantityInvalid     = errors.New("变体库存数量不合法")
	ErrVariantAttributesDuplicate = errors.New("同商品下已存在相同属性组合的变体")
	ErrProductPriceInvalid        = errors.New("商品价格必须大于 0")
	ErrProductQuantityInvalid     = errors.New("商品库存数量不合法")
	ErrProductStatusInvalid       = errors.New("商品状态不合法")
	ErrCategoryInvalid            = errors.New("商品分类不存在")
)

// 资源不存在（对应 HTTP 404）
var ErrNotFound = errors.New("资源不存在")

// 权限不足（对应 HTTP 403）
var ErrForbidden = errors.New("无权操作该资源")

// 冲突类错误（对应 HTTP 409）
var (
	ErrTemplateKeyExists    = errors.New("相同属性键的模板已存在")
	ErrSKUGenerationFailed  = errors.New("SKU 生成重试次数耗尽")
	ErrSlugExists           = errors.New("slug 已存在")
	ErrCategoryInUse        = errors.New("分类仍被商品或模板引用")
)

// 认证类错误
var (
	ErrInvalidCredentials = errors.New("用户名或密码错误")
)
