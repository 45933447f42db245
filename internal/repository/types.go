package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page           int
	PageSize       int
	SellerID       uint
	CategoryID     string
	Status         string
	Search         string
	SortBy         string
	WithCategories bool
}

// AttributeTemplateListFilter 查询分类属性模板列表的过滤条件
type AttributeTemplateListFilter struct {
	CategoryID  uint
	OnlyVariant bool
}

// CustomAttributeTemplateListFilter 查询卖家自定义模板列表的过滤条件
type CustomAttributeTemplateListFilter struct {
	Page       int
	PageSize   int
	SellerID   uint
	OnlyActive bool
	Search     string
}
