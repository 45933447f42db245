package shared

import (
	"errors"

	"github.com/skumatrix/internal/http/response"
	"github.com/skumatrix/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedServiceError 定义业务错误到接口错误响应的映射关系。
type mappedServiceError struct {
	target error
	code   int
}

// 业务错误统一按四类归口：参数错误 400、不存在 404、无权 403、冲突 409。
var serviceErrorRules = []mappedServiceError{
	{target: service.ErrTemplateNameRequired, code: response.CodeBadRequest},
	{target: service.ErrTemplateTypeInvalid, code: response.CodeBadRequest},
	{target: service.ErrTemplateOptionsRequired, code: response.CodeBadRequest},
	{target: service.ErrAttributeKeyInvalid, code: response.CodeBadRequest},
	{target: service.ErrAttributeValueEmpty, code: response.CodeBadRequest},
	{target: service.ErrAttributeValueInvalid, code: response.CodeBadRequest},
	{target: service.ErrNoVariantAttributes, code: response.CodeBadRequest},
	{target: service.ErrTooManyCombinations, code: response.CodeBadRequest},
	{target: service.ErrVariantPriceInvalid, code: response.CodeBadRequest},
	{target: service.ErrVariantDiscountInvalid, code: response.CodeBadRequest},
	{target: service.ErrVariantQuantityInvalid, code: response.CodeBadRequest},
	{target: service.ErrVariantAttributesDuplicate, code: response.CodeConflict},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest},
	{target: service.ErrProductQuantityInvalid, code: response.CodeBadRequest},
	{target: service.ErrProductStatusInvalid, code: response.CodeBadRequest},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest},
	{target: service.ErrNotFound, code: response.CodeNotFound},
	{target: service.ErrForbidden, code: response.CodeForbidden},
	{target: service.ErrTemplateKeyExists, code: response.CodeConflict},
	{target: service.ErrSKUGenerationFailed, code: response.CodeConflict},
	{target: service.ErrSlugExists, code: response.CodeConflict},
	{target: service.ErrCategoryInUse, code: response.CodeConflict},
}

// RespondServiceError 将业务错误映射为统一错误响应；
// 未识别的错误按内部错误处理并记录原始错误。
func RespondServiceError(c *gin.Context, err error, fallbackMsg string) {
	for _, rule := range serviceErrorRules {
		if errors.Is(err, rule.target) {
			RespondError(c, rule.code, rule.target.Error(), nil)
			return
		}
	}
	RespondError(c, response.CodeInternal, fallbackMsg, err)
}
