package seller

import (
	"strconv"

	handlershared "github.com/skumatrix/internal/http/handlers/shared"
	"github.com/skumatrix/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getSellerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "seller_id")
}

func isAdmin(c *gin.Context) bool {
	return handlershared.GetContextBool(c, "is_admin")
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "路径参数不合法", err)
		return 0, false
	}
	return uint(value), true
}
