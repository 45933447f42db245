package admin

import (
	handlershared "github.com/skumatrix/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getSellerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, "seller_id")
}
