package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/skumatrix/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// SellerAuthState 卖家鉴权快照
// 字段保持简洁，避免重复查询数据库
type SellerAuthState struct {
	SellerID     uint   `json:"seller_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	IsAdmin      bool   `json:"is_admin"`
	UpdatedAt    int64  `json:"updated_at"`
}

func sellerAuthStateKey(sellerID uint) string {
	return fmt.Sprintf("auth:seller:%d", sellerID)
}

// BuildSellerAuthState 从卖家模型构建鉴权快照
func BuildSellerAuthState(seller *models.Seller) *SellerAuthState {
	if seller == nil {
		return nil
	}
	return &SellerAuthState{
		SellerID:     seller.ID,
		Username:     seller.Username,
		TokenVersion: seller.TokenVersion,
		IsAdmin:      seller.IsAdmin,
		UpdatedAt:    time.Now().Unix(),
	}
}

// GetSellerAuthState 获取卖家鉴权快照
func GetSellerAuthState(ctx context.Context, sellerID uint) (*SellerAuthState, bool, error) {
	if sellerID == 0 {
		return nil, false, nil
	}
	var state SellerAuthState
	hit, err := GetJSON(ctx, sellerAuthStateKey(sellerID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetSellerAuthState 写入卖家鉴权快照
func SetSellerAuthState(ctx context.Context, state *SellerAuthState) error {
	if state == nil || state.SellerID == 0 {
		return nil
	}
	return SetJSON(ctx, sellerAuthStateKey(state.SellerID), state, authStateCacheTTL)
}

// DelSellerAuthState 删除卖家鉴权快照
func DelSellerAuthState(ctx context.Context, sellerID uint) error {
	if sellerID == 0 {
		return nil
	}
	return Del(ctx, sellerAuthStateKey(sellerID))
}
