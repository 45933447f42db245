package models

import (
	"strings"

	"github.com/skumatrix/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSeller 初始化默认平台管理员账号
func InitDefaultSeller(username, password string) error {
	var count int64
	DB.Model(&Seller{}).Count(&count)

	// 如果已有卖家，确保默认 admin 账号保有管理员权限
	if count > 0 {
		if err := DB.Model(&Seller{}).Where("username = ?", "admin").Update("is_admin", true).Error; err != nil {
			logger.Warnw("ensure_default_seller_admin_failed", "error", err)
		}
		return nil
	}

	// 创建默认管理员
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seller := Seller{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      strings.EqualFold(strings.TrimSpace(username), "admin"),
	}

	if err := DB.Create(&seller).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_seller_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_seller_password_change_required", "username", username)
	} else {
		logger.Warnw("default_seller_created", "username", username, "password_hidden", true)
	}

	return nil
}
