package service

import (
	"context"
	"errors"
	"time"

	"github.com/skumatrix/internal/cache"
	"github.com/skumatrix/internal/config"
	"github.com/skumatrix/internal/models"
	"github.com/skumatrix/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SellerAuthService 卖家认证服务
type SellerAuthService struct {
	cfg        *config.Config
	sellerRepo repository.SellerRepository
}

// NewSellerAuthService 创建卖家认证服务实例
func NewSellerAuthService(cfg *config.Config, sellerRepo repository.SellerRepository) *SellerAuthService {
	return &SellerAuthService{
		cfg:        cfg,
		sellerRepo: sellerRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *SellerAuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *SellerAuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims JWT 声明
type JWTClaims struct {
	SellerID     uint   `json:"seller_id"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *SellerAuthService) GenerateJWT(seller *models.Seller) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		SellerID:     seller.ID,
		Username:     seller.Username,
		IsAdmin:      seller.IsAdmin,
		TokenVersion: seller.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *SellerAuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 卖家登录
func (s *SellerAuthService) Login(username, password string) (*models.Seller, string, time.Time, error) {
	seller, err := s.sellerRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if seller == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(seller.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(seller)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// 更新最后登录时间
	now := time.Now()
	seller.LastLoginAt = &now
	if err := s.sellerRepo.Update(seller); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetSellerAuthState(context.Background(), cache.BuildSellerAuthState(seller))

	return seller, token, expiresAt, nil
}

// ChangePassword 修改卖家密码，成功后递增 Token 版本使旧 Token 全部失效
func (s *SellerAuthService) ChangePassword(sellerID uint, oldPassword, newPassword string) error {
	seller, err := s.sellerRepo.GetByID(sellerID)
	if err != nil {
		return err
	}
	if seller == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(seller.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	seller.PasswordHash = hashedPassword
	seller.TokenVersion++
	if err := s.sellerRepo.Update(seller); err != nil {
		return err
	}
	_ = cache.SetSellerAuthState(context.Background(), cache.BuildSellerAuthState(seller))
	return nil
}
