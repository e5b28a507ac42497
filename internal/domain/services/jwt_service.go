package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
)

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(admin *models.Admin) (string, error)
	ExtractClaims(tokenString string) (*AdminClaims, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	TokenTTL() time.Duration
}

// LoginResult 表示登录结果
type LoginResult struct {
	Token string       `json:"-"`
	Admin *AdminClaims `json:"admin"`
}

// AdminClaims 定义JWT令牌的声明结构
type AdminClaims struct {
	ID    uint             `json:"id"`
	Email string           `json:"email"`
	Role  models.AdminRole `json:"role"`
	Name  string           `json:"name"`
	jwt.RegisteredClaims
}

// HasRole 判断令牌角色是否在允许列表中
func (c *AdminClaims) HasRole(roles ...models.AdminRole) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey string
	issuer    string
	ttl       time.Duration
	admins    InterfaceAdminService
	now       func() time.Time
}

// NewJWTService 创建一个新的JWT服务，账户查询和密码校验交给管理员服务
func NewJWTService(cfg *config.Config, admins InterfaceAdminService) InterfaceJWTService {
	return &JWTService{
		secretKey: cfg.JWTSecretKey,
		issuer:    "ecomm-admin",
		ttl:       cfg.TokenTTL,
		admins:    admins,
		now:       time.Now,
	}
}

// TokenTTL 令牌有效期，同时用作 cookie 的 Max-Age
func (s *JWTService) TokenTTL() time.Duration {
	return s.ttl
}

// GenerateToken 生成JWT令牌
func (s *JWTService) GenerateToken(admin *models.Admin) (string, error) {
	now := s.now()
	claims := &AdminClaims{
		ID:    admin.ID,
		Email: admin.Email,
		Role:  admin.Role,
		Name:  admin.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", admin.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ExtractClaims 验证令牌签名和有效期并提取声明
func (s *JWTService) ExtractClaims(tokenString string) (*AdminClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Issuer != s.issuer || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Login 校验邮箱和密码，成功后签发令牌
func (s *JWTService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.admins.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if !s.admins.CheckPassword(password, admin.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(admin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	claims := &AdminClaims{
		ID:    admin.ID,
		Email: admin.Email,
		Role:  admin.Role,
		Name:  admin.DisplayName(),
	}
	return &LoginResult{Token: token, Admin: claims}, nil
}
