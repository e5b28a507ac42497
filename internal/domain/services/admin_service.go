package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
	"github.com/hellosarowarhn-boop/ecomm/internal/infrastructure/config"
	"github.com/hellosarowarhn-boop/ecomm/utils"
)

// InterfaceAdminService Admin服务接口
type InterfaceAdminService interface {
	CheckPassword(password, hash string) bool
	GetAdminByID(ctx context.Context, id uint) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAllAdmins(ctx context.Context) ([]models.Admin, error)
	CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, id uint, input UpdateAdminInput) (*models.Admin, error)
	DeleteAdmin(ctx context.Context, id, actorID uint) error
}

// CreateAdminInput 创建管理员请求
type CreateAdminInput struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     models.AdminRole `json:"role"`
}

// UpdateAdminInput 更新管理员请求，nil 字段保持不变，空密码不修改密码
type UpdateAdminInput struct {
	Name     *string           `json:"name"`
	Email    *string           `json:"email"`
	Password string            `json:"password"`
	Role     *models.AdminRole `json:"role"`
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1  CheckPassword 验证密码是否匹配，两端空格不计入密码
func (s *AdminService) CheckPassword(password, hash string) bool {
	return utils.CheckPasswordHash(password, hash)
}

// 2 GetAllAdmins 按创建时间倒序获取所有管理员
func (s *AdminService) GetAllAdmins(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// 3  GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).First(&admin, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}

// 4  GetAdminByEmail 根据邮箱获取管理员
func (s *AdminService) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("email = ?", utils.NormalizeEmail(email)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &admin, nil
}

// 5  CreateAdmin 创建新管理员，默认角色为 co_admin
func (s *AdminService) CreateAdmin(ctx context.Context, input CreateAdminInput) (*models.Admin, error) {
	email := utils.NormalizeEmail(input.Email)
	password := utils.NormalizePassword(input.Password)
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleCoAdmin
	}
	if !role.Valid() {
		return nil, invalidf("invalid role %q", role)
	}

	db := s.DB.WithContext(ctx)

	// 验证邮箱唯一性
	if err := s.ensureEmailFree(db, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	admin := &models.Admin{
		Email:    email,
		Password: hashedPassword,
		Name:     strings.TrimSpace(input.Name),
		Role:     role,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// 6  UpdateAdmin 更新管理员信息
func (s *AdminService) UpdateAdmin(ctx context.Context, id uint, input UpdateAdminInput) (*models.Admin, error) {
	var admin *models.Admin
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Admin
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return fmt.Errorf("get admin: %w", err)
		}

		updates := map[string]interface{}{}

		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}

		// 如果更新邮箱，需要检查唯一性
		if input.Email != nil {
			email := utils.NormalizeEmail(*input.Email)
			if email == "" {
				return invalidf("email must not be empty")
			}
			if email != current.Email {
				if err := s.ensureEmailFree(tx, email, current.ID); err != nil {
					return err
				}
			}
			updates["email"] = email
		}

		if input.Role != nil && *input.Role != current.Role {
			if !input.Role.Valid() {
				return invalidf("invalid role %q", *input.Role)
			}
			// 至少保留一个超级管理员
			if current.Role == models.RoleSuperAdmin {
				if err := s.ensureAnotherSuperAdmin(tx, current.ID); err != nil {
					return err
				}
			}
			updates["role"] = *input.Role
		}

		// 如果更新密码，需要进行哈希处理
		if password := utils.NormalizePassword(input.Password); password != "" {
			hashedPassword, err := utils.HashPassword(password)
			if err != nil {
				return fmt.Errorf("密码加密失败: %w", err)
			}
			updates["password"] = hashedPassword
		}

		if len(updates) > 0 {
			if err := tx.Model(&current).Updates(updates).Error; err != nil {
				return fmt.Errorf("update admin: %w", err)
			}
		}

		if err := tx.First(&current, id).Error; err != nil {
			return fmt.Errorf("reload admin: %w", err)
		}
		admin = &current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// 7  DeleteAdmin 删除管理员，不能删除自己
func (s *AdminService) DeleteAdmin(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.First(&admin, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAdminNotFound
			}
			return fmt.Errorf("get admin: %w", err)
		}

		if admin.Role == models.RoleSuperAdmin {
			if err := s.ensureAnotherSuperAdmin(tx, admin.ID); err != nil {
				return err
			}
		}

		if err := tx.Delete(&admin).Error; err != nil {
			return fmt.Errorf("delete admin: %w", err)
		}
		return nil
	})
}

func (s *AdminService) ensureEmailFree(db *gorm.DB, email string, exceptID uint) error {
	var count int64
	query := db.Model(&models.Admin{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrAdminEmailExists
	}
	return nil
}

func (s *AdminService) ensureAnotherSuperAdmin(db *gorm.DB, exceptID uint) error {
	var count int64
	err := db.Model(&models.Admin{}).
		Where("role = ? AND id <> ?", models.RoleSuperAdmin, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("count super admins: %w", err)
	}
	if count == 0 {
		return ErrLastSuperAdmin
	}
	return nil
}
