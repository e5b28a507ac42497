package models

// AdminRole 管理员角色
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleCoAdmin    AdminRole = "co_admin"
)

// Valid 判断角色是否合法
func (r AdminRole) Valid() bool {
	return r == RoleSuperAdmin || r == RoleCoAdmin
}

// Admin represents back office accounts
type Admin struct {
	BaseModel
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string    `gorm:"type:varchar(255);not null" json:"-"` // Password not exposed in JSON
	Name     string    `gorm:"type:varchar(255)" json:"name"`
	Role     AdminRole `gorm:"type:varchar(20);not null;default:'co_admin'" json:"role"` // Role: super_admin, co_admin
}

// DisplayName 返回用于令牌和界面的名称
func (a *Admin) DisplayName() string {
	if a.Name == "" {
		return "Admin"
	}
	return a.Name
}
