package models

import "time"

// BaseModel 所有表共用的主键和时间戳字段
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginationQuery struct {
	Limit  int `form:"limit" json:"limit"`
	Offset int `form:"offset" json:"offset"`
}

// 分页默认值与上限
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Normalize 修正非法的分页参数
func (q PaginationQuery) Normalize() PaginationQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
