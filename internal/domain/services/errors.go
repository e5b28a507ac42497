package services

import (
	"errors"
	"fmt"
)

// 业务错误，控制器通过 errors.Is 映射为错误码
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrTooManyImages      = errors.New("too many product images")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidDeleteMode  = errors.New("invalid delete mode")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminEmailExists   = errors.New("email already exists")
	ErrCannotDeleteSelf   = errors.New("cannot delete yourself")
	ErrLastSuperAdmin     = errors.New("at least one super admin must remain")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// ValidationError 请求字段校验失败，Message 直接返回给客户端
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
