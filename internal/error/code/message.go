package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "success",
	ErrUnknown:          "Internal server error",
	ErrBind:             "Invalid request parameters",
	ErrValidation:       "Request validation failed",
	ErrTokenInvalid:     "Invalid or missing authentication token",
	ErrTooManyRequests:  "Too many requests, please try again later",
	ErrPermissionDenied: "Insufficient permissions",

	// 管理员相关错误码
	ErrAdminNotFound:          "Admin not found",
	ErrAdminAlreadyExist:      "Email already exists",
	ErrAdminPasswordIncorrect: "Invalid credentials",
	ErrAdminDeleteSelf:        "Cannot delete yourself",
	ErrAdminLastSuperAdmin:    "At least one super admin must remain",

	// 商品相关错误码
	ErrProductNotFound:      "Product not found",
	ErrProductTooManyImages: "Maximum 5 images allowed",

	// 订单相关错误码
	ErrOrderNotFound:          "Order not found",
	ErrOrderInvalidStatus:     "Invalid order status",
	ErrOrderIllegalTransition: "Order status change not allowed",
	ErrOrderInvalidDeleteMode: "Invalid delete action",

	// 上传相关错误码
	ErrUploadMissingFile: "No file uploaded",
	ErrUploadFileType:    "Unsupported file type",
	ErrUploadTooLarge:    "File too large",
	ErrUploadFailed:      "Failed to save file",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrTooManyRequests:  StatusTooManyRequests,
	ErrPermissionDenied: StatusForbidden,

	// 管理员相关错误码
	ErrAdminNotFound:          StatusNotFound,
	ErrAdminAlreadyExist:      StatusBadRequest,
	ErrAdminPasswordIncorrect: StatusUnauthorized,
	ErrAdminDeleteSelf:        StatusBadRequest,
	ErrAdminLastSuperAdmin:    StatusBadRequest,

	// 商品相关错误码
	ErrProductNotFound:      StatusNotFound,
	ErrProductTooManyImages: StatusBadRequest,

	// 订单相关错误码
	ErrOrderNotFound:          StatusNotFound,
	ErrOrderInvalidStatus:     StatusBadRequest,
	ErrOrderIllegalTransition: StatusConflict,
	ErrOrderInvalidDeleteMode: StatusBadRequest,

	// 上传相关错误码
	ErrUploadMissingFile: StatusBadRequest,
	ErrUploadFileType:    StatusBadRequest,
	ErrUploadTooLarge:    StatusRequestEntityTooLarge,
	ErrUploadFailed:      StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "Internal server error"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
