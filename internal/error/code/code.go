package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 已创建.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 状态冲突.
	StatusConflict = 409
	// StatusRequestEntityTooLarge - 413: 请求体过大.
	StatusRequestEntityTooLarge = 413
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
)

// 管理员相关错误码 (101xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 101000
	// ErrAdminAlreadyExist - 400: 邮箱已被使用.
	ErrAdminAlreadyExist
	// ErrAdminPasswordIncorrect - 401: 邮箱或密码错误.
	ErrAdminPasswordIncorrect
	// ErrAdminDeleteSelf - 400: 不能删除自己.
	ErrAdminDeleteSelf
	// ErrAdminLastSuperAdmin - 400: 至少保留一个超级管理员.
	ErrAdminLastSuperAdmin
)

// 商品相关错误码 (102xxx).
const (
	// ErrProductNotFound - 404: 商品不存在.
	ErrProductNotFound int = iota + 102000
	// ErrProductTooManyImages - 400: 图片数量超出上限.
	ErrProductTooManyImages
)

// 订单相关错误码 (103xxx).
const (
	// ErrOrderNotFound - 404: 订单不存在.
	ErrOrderNotFound int = iota + 103000
	// ErrOrderInvalidStatus - 400: 订单状态不合法.
	ErrOrderInvalidStatus
	// ErrOrderIllegalTransition - 409: 订单状态不允许该变更.
	ErrOrderIllegalTransition
	// ErrOrderInvalidDeleteMode - 400: 删除方式不合法.
	ErrOrderInvalidDeleteMode
)

// 上传相关错误码 (104xxx).
const (
	// ErrUploadMissingFile - 400: 未上传文件.
	ErrUploadMissingFile int = iota + 104000
	// ErrUploadFileType - 400: 文件类型不支持.
	ErrUploadFileType
	// ErrUploadTooLarge - 413: 文件过大.
	ErrUploadTooLarge
	// ErrUploadFailed - 500: 保存文件失败.
	ErrUploadFailed
)
