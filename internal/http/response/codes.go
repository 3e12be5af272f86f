package response

// 业务状态码（HTTP 状态固定为 200，错误语义放在 status_code）
const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// IsServerError 判断是否为服务端错误码
func IsServerError(code int) bool {
	return code >= CodeInternal
}
