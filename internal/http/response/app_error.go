package response

// AppError 接口错误，Key 为国际化文案键，Err 为底层原因（仅用于日志）
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	text := e.Message
	if text == "" {
		text = e.Key
	}
	if e.Err == nil {
		return text
	}
	return text + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewKeyedError 以文案键创建错误，Message 由调用方按语言填充
func NewKeyedError(code int, key string, err error) *AppError {
	return &AppError{
		Code: code,
		Key:  key,
		Err:  err,
	}
}

// Localize 填充本地化后的提示消息
func (e *AppError) Localize(message string) *AppError {
	e.Message = message
	return e
}
