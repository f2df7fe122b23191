package response

// 传输层错误码（直接基于 HTTP 语义），只出现在失败信封里
const (
	CodeBadRequest      = 400
	CodeNotFound        = 404
	CodeEntityTooLarge  = 413
	CodeTooManyRequests = 429
	CodeServerError     = 500
	CodeUnavailable     = 503
	CodeTimeout         = 504
)

// CodeMsgMap 用于集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeBadRequest:      "Bad request",
	CodeNotFound:        "Not found",
	CodeEntityTooLarge:  "Request body too large",
	CodeTooManyRequests: "Too many requests",
	CodeServerError:     "Internal error",
	CodeUnavailable:     "Server busy",
	CodeTimeout:         "Timeout",
}
