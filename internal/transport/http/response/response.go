package response

// Resp 与 action.Outcome 的失败分支同形：{"success":false,"error":"..."}，
// 额外带一个传输层 code 方便排查
type Resp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
}

// Error 失败响应（可以传自定义 msg 覆盖默认）
func Error(code int, customMsg string) Resp {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	return Resp{Error: msg, Code: code}
}
