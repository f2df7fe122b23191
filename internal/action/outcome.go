package action

import "encoding/json"

// Kind 仅用于日志和指标，不出现在响应体中
type Kind string

const (
	KindOK       Kind = "ok"
	KindInvalid  Kind = "invalid"
	KindNotFound Kind = "not_found"
	KindFailed   Kind = "failed"
)

// Outcome 是每个动作的返回值：成功带数据（或删除时带 message），失败只带一句可展示的错误。
// 底层错误只写日志，不返回给调用方。
type Outcome[T any] struct {
	Success bool
	Data    T
	Message string
	Error   string
	Kind    Kind
}

func OK[T any](data T) Outcome[T] {
	return Outcome[T]{Success: true, Data: data, Kind: KindOK}
}

// Done 成功但只有提示语（删除）
func Done[T any](msg string) Outcome[T] {
	return Outcome[T]{Success: true, Message: msg, Kind: KindOK}
}

func Invalid[T any](msg string) Outcome[T] {
	return Outcome[T]{Error: msg, Kind: KindInvalid}
}

func NotFound[T any](msg string) Outcome[T] {
	return Outcome[T]{Error: msg, Kind: KindNotFound}
}

func Failed[T any](msg string) Outcome[T] {
	return Outcome[T]{Error: msg, Kind: KindFailed}
}

type dataBody[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type messageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (o Outcome[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !o.Success:
		return json.Marshal(errorBody{Success: false, Error: o.Error})
	case o.Message != "":
		return json.Marshal(messageBody{Success: true, Message: o.Message})
	default:
		return json.Marshal(dataBody[T]{Success: true, Data: o.Data})
	}
}

func (o *Outcome[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*o = Outcome[T]{Success: raw.Success, Message: raw.Message, Error: raw.Error, Kind: KindFailed}
	if raw.Success {
		o.Kind = KindOK
	}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		return json.Unmarshal(raw.Data, &o.Data)
	}
	return nil
}
