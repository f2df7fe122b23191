package action

// 入参同时支持 JSON 与表单（application/x-www-form-urlencoded）。
// 更新类入参字段为指针：nil 表示未提交，保持原值。

type CreatePostInput struct {
	Title     string  `json:"title" form:"title" validate:"required"`
	Content   *string `json:"content" form:"content"`
	Published bool    `json:"published" form:"published"`
	AuthorID  uint    `json:"authorId" form:"authorId" validate:"required"`
}

type UpdatePostInput struct {
	Title     *string `json:"title" form:"title"`
	Content   *string `json:"content" form:"content"`
	Published *bool   `json:"published" form:"published"`
}

type CreateUserInput struct {
	Email string  `json:"email" form:"email" validate:"required"`
	Name  *string `json:"name" form:"name"`
}

type UpdateUserInput struct {
	Email *string `json:"email" form:"email"`
	Name  *string `json:"name" form:"name"`
}

// nonEmpty 空串视为未提交
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
