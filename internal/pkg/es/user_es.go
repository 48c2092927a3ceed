package es

// UserES 对应 user_index 的文档结构
type UserES struct {
	UID       string  `json:"uid"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL string  `json:"avatar_url"`
}
