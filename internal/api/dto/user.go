package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=50"`
}

// LoginDTO 邮箱密码登录
type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginDTO 联邦登录
type GoogleLoginDTO struct {
	IDToken string `json:"id_token" binding:"required"`
}

// UserDTO 用户
type UserDTO struct {
	UID       string     `json:"uid"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	PhotoURL  string     `json:"photo_url"`
	Bio       *string    `json:"bio,omitempty"`
	Provider  string     `json:"provider,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// AuthDTO 登录/注册响应
type AuthDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
	// ShowProfileCompletion 资料未完善（无头像）时提示补全
	ShowProfileCompletion bool `json:"show_profile_completion"`
}

// UpdateProfileDTO 更新资料
type UpdateProfileDTO struct {
	Name *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Bio  *string `json:"bio,omitempty" binding:"omitempty,max=200"`
}

// ThemeDTO 主题偏好
type ThemeDTO struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}
