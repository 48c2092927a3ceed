package model

import (
	"time"
)

type User struct {
	UID       string  `gorm:"type:varchar(36);primaryKey"`
	Email     string  `gorm:"type:varchar(100);uniqueIndex:idx_email"`
	Password  *string `gorm:"type:varchar(255)"` // 联邦登录用户为空
	Name      string  `gorm:"type:varchar(50)"`
	PhotoURL  string  `gorm:"type:varchar(500)"`
	Bio       *string `gorm:"type:varchar(200)"`
	Provider  string  `gorm:"type:varchar(20);default:'password'"` // password / google
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
