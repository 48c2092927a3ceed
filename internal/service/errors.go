package service

import (
	"Evergreen/internal/pkg/chat"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserExist          = errors.New("邮箱已注册")
	ErrPasswordIncorrect  = errors.New("邮箱或密码错误")
	ErrPasswordWeak       = errors.New("密码强度不足")
	ErrGoogleTokenInvalid = errors.New("Google凭证无效")
	ErrMessageEmpty       = errors.New("消息内容不能为空")
	ErrMessageNotFound    = errors.New("消息不存在")
	ErrMessageDeleted     = errors.New("消息已撤回")
	ErrMessageNotEditable = errors.New("仅文本消息支持编辑")
	ErrNotMessageSender   = errors.New("无权操作他人消息")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrFileTooLarge       = errors.New("文件超过大小限制")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:              BadRequest,
	ErrUserNotFound:              NotFound,
	ErrUserExist:                 BadRequest,
	ErrPasswordIncorrect:         Unauthorized,
	ErrPasswordWeak:              BadRequest,
	ErrGoogleTokenInvalid:        Unauthorized,
	ErrMessageEmpty:              BadRequest,
	ErrMessageNotFound:           NotFound,
	ErrMessageDeleted:            BadRequest,
	ErrMessageNotEditable:        BadRequest,
	ErrNotMessageSender:          Forbidden,
	ErrFileNotSupported:          BadRequest,
	ErrFileTooLarge:              BadRequest,
	chat.ErrInvalidParticipants:  BadRequest,
	UnauthorizedError:            Unauthorized,
	UnExpectedError:              InternalServerError,
}
