package service

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/model"
	"Evergreen/internal/pkg/consts"
	"Evergreen/internal/pkg/es"
	"Evergreen/internal/pkg/redis"
	"Evergreen/internal/pkg/security"
	"Evergreen/internal/repository"
	"context"
	log "log/slog"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

const minPasswordLen = 6

// UserService 用户服务接口定义
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthDTO, error)
	Login(ctx context.Context, req *dto.LoginDTO) (*dto.AuthDTO, error)
	LoginWithGoogle(ctx context.Context, req *dto.GoogleLoginDTO) (*dto.AuthDTO, error)
	Logout(ctx context.Context, tokenSignature string) error
	GetProfile(ctx context.Context, uid string) (*dto.UserDTO, error)
	UpdateProfile(ctx context.Context, uid string, req *dto.UpdateProfileDTO) (*dto.UserDTO, error)
	UpdateAvatar(ctx context.Context, uid string, photoURL string) error
	SearchUsers(ctx context.Context, query string, from, size int) ([]*dto.UserDTO, error)
	GetTheme(ctx context.Context, uid string) (string, error)
	SetTheme(ctx context.Context, uid string, theme string) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	esRepo   es.UserRepo
	verifier GoogleVerifier
}

func NewUserService(userRepo repository.UserRepo, esRepo es.UserRepo, verifier GoogleVerifier) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		esRepo:   esRepo,
		verifier: verifier,
	}
}

// Register 邮箱注册
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthDTO, error) {
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordWeak
	}

	exist, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, UnExpectedError
	}
	if exist != nil {
		return nil, ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, UnExpectedError
	}

	user := &model.User{
		UID:      uuid.NewString(),
		Email:    req.Email,
		Password: &hashed,
		Name:     req.Name,
		Provider: "password",
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, UnExpectedError
	}

	s.indexUser(ctx, user)
	return s.toAuthDTO(user)
}

// Login 邮箱密码登录
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginDTO) (*dto.AuthDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil || user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	return s.toAuthDTO(user)
}

// LoginWithGoogle 联邦登录：校验 ID Token 后建档或合并
// 合并只补空字段，不用空值覆盖已有资料
func (s *userServiceImpl) LoginWithGoogle(ctx context.Context, req *dto.GoogleLoginDTO) (*dto.AuthDTO, error) {
	info, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, ErrGoogleTokenInvalid
	}

	user, err := s.userRepo.GetUserByEmail(ctx, info.Email)
	if err != nil {
		return nil, UnExpectedError
	}

	if user == nil {
		user = &model.User{
			UID:      uuid.NewString(),
			Email:    info.Email,
			Name:     info.Name,
			PhotoURL: info.Picture,
			Provider: "google",
		}
		if err = s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, UnExpectedError
		}
	} else {
		changed := false
		if user.Name == "" && info.Name != "" {
			user.Name = info.Name
			changed = true
		}
		if user.PhotoURL == "" && info.Picture != "" {
			user.PhotoURL = info.Picture
			changed = true
		}
		if changed {
			if err = s.userRepo.UpdateUser(ctx, user); err != nil {
				return nil, UnExpectedError
			}
		}
	}

	s.indexUser(ctx, user)
	return s.toAuthDTO(user)
}

// Logout 将 Token 签名写入黑名单，存活期与 Token 有效期一致
func (s *userServiceImpl) Logout(ctx context.Context, tokenSignature string) error {
	return redis.SetWithExpiration(ctx, tokenSignature, "revoked", security.JWTExpirationTime)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, uid string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user), nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, uid string, req *dto.UpdateProfileDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if err = s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, UnExpectedError
	}

	s.indexUser(ctx, user)
	return s.toUserDTO(user), nil
}

// UpdateAvatar 头像上传完成后回写资料并重建索引
func (s *userServiceImpl) UpdateAvatar(ctx context.Context, uid string, photoURL string) error {
	if err := s.userRepo.UpdateAvatar(ctx, uid, photoURL); err != nil {
		return UnExpectedError
	}

	user, err := s.userRepo.GetUserByUID(ctx, uid)
	if err != nil || user == nil {
		return nil
	}
	s.indexUser(ctx, user)
	return nil
}

// SearchUsers 用户目录检索
func (s *userServiceImpl) SearchUsers(ctx context.Context, query string, from, size int) ([]*dto.UserDTO, error) {
	docs, err := s.esRepo.SearchUsers(ctx, query, from, size)
	if err != nil {
		return nil, UnExpectedError
	}

	res := make([]*dto.UserDTO, 0, len(docs))
	for _, doc := range docs {
		res = append(res, &dto.UserDTO{
			UID:      doc.UID,
			Email:    doc.Email,
			Name:     doc.Name,
			Bio:      doc.Bio,
			PhotoURL: doc.AvatarURL,
		})
	}
	return res, nil
}

// GetTheme 读取主题偏好，未设置时返回默认浅色
func (s *userServiceImpl) GetTheme(ctx context.Context, uid string) (string, error) {
	theme, err := redis.GetValue(ctx, consts.UserThemeKey+uid)
	if err != nil {
		return "", UnExpectedError
	}
	if theme == "" {
		return consts.ThemeLight, nil
	}
	return theme, nil
}

func (s *userServiceImpl) SetTheme(ctx context.Context, uid string, theme string) error {
	if theme != consts.ThemeLight && theme != consts.ThemeDark {
		return ErrParamInvalid
	}
	return redis.SetValue(ctx, consts.UserThemeKey+uid, theme)
}

// indexUser 同步用户文档到 Elasticsearch，失败只记日志不阻断主流程
func (s *userServiceImpl) indexUser(ctx context.Context, user *model.User) {
	doc := &es.UserES{
		UID:       user.UID,
		Email:     user.Email,
		Name:      user.Name,
		Bio:       user.Bio,
		AvatarURL: user.PhotoURL,
	}
	if err := s.esRepo.IndexUser(ctx, doc); err != nil {
		log.ErrorContext(ctx, "index user failed", "uid", user.UID, "err", err)
	}
}

func (s *userServiceImpl) toUserDTO(user *model.User) *dto.UserDTO {
	res := &dto.UserDTO{}
	_ = copier.Copy(res, user)
	res.CreatedAt = &user.CreatedAt
	return res
}

func (s *userServiceImpl) toAuthDTO(user *model.User) (*dto.AuthDTO, error) {
	token, err := security.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, UnExpectedError
	}
	return &dto.AuthDTO{
		Token:                 token,
		User:                  s.toUserDTO(user),
		ShowProfileCompletion: user.PhotoURL == "",
	}, nil
}
