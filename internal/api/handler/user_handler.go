package handler

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/pkg/security"
	"Evergreen/internal/service"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc     service.UserService
	presenceSvc service.PresenceService
}

func NewUserHandler(userSvc service.UserService, presenceSvc service.PresenceService) *UserHandler {
	return &UserHandler{
		userSvc:     userSvc,
		presenceSvc: presenceSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.userSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) LoginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.userSvc.LoginWithGoogle(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Logout 黑名单当前 Token 并标记离线
func (s *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString("uid")

	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.userSvc.Logout(c.Request.Context(), signature); err != nil {
		response.Error(c, err)
		return
	}
	// 尽力而为，失败不影响登出
	_ = s.presenceSvc.Offline(c.Request.Context(), uid)

	response.Success(c, nil)
}

func (s *UserHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("uid")
	res, err := s.userSvc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) UpdateProfile(c *gin.Context) {
	uid := c.GetString("uid")
	var req dto.UpdateProfileDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.userSvc.UpdateProfile(c.Request.Context(), uid, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	from, _ := strconv.Atoi(c.DefaultQuery("from", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := s.userSvc.SearchUsers(c.Request.Context(), query, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *UserHandler) GetTheme(c *gin.Context) {
	uid := c.GetString("uid")
	theme, err := s.userSvc.GetTheme(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ThemeDTO{Theme: theme})
}

func (s *UserHandler) SetTheme(c *gin.Context) {
	uid := c.GetString("uid")
	var req dto.ThemeDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.SetTheme(c.Request.Context(), uid, req.Theme); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
