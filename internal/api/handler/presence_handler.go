package handler

import (
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/service"

	"github.com/gin-gonic/gin"
)

type PresenceHandler struct {
	presenceSvc service.PresenceService
}

func NewPresenceHandler(presenceSvc service.PresenceService) *PresenceHandler {
	return &PresenceHandler{presenceSvc: presenceSvc}
}

func (s *PresenceHandler) Get(c *gin.Context) {
	uid := c.Param("uid")
	if uid == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	res, err := s.presenceSvc.Get(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
