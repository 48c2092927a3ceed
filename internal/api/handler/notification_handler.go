package handler

import (
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifySvc service.NotificationService
}

func NewNotificationHandler(notifySvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifySvc: notifySvc}
}

// List 查看通知面板，查看即置读
func (s *NotificationHandler) List(c *gin.Context) {
	uid := c.GetString("uid")
	res, err := s.notifySvc.List(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *NotificationHandler) ClearRead(c *gin.Context) {
	uid := c.GetString("uid")
	n, err := s.notifySvc.ClearRead(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]int64{"deleted": n})
}

func (s *NotificationHandler) Dismiss(c *gin.Context) {
	uid := c.GetString("uid")
	id := c.Param("id")
	if err := s.notifySvc.Dismiss(c.Request.Context(), uid, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *NotificationHandler) Badge(c *gin.Context) {
	uid := c.GetString("uid")
	res, err := s.notifySvc.Badge(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
