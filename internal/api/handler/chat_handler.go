package handler

import (
	"Evergreen/internal/api/dto"
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatSvc service.ChatService
}

func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

func (s *ChatHandler) Send(c *gin.Context) {
	uid := c.GetString("uid")
	var req dto.SendMessageDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.chatSvc.SendMessage(c.Request.Context(), uid, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ChatHandler) Edit(c *gin.Context) {
	uid := c.GetString("uid")
	msgID := c.Param("id")
	var req dto.EditMessageDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := s.chatSvc.EditMessage(c.Request.Context(), uid, msgID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ChatHandler) Delete(c *gin.Context) {
	uid := c.GetString("uid")
	msgID := c.Param("id")
	if err := s.chatSvc.DeleteMessage(c.Request.Context(), uid, msgID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ChatHandler) History(c *gin.Context) {
	uid := c.GetString("uid")
	peerUID := c.Query("peer_uid")
	res, err := s.chatSvc.GetHistory(c.Request.Context(), uid, peerUID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *ChatHandler) List(c *gin.Context) {
	uid := c.GetString("uid")
	res, err := s.chatSvc.GetConversationList(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
