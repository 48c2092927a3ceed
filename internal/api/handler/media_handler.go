package handler

import (
	"Evergreen/internal/pkg/consts"
	"Evergreen/internal/pkg/minio"
	"Evergreen/internal/pkg/response"
	"Evergreen/internal/pkg/util"
	"Evergreen/internal/service"
	log "log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct {
	userSvc service.UserService
}

func NewMediaHandler(userSvc service.UserService) *MediaHandler {
	return &MediaHandler{userSvc: userSvc}
}

// UploadAvatar 头像上传：仅图片、限 5MB，压缩后入 MinIO 并回写资料
func (s *MediaHandler) UploadAvatar(c *gin.Context) {
	uid := c.GetString("uid")

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > consts.AvatarMaxBytes {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	thumb, size, err := util.MakeThumbnail(reader, consts.AvatarThumbPx)
	if err != nil {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := "avatars/" + time.Now().Format("2006/01/02/") + uuid.NewString() + ".jpg"
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, thumb, size, "image/jpeg")
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	publicURL := minio.GetPublicURL(fileKey)
	if err = s.userSvc.UpdateAvatar(c.Request.Context(), uid, publicURL); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, map[string]string{"photo_url": publicURL})
}
