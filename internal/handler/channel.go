package handler

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SeorinLee/Software-frameworks-sub000/internal/config"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/domain"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/realtime"
	"github.com/SeorinLee/Software-frameworks-sub000/internal/service"
	apperrors "github.com/SeorinLee/Software-frameworks-sub000/pkg/errors"
	"github.com/SeorinLee/Software-frameworks-sub000/pkg/logger"
)

type ChannelHandler struct {
	channelService service.ChannelService
	messageService service.MessageService
	gateway        *realtime.Gateway
	uploadCfg      config.UploadConfig
	log            logger.Logger
}

func NewChannelHandler(
	channelService service.ChannelService,
	messageService service.MessageService,
	gateway *realtime.Gateway,
	uploadCfg config.UploadConfig,
	log logger.Logger,
) *ChannelHandler {
	return &ChannelHandler{
		channelService: channelService,
		messageService: messageService,
		gateway:        gateway,
		uploadCfg:      uploadCfg,
		log:            log,
	}
}

func (h *ChannelHandler) GetByID(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel ID"})
		return
	}

	channel, err := h.channelService.GetByID(c.Request.Context(), channelID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, channel)
}

// GetMessages возвращает полную историю канала в хронологическом порядке
func (h *ChannelHandler) GetMessages(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel ID"})
		return
	}

	messages, err := h.channelService.Messages(c.Request.Context(), channelID)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Upload принимает multipart-файл, сохраняет его на диск и проводит
// сообщение через тот же путь persist-and-broadcast, что и socket-отправка
func (h *ChannelHandler) Upload(c *gin.Context) {
	channelID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel ID"})
		return
	}

	username := c.PostForm("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	body := c.PostForm("message")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > h.uploadCfg.MaxSizeMB*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is too large"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	mtype, err := mimetype.DetectReader(src)
	src.Close()
	if err != nil {
		h.log.Error("Failed to detect file type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}

	fileType, ok := coarseFileType(mtype.String())
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		return
	}

	filename := uuid.New().String() + mtype.Extension()
	dst := filepath.Join(h.uploadCfg.Dir, filename)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		h.log.Error("Failed to save uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	fileURL := path.Join(h.uploadCfg.PublicPath, filename)
	message, err := h.messageService.Send(c.Request.Context(), channelID, username, body, fileURL, fileType)
	if err != nil {
		c.JSON(apperrors.HTTPStatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	h.gateway.BroadcastMessage(message)

	c.JSON(http.StatusCreated, message)
}

func coarseFileType(mime string) (string, bool) {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.FileTypeImage, true
	case strings.HasPrefix(mime, "video/"):
		return domain.FileTypeVideo, true
	default:
		return "", false
	}
}
