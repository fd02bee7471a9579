package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/collabhub-backend/internal/http/handlers/common"
	"github.com/ignatzorin/collabhub-backend/internal/service"
)

// sniffSize сколько байт читаем для определения типа по сигнатуре.
const sniffSize = 261

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// MediaHandler управляет загрузкой и удалением медиа-файлов.
type MediaHandler struct {
	media    *service.MediaService
	maxBytes int64
}

// NewMediaHandler создаёт новый хэндлер.
func NewMediaHandler(media *service.MediaService, maxBytes int64) *MediaHandler {
	return &MediaHandler{media: media, maxBytes: maxBytes}
}

// Upload обрабатывает POST /media/photos (multipart: file, purpose).
func (h *MediaHandler) Upload(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "поле file обязательно")
		return
	}
	if file.Size == 0 {
		common.RespondBadRequest(c, "файл не может быть пустым")
		return
	}
	if h.maxBytes > 0 && file.Size > h.maxBytes {
		common.RespondBadRequest(c, fmt.Sprintf("размер файла превышает %d МБ", h.maxBytes/(1024*1024)))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		common.RespondBadRequest(c, "неподдерживаемый формат файла. Разрешены: .jpg, .jpeg, .png, .gif, .webp")
		return
	}

	src, err := file.Open()
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}
	defer src.Close()

	// Тип определяем по содержимому, заголовку клиента не доверяем.
	head := make([]byte, sniffSize)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil || !allowedMimeTypes[kind.MIME.Value] {
		common.RespondBadRequest(c, "содержимое файла не является поддерживаемым изображением")
		return
	}

	media, err := h.media.Upload(c.Request.Context(), userID, service.UploadInput{
		FileName:    file.Filename,
		ContentType: kind.MIME.Value,
		Purpose:     c.PostForm("purpose"),
		Content:     io.MultiReader(bytes.NewReader(head), src),
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// ListMedia обрабатывает GET /media/photos.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}

	files, err := h.media.ListMedia(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, files)
}

// DeleteMedia обрабатывает DELETE /media/photos/:id.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	userID, ok := common.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := common.RequireUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.media.DeleteMedia(c.Request.Context(), userID, id); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
