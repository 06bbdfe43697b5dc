package handlers

import (
	"fmt"
	"time"

	"github.com/Avinash-006/UniChat/internal/services"
	"github.com/Avinash-006/UniChat/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type FilesHandler struct {
	Files          *services.FileService
	DownloadURLTTL time.Duration
}

func NewFilesHandler(files *services.FileService, downloadURLTTL time.Duration) *FilesHandler {
	if downloadURLTTL <= 0 {
		downloadURLTTL = 15 * time.Minute
	}
	return &FilesHandler{Files: files, DownloadURLTTL: downloadURLTTL}
}

func (h *FilesHandler) Upload(c *fiber.Ctx) error {
	userID, err := parseID(c.Params("userId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "file is required")
	}

	stream, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed opening uploaded file")
	}
	defer stream.Close()

	file, err := h.Files.Upload(c.UserContext(), services.UploadInput{
		UserID:      userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     stream,
	})
	if err != nil {
		return respondError(c, "file_upload_failed", err)
	}

	return utils.Success(c, fiber.StatusCreated, file)
}

func (h *FilesHandler) Download(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	file, body, err := h.Files.Open(c.UserContext(), fileID)
	if err != nil {
		return respondError(c, "file_download_failed", err)
	}

	c.Set("Content-Type", file.FileType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.SendStream(body, int(file.Size))
}

func (h *FilesHandler) DownloadURL(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	url, err := h.Files.DownloadURL(c.UserContext(), fileID, h.DownloadURLTTL)
	if err != nil {
		return respondError(c, "file_download_url_failed", err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"url":       url,
		"expiresIn": int(h.DownloadURLTTL.Seconds()),
	})
}

func (h *FilesHandler) ListForUser(c *fiber.Ctx) error {
	files, err := h.Files.ListUserFiles(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, "file_list_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, files)
}

func (h *FilesHandler) Delete(c *fiber.Ctx) error {
	fileID, err := parseID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid file id")
	}

	deleted, err := h.Files.Delete(c.UserContext(), fileID)
	if err != nil {
		return respondError(c, "file_delete_failed", err)
	}
	return utils.Success(c, fiber.StatusOK, newOutcome(deleted, "File deleted successfully", "Cannot delete file"))
}
