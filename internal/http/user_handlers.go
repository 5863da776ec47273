package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"propertywala/internal/service"
	"propertywala/internal/storage"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) setCertified(c *gin.Context) {
	certified := c.Param("change") == "true"
	err := h.users.SetCertified(c.Request.Context(), c.Param("userId"), certified)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": "user certification updated"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("set certified: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) setAdmin(c *gin.Context) {
	admin := c.Param("change") == "true"
	err := h.users.SetAdmin(c.Request.Context(), c.Param("userId"), admin)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": "user admin status updated"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("set admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) deleteUserByAdmin(c *gin.Context) {
	var req struct {
		DeleteUserID string `json:"deleteUserId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.users.DeleteByAdmin(c.Request.Context(), req.DeleteUserID); err != nil {
		h.logger.Errorf("delete user by admin: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "there was an error deleting the account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": "user account has been deleted!"})
}

func (h *Handler) uploadProfileImage(c *gin.Context) {
	userID := c.PostForm("userId")
	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorf("open upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer file.Close()

	// keys stay unique across re-uploads of the same filename
	key := fmt.Sprintf("%x%s", time.Now().UnixMilli(), filepath.Base(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.storage.Put(c.Request.Context(), key, contentType, file); err != nil {
		h.logger.Errorf("store upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	err = h.users.SetProfileImage(c.Request.Context(), userID, key)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": "File uploaded successfully", "key": key})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("set profile image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) getProfileImage(c *gin.Context) {
	object, err := h.storage.Get(c.Request.Context(), c.Param("imgId"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		h.logger.Errorf("get profile image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer object.Body.Close()

	contentType := object.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, object.Size, contentType, object.Body, nil)
}
