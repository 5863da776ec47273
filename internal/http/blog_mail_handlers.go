package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"propertywala/internal/service"
)

func (h *Handler) listBlogs(c *gin.Context) {
	blogs, err := h.blogs.List(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list blogs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, blogs)
}

func (h *Handler) insertBlog(c *gin.Context) {
	var req struct {
		Blog struct {
			Title   string `json:"blogTitle"`
			Content string `json:"blogContent"`
		} `json:"blog"`
		Image string `json:"image"`
		User  struct {
			Name string `json:"name"`
			ID   string `json:"_id"`
		} `json:"user"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	_, err := h.blogs.Create(c.Request.Context(), req.Blog.Title, req.Blog.Content, req.User.Name, req.User.ID, req.Image)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Blog uploaded")
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all the fields"})
	default:
		h.logger.Errorf("insert blog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) deleteBlog(c *gin.Context) {
	err := h.blogs.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.String(http.StatusOK, "Blog deleted")
	case errors.Is(err, service.ErrBlogNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "blog not found"})
	default:
		h.logger.Errorf("delete blog: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) subscribeMail(c *gin.Context) {
	err := h.mail.Subscribe(c.Request.Context(), c.Param("mailId"))
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mail address"})
	default:
		h.logger.Errorf("subscribe mail: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) sendMailAll(c *gin.Context) {
	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.mail.SendToAllUsers(c.Request.Context(), req.Subject, req.Content)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Mail sent successfully")
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all the fields"})
	default:
		h.logger.Errorf("send mail all: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) sendNewsletter(c *gin.Context) {
	var req struct {
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.mail.SendNewsletter(c.Request.Context(), req.Subject, req.Content)
	switch {
	case err == nil:
		c.String(http.StatusOK, "Mail sent successfully")
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all the fields"})
	default:
		h.logger.Errorf("send newsletter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
