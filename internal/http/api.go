// Package http wires HTTP routes to the domain services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propertywala/internal/service"
	"propertywala/internal/storage"
)

// sessionCookie is the identity cookie carrying the signed token.
const sessionCookie = "joes"

// Handler wires HTTP routes to domain services.
type Handler struct {
	sessions   service.SessionService
	users      service.UserService
	properties service.PropertyService
	blogs      service.BlogService
	mail       service.MailService
	storage    storage.Service
	logger     *logrus.Logger
}

func NewHandler(
	sessions service.SessionService,
	users service.UserService,
	properties service.PropertyService,
	blogs service.BlogService,
	mailSvc service.MailService,
	store storage.Service,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		sessions:   sessions,
		users:      users,
		properties: properties,
		blogs:      blogs,
		mail:       mailSvc,
		storage:    store,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(h.requestLogger())

	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "api is live")
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/logout", h.logout)
		auth.POST("/changePassword", h.changePassword)
		auth.POST("/deleteUser", h.deleteUser)
		auth.GET("/verify", h.verify)
	}

	router.POST("/wishlist/:propertyId", h.requireAuth(), h.toggleWishlist)
	router.GET("/users/all", h.listUsers)
	router.POST("/certified/:userId/:change", h.setCertified)
	router.POST("/admin/deleteUserByAdmin", h.deleteUserByAdmin)
	router.POST("/admin/:userId/:change", h.setAdmin)
	router.POST("/uploadProfileImage", h.uploadProfileImage)
	router.GET("/profileImage/:imgId", h.getProfileImage)

	router.POST("/mail/:mailId", h.subscribeMail)
	router.POST("/allMail", h.sendMailAll)
	router.POST("/newsletterMail", h.sendNewsletter)

	properties := router.Group("/properties")
	{
		properties.GET("/all", h.listProperties)
		properties.GET("/user/:id", h.listPropertiesByUser)
		properties.GET("/property-detail/:id", h.propertyDetail)
		properties.GET("/show-properties/:type", h.filterProperties)
		properties.GET("/show-properties/:type/:location", h.filterProperties)
		properties.GET("/getWishlist/:uid", h.getWishlist)
		properties.GET("/checkWishlist/:uid/:pid", h.checkWishlist)
		properties.POST("/addToWishlist/:uid/:pid", h.addToWishlist)
		properties.POST("/removeFromWishlist/:uid/:pid", h.removeFromWishlist)
		properties.POST("/remove/:id", h.removeProperty)
		properties.POST("/removeProperty", h.deleteOwnedProperty)
		properties.POST("/listProperty", h.listProperty)
	}

	blogs := router.Group("/blogs")
	{
		blogs.GET("/all", h.listBlogs)
		blogs.POST("/insert", h.insertBlog)
		blogs.POST("/deleteBlog/:id", h.deleteBlog)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, int(h.sessions.TokenTTL().Seconds()), "/", "", false, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
