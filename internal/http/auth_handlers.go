package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"propertywala/internal/auth"
	"propertywala/internal/domain"
	"propertywala/internal/service"
)

// contextUserKey is where requireAuth stores the resolved account.
const contextUserKey = "user"

// requireAuth resolves the session cookie to a user and aborts the request
// when that fails. Missing cookie and unknown user map to 401, a token that
// fails verification maps to 400.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		user, err := h.sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotLoggedIn):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			case errors.Is(err, auth.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
			case errors.Is(err, service.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user found"})
			default:
				h.logger.Errorf("authenticate: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}

func (h *Handler) register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Please fill all the fields"})
		return
	}

	_, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"msg": "You have registered now log in"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusOK, gin.H{"error": "Please fill all the fields"})
	case errors.Is(err, service.ErrWeakPassword):
		c.JSON(http.StatusOK, gin.H{"error": "Password should contain lower case, upper case, number and minimum of length 8"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusOK, gin.H{"error": "Email id already Taken"})
	default:
		h.logger.Errorf("register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"error": "Please fill all the fields"})
		return
	}

	user, token, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		h.setSessionCookie(c, token)
		c.JSON(http.StatusOK, gin.H{"user": user})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusOK, gin.H{"error": "Please fill all the fields"})
	case errors.Is(err, service.ErrEmailNotRegistered):
		c.JSON(http.StatusOK, gin.H{"error": "Email not registered, register first"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusOK, gin.H{"error": "Incorrect password!"})
	default:
		h.logger.Errorf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"msg": "Logout successful"})
}

func (h *Handler) verify(c *gin.Context) {
	token, _ := c.Cookie(sessionCookie)
	user, err := h.sessions.Authenticate(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"user": user})
	case errors.Is(err, service.ErrNotLoggedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid token"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("verify: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) changePassword(c *gin.Context) {
	var req struct {
		UserID      string `json:"userId"`
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), req.UserID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": "your password has been successfully changed!"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusOK, gin.H{"error": "please verify your old password"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("change password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) deleteUser(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.users.Delete(c.Request.Context(), req.UserID, req.Password)
	switch {
	case err == nil:
		h.clearSessionCookie(c)
		c.JSON(http.StatusOK, gin.H{"success": "your account has been deleted!"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusOK, gin.H{"error": "wrong password!"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	default:
		h.logger.Errorf("delete user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) toggleWishlist(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	added, err := h.users.ToggleWishlist(c.Request.Context(), user.ID, c.Param("propertyId"))
	if err != nil {
		h.logger.Errorf("toggle wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}
