package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"propertywala/internal/domain"
	"propertywala/internal/service"
)

func (h *Handler) listProperties(c *gin.Context) {
	properties, err := h.properties.List(c.Request.Context())
	if err != nil {
		h.logger.Errorf("list properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) listPropertiesByUser(c *gin.Context) {
	properties, err := h.properties.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Errorf("list properties by user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) propertyDetail(c *gin.Context) {
	property, err := h.properties.GetByID(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, property)
	case errors.Is(err, service.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	default:
		h.logger.Errorf("property detail: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) filterProperties(c *gin.Context) {
	properties, err := h.properties.Filter(c.Request.Context(), c.Param("type"), c.Param("location"))
	if err != nil {
		h.logger.Errorf("filter properties: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

func (h *Handler) getWishlist(c *gin.Context) {
	properties, err := h.properties.WishlistProperties(c.Request.Context(), c.Param("uid"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, properties)
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		h.logger.Errorf("get wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) checkWishlist(c *gin.Context) {
	inWishlist, err := h.users.CheckWishlist(c.Request.Context(), c.Param("uid"), c.Param("pid"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"result": inWishlist})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		h.logger.Errorf("check wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) addToWishlist(c *gin.Context) {
	err := h.users.AddToWishlist(c.Request.Context(), c.Param("uid"), c.Param("pid"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Property added to wishlist"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	default:
		h.logger.Errorf("add to wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) removeFromWishlist(c *gin.Context) {
	err := h.users.RemoveFromWishlist(c.Request.Context(), c.Param("uid"), c.Param("pid"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Property removed from wishlist"})
	case errors.Is(err, service.ErrNotInWishlist):
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found in wishlist"})
	default:
		h.logger.Errorf("remove from wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) listProperty(c *gin.Context) {
	var req struct {
		Property struct {
			Name         string  `json:"propertyName"`
			Price        float64 `json:"propertyPrice"`
			City         string  `json:"propertyCity"`
			Locality     string  `json:"propertyLocality"`
			BedsNum      int     `json:"bedsNum"`
			BathsNum     int     `json:"bathsNum"`
			Area         float64 `json:"propertyArea"`
			Purpose      string  `json:"propertyPurpose"`
			Description  string  `json:"propertyDescription"`
			ParkingNum   int     `json:"propertyParking"`
			Type         string  `json:"propertyType"`
			YearBuilt    int     `json:"yearBuilt"`
			LotSize      float64 `json:"lotSize"`
			ListerName   string  `json:"listerName"`
			ListerDesc   string  `json:"listerDescription"`
			ListerRel    string  `json:"listerRelation"`
			ListerMobile string  `json:"listerMobileNumber"`
			ListerEmail  string  `json:"listerEmail"`
		} `json:"property"`
		UserID string   `json:"user_id"`
		Images []string `json:"images"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	property := &domain.Property{
		Name:        req.Property.Name,
		Price:       req.Property.Price,
		City:        req.Property.City,
		Locality:    req.Property.Locality,
		BedsNum:     req.Property.BedsNum,
		BathsNum:    req.Property.BathsNum,
		Area:        req.Property.Area,
		Purpose:     req.Property.Purpose,
		Description: req.Property.Description,
		ParkingNum:  req.Property.ParkingNum,
		Type:        req.Property.Type,
		YearBuilt:   req.Property.YearBuilt,
		LotSize:     req.Property.LotSize,
		Lister: domain.Lister{
			Name:         req.Property.ListerName,
			Description:  req.Property.ListerDesc,
			Relation:     req.Property.ListerRel,
			MobileNumber: req.Property.ListerMobile,
			Email:        req.Property.ListerEmail,
		},
		UserID: req.UserID,
		Images: req.Images,
	}

	created, err := h.properties.Create(c.Request.Context(), property)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"result": "Property listed successfully", "property": created})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all the fields"})
	default:
		h.logger.Errorf("list property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) removeProperty(c *gin.Context) {
	err := h.properties.Remove(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"result": "property removed"})
	case errors.Is(err, service.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	default:
		h.logger.Errorf("remove property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) deleteOwnedProperty(c *gin.Context) {
	var req struct {
		UserID     string `json:"userId"`
		Password   string `json:"password"`
		PropertyID string `json:"propertyId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.properties.DeleteOwned(c.Request.Context(), req.UserID, req.Password, req.PropertyID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": "property has been deleted!"})
	case errors.Is(err, service.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "wrong password!"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
	case errors.Is(err, service.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
	default:
		h.logger.Errorf("delete owned property: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
