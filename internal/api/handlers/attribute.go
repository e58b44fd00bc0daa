package handlers

import (
	"net/http"

	"lumen/internal/catalog"
	"lumen/internal/logger"
	"lumen/internal/models"
	"lumen/internal/reconcile"

	"github.com/gin-gonic/gin"
)

type AttributeHandler struct {
	catalog *catalog.Catalog
	logger  *logger.Logger
}

func NewAttributeHandler(cat *catalog.Catalog, log *logger.Logger) *AttributeHandler {
	return &AttributeHandler{
		catalog: cat,
		logger:  log,
	}
}

func (h *AttributeHandler) List(c *gin.Context) {
	keys, err := h.catalog.AttributeKeys(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attribute keys"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": keys})
}

func (h *AttributeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	key, err := h.catalog.AttributeKey(c.Request.Context(), id)
	if err != nil {
		if reconcile.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attribute key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attribute key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": key})
}

type createAttributeKeyRequest struct {
	Label  string   `json:"label" binding:"required"`
	Handle string   `json:"handle"`
	Values []string `json:"values"`
}

func (h *AttributeHandler) Create(c *gin.Context) {
	var req createAttributeKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	handle := req.Handle
	if handle == "" {
		handle = reconcile.Slugify(req.Label)
	}

	key := &models.AttributeKey{Label: req.Label, Handle: handle}
	if err := h.catalog.CreateAttributeKey(c.Request.Context(), key); err != nil {
		if reconcile.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Attribute key handle already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create attribute key"})
		return
	}

	for _, value := range req.Values {
		if _, err := h.catalog.EnsureAttributeValue(c.Request.Context(), key.ID, value, "admin"); err != nil {
			h.logger.Error("failed to create value %q for key %s: %v", value, key.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"data": key})
}

type addAttributeValueRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *AttributeHandler) AddValue(c *gin.Context) {
	id := c.Param("id")

	var req addAttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.catalog.AttributeKey(c.Request.Context(), id); err != nil {
		if reconcile.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Attribute key not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attribute key"})
		return
	}

	value, err := h.catalog.EnsureAttributeValue(c.Request.Context(), id, req.Value, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add attribute value"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": value})
}
