package handlers

import (
	"net/http"

	"lumen/internal/catalog"
	"lumen/internal/config"
	"lumen/internal/connectors/woocommerce"
	"lumen/internal/events"
	"lumen/internal/logger"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	config    *config.Config
	catalog   *catalog.Catalog
	publisher *events.Publisher
	logger    *logger.Logger
}

func NewSyncHandler(cfg *config.Config, cat *catalog.Catalog, publisher *events.Publisher, log *logger.Logger) *SyncHandler {
	return &SyncHandler{
		config:    cfg,
		catalog:   cat,
		publisher: publisher,
		logger:    log,
	}
}

type wooSyncRequest struct {
	StoreURL       string `json:"store_url"`
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
}

// WooCommerce triggers a catalog import. Credentials default to the
// configured store when the request omits them.
func (h *SyncHandler) WooCommerce(c *gin.Context) {
	req := wooSyncRequest{
		StoreURL:       h.config.WooStoreURL,
		ConsumerKey:    h.config.WooConsumerKey,
		ConsumerSecret: h.config.WooConsumerSecret,
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.StoreURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_url is required"})
		return
	}

	client := woocommerce.NewClient(req.StoreURL, req.ConsumerKey, req.ConsumerSecret, h.logger)
	connector := woocommerce.New(client, h.catalog, h.publisher, h.logger)

	result, err := connector.SyncProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("WooCommerce sync failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync failed", "result": result})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
