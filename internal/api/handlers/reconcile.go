package handlers

import (
	"net/http"

	"lumen/internal/logger"
	"lumen/internal/reconcile"

	"github.com/gin-gonic/gin"
)

type ReconcileHandler struct {
	runner *reconcile.Runner
	logger *logger.Logger
}

func NewReconcileHandler(runner *reconcile.Runner, log *logger.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		runner: runner,
		logger: log,
	}
}

type runRequest struct {
	ProductIDs []string `json:"product_ids"`
	DryRun     bool     `json:"dry_run"`
}

// Run triggers a reconciliation pass, either catalog-wide or scoped to the
// given product ids.
func (h *ReconcileHandler) Run(c *gin.Context) {
	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	summary, err := h.runner.Run(c.Request.Context(), reconcile.RunOptions{
		ProductIDs: req.ProductIDs,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.Error("reconciliation run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reconciliation run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// SafeDeleteOption removes an option and its unprotected variants, reporting
// the variants that sales history kept alive.
func (h *ReconcileHandler) SafeDeleteOption(c *gin.Context) {
	id := c.Param("id")

	report, err := h.runner.SafeDeleteOption(c.Request.Context(), id)
	if err != nil {
		if reconcile.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Option not found"})
			return
		}
		h.logger.Error("safe delete of option %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Safe delete failed", "report": report})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
