package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/atlaspos/pos-backend/internal/middleware"
	"github.com/atlaspos/pos-backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// documentHandler exposes raw read/write access to the bound document store,
// for debugging and for readers that consume the propagated collections
// directly (e.g. a reporting dashboard reading "{tenant}_sales").
type documentHandler struct {
	storageProvider *storage.Provider
}

func newDocumentHandler(p *storage.Provider) *documentHandler {
	return &documentHandler{storageProvider: p}
}

func registerDocumentRoutes(rg *gin.RouterGroup, storageProvider *storage.Provider) {
	h := newDocumentHandler(storageProvider)

	documents := rg.Group("/documents")
	{
		documents.GET("/:key", h.getDocument)
		documents.PUT("/:key", h.putDocument)
		documents.DELETE("/:key", h.removeDocument)
	}
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")

	adapter, err := h.storageProvider.Adapter()
	if err != nil {
		logger.Error("Document store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Document store unavailable"})
		return
	}

	raw, err := adapter.Get(c.Request.Context(), key)
	if err != nil {
		logger.Error("Failed to read document", slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read document"})
		return
	}
	if raw == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *documentHandler) putDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if !json.Valid(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Document body must be valid JSON"})
		return
	}

	adapter, err := h.storageProvider.Adapter()
	if err != nil {
		logger.Error("Document store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Document store unavailable"})
		return
	}

	if err := adapter.Set(c.Request.Context(), key, body); err != nil {
		logger.Error("Failed to write document", slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *documentHandler) removeDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")

	adapter, err := h.storageProvider.Adapter()
	if err != nil {
		logger.Error("Document store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Document store unavailable"})
		return
	}

	if err := adapter.Remove(c.Request.Context(), key); err != nil {
		logger.Error("Failed to remove document", slog.String("key", key), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
