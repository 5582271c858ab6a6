package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/workplan/workplan/pkg/model"
	"github.com/workplan/workplan/pkg/store/postgres"
	"github.com/workplan/workplan/pkg/tracker"
)

type EpicHandler struct {
	epics  EpicStore
	syncer *tracker.Syncer
	logger *zap.Logger
}

// NewEpicHandler takes a nil syncer when no tracker is configured; the sync
// endpoint then reports the integration as disabled.
func NewEpicHandler(epics EpicStore, syncer *tracker.Syncer, logger *zap.Logger) *EpicHandler {
	return &EpicHandler{epics: epics, syncer: syncer, logger: logger}
}

func (h *EpicHandler) List(c *gin.Context) {
	query := postgres.EpicQuery{
		Department: c.Query("department"),
		Team:       c.Query("team"),
	}
	if status := c.Query("status"); status != "" {
		query.Status = model.EpicStatus(status)
	}

	epics, err := h.epics.List(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("failed to list epics", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"epics": epics, "total": len(epics)})
}

func (h *EpicHandler) Get(c *gin.Context) {
	epic, err := h.epics.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, epic)
}

// Estimates rolls stored epics up into outstanding hours per team.
func (h *EpicHandler) Estimates(c *gin.Context) {
	epics, err := h.epics.List(c.Request.Context(), postgres.EpicQuery{
		Department: c.Query("department"),
	})
	if err != nil {
		h.logger.Error("failed to list epics", zap.Error(err))
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"estimates": tracker.Rollup(epics)})
}

func (h *EpicHandler) Sync(c *gin.Context) {
	if h.syncer == nil {
		respondError(c, http.StatusServiceUnavailable, "tracker integration is not configured")
		return
	}

	result, err := h.syncer.Run(c.Request.Context())
	if err != nil {
		h.logger.Error("epic sync failed", zap.Error(err))
		respondError(c, http.StatusBadGateway, "tracker sync failed")
		return
	}

	c.JSON(http.StatusOK, result)
}
