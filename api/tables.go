package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/service/tables"
)

type TableHandler struct {
	service tables.TableUseCase
}

type tableRequest struct {
	Data tables.TableInput `json:"data"`
}

type seatRequest struct {
	Data struct {
		ReservationID int64 `json:"reservation_id"`
	} `json:"data"`
}

func NewTableHandler(service tables.TableUseCase) *TableHandler {
	return &TableHandler{service: service}
}

func (h *TableHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
	router.PUT("/:id/seat", h.seat)
	router.DELETE("/:id/seat", h.finish)
}

func tableID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return 0, false
	}
	return id, true
}

func (h *TableHandler) create(c *gin.Context) {
	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *TableHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, found)
}

func (h *TableHandler) get(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	table, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, table)
}

func (h *TableHandler) update(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}

	var req tableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

func (h *TableHandler) remove(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TableHandler) seat(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}

	var req seatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Data.ReservationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reservation_id is required"})
		return
	}

	table, err := h.service.Seat(c.Request.Context(), id, req.Data.ReservationID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, table)
}

func (h *TableHandler) finish(c *gin.Context) {
	id, ok := tableID(c)
	if !ok {
		return
	}
	table, err := h.service.Finish(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, table)
}
