package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/domain"
	"tablebook/internal/service/guests"
)

type GuestHandler struct {
	service guests.GuestUseCase
}

type guestRequest struct {
	Data domain.Guest `json:"data"`
}

func NewGuestHandler(service guests.GuestUseCase) *GuestHandler {
	return &GuestHandler{service: service}
}

func (h *GuestHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func guestID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
		return 0, false
	}
	return id, true
}

func (h *GuestHandler) create(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, created)
}

func (h *GuestHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, found)
}

func (h *GuestHandler) get(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	guest, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, guest)
}

func (h *GuestHandler) update(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req.Data)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated)
}

func (h *GuestHandler) remove(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
