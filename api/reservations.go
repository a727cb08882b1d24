package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tablebook/internal/service/reservations"
)

type ReservationHandler struct {
	service reservations.ReservationUseCase
}

type reservationRequest struct {
	Data reservations.ReservationInput `json:"data"`
}

func NewReservationHandler(service reservations.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req reservationRequest
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

func (h *ReservationHandler) list(c *gin.Context) {
	query := reservations.ListQuery{
		Date:         c.Query("date"),
		MobileNumber: c.Query("mobile_number"),
		Name:         c.Query("name"),
	}
	found, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, found)
}

func (h *ReservationHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}
	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, res)
}

func (h *ReservationHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reservation id"})
		return
	}

	var req reservationRequest
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
