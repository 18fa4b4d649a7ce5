package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/service"
	"codecamp-backend/internal/shared/response"
)

// TalkHandler serves talks nested under /camps/:moniker/talks.
type TalkHandler struct {
	service service.TalkServiceInterface
}

func NewTalkHandler(svc service.TalkServiceInterface) *TalkHandler {
	return &TalkHandler{
		service: svc,
	}
}

// GET /v1/camps/:moniker/talks
func (h *TalkHandler) List(c *gin.Context) {
	talks, err := h.service.List(c.Request.Context(), c.Param("moniker"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get talks successfully", talks)
}

// GET /v1/camps/:moniker/talks/:id
func (h *TalkHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	talk, err := h.service.Get(c.Request.Context(), c.Param("moniker"), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get talk successfully", talk)
}

// POST /v1/camps/:moniker/talks
func (h *TalkHandler) Create(c *gin.Context) {
	var req model.TalkModel
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	talk, locator, err := h.service.Create(c.Request.Context(), c.Param("moniker"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, locator, "Create talk successfully", talk)
}

// PUT /v1/camps/:moniker/talks/:id
func (h *TalkHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req model.TalkModel
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	talk, err := h.service.Update(c.Request.Context(), c.Param("moniker"), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Update talk successfully", talk)
}

// DELETE /v1/camps/:moniker/talks/:id
func (h *TalkHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("moniker"), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Delete talk successfully", nil)
}
