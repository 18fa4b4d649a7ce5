package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/service"
	"codecamp-backend/internal/shared/response"
)

type CampHandler struct {
	service service.CampServiceInterface
}

func NewCampHandler(svc service.CampServiceInterface) *CampHandler {
	return &CampHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /v1/camps?include_talks=true
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) List(c *gin.Context) {
	includeTalks, ok := boolQuery(c, "include_talks")
	if !ok {
		return
	}

	camps, err := h.service.List(c.Request.Context(), includeTalks)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get camps successfully", camps)
}

// ════════════════════════════════════════════════════════════════
// GET: GET /v1/camps/:moniker
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) Get(c *gin.Context) {
	includeTalks, ok := boolQuery(c, "include_talks")
	if !ok {
		return
	}

	camp, err := h.service.Get(c.Request.Context(), c.Param("moniker"), includeTalks)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get camp successfully", camp)
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /v1/camps/search?date=2024-09-14
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) SearchByDate(c *gin.Context) {
	date, err := time.Parse(time.DateOnly, c.Query("date"))
	if err != nil {
		respondError(c, model.ErrInvalidDate)
		return
	}
	includeTalks, ok := boolQuery(c, "include_talks")
	if !ok {
		return
	}

	camps, err := h.service.SearchByDate(c.Request.Context(), date, includeTalks)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(camps) == 0 {
		response.NotFound(c, "no camps on "+date.Format(time.DateOnly))
		return
	}

	response.Success(c, http.StatusOK, "Search camps successfully", camps)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /v1/camps
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) Create(c *gin.Context) {
	req := model.NewCampModel()
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	camp, locator, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, locator, "Create camp successfully", camp)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /v1/camps/:moniker
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) Update(c *gin.Context) {
	req := model.NewCampModel()
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	camp, err := h.service.Update(c.Request.Context(), c.Param("moniker"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Update camp successfully", camp)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /v1/camps/:moniker
// ════════════════════════════════════════════════════════════════

func (h *CampHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("moniker")); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Delete camp successfully", nil)
}
