package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codecamp-backend/internal/domains/camp/model"
	"codecamp-backend/internal/domains/camp/service"
	"codecamp-backend/internal/shared/response"
)

type SpeakerHandler struct {
	service service.SpeakerServiceInterface
}

func NewSpeakerHandler(svc service.SpeakerServiceInterface) *SpeakerHandler {
	return &SpeakerHandler{
		service: svc,
	}
}

// GET /v1/speakers/:id
func (h *SpeakerHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	speaker, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		// speaker not found là 400 khi tạo talk, nhưng 404 ở đây
		if errors.Is(err, model.ErrSpeakerNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ToErrorCode(err), err.Error())
			return
		}
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Get speaker successfully", speaker)
}

// POST /v1/speakers
func (h *SpeakerHandler) Create(c *gin.Context) {
	var req model.SpeakerModel
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	speaker, locator, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, locator, "Create speaker successfully", speaker)
}
