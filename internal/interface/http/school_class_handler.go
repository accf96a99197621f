package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/pkg/response"
	"github.com/muyik/smartschool/pkg/validation"
)

type SchoolClassHandler struct {
	Svc    *application.SchoolClassService
	Logger *logrus.Logger
}

func NewSchoolClassHandler(svc *application.SchoolClassService, logger *logrus.Logger) *SchoolClassHandler {
	return &SchoolClassHandler{Svc: svc, Logger: logger}
}

func (h *SchoolClassHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "school class", nil)
}

func (h *SchoolClassHandler) List(c *gin.Context) {
	in, ok := listInputFromQuery(c)
	if !ok {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "school classes", nil)
}

func (h *SchoolClassHandler) Create(c *gin.Context) {
	var in application.SchoolClassInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto, "school class created", nil)
}

func (h *SchoolClassHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in application.SchoolClassInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "school class updated", nil)
}

func (h *SchoolClassHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "school class deleted", nil)
}
