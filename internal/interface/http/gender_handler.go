package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/application"
	"github.com/muyik/smartschool/pkg/response"
	"github.com/muyik/smartschool/pkg/validation"
)

const (
	defaultPageSize = 10
	maxPageSize     = 1000
)

// listInputFromQuery reads the common paging query parameters. Requests above
// the page-size cap are rejected here; the core executes any window it is
// handed. Returns false after writing the error response.
func listInputFromQuery(c *gin.Context) (application.ListInput, bool) {
	in := application.ListInput{
		Filter:         c.Query("filter"),
		Sorting:        c.Query("sorting"),
		MaxResultCount: defaultPageSize,
	}
	if v := c.Query("skipCount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			in.SkipCount = n
		}
	}
	if v := c.Query("maxResultCount"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			if n > maxPageSize {
				response.Error(c, http.StatusBadRequest, "maxResultCount must not exceed 1000", nil)
				return in, false
			}
			if n > 0 {
				in.MaxResultCount = n
			}
		}
	}
	return in, true
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

type GenderHandler struct {
	Svc    *application.GenderService
	Logger *logrus.Logger
}

func NewGenderHandler(svc *application.GenderService, logger *logrus.Logger) *GenderHandler {
	return &GenderHandler{Svc: svc, Logger: logger}
}

func (h *GenderHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	dto, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "gender", nil)
}

func (h *GenderHandler) List(c *gin.Context) {
	in, ok := listInputFromQuery(c)
	if !ok {
		return
	}
	page, err := h.Svc.List(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page, "genders", nil)
}

func (h *GenderHandler) Create(c *gin.Context) {
	var in application.GenderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, dto, "gender created", nil)
}

func (h *GenderHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in application.GenderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	dto, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, dto, "gender updated", nil)
}

func (h *GenderHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "gender deleted", nil)
}
