package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dentalcare/clinic-api/internal/handler"
	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/service/settings"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	configuration := r.Group("/configuration")
	{
		configuration.GET("", h.Get)
		configuration.POST("", h.Save)
	}
}

// Get always succeeds for an authenticated account: when nothing has been
// saved yet the defaults are returned.
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context(), handler.AccountID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) Save(c *gin.Context) {
	var req model.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	saved, err := h.service.Save(c.Request.Context(), handler.AccountID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(saved))
}
