package appointment

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/handler"
	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/service/appointment"
	"github.com/dentalcare/clinic-api/internal/service/attachment"
	"github.com/dentalcare/clinic-api/internal/service/notification"
	"github.com/dentalcare/clinic-api/internal/service/patient"
	"github.com/dentalcare/clinic-api/internal/service/settings"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service       *appointment.Service
	patients      *patient.Service
	settings      *settings.Service
	notifications *notification.Service
	attachments   *attachment.Service
}

func NewHandler(
	service *appointment.Service,
	patients *patient.Service,
	settings *settings.Service,
	notifications *notification.Service,
	attachments *attachment.Service,
) *Handler {
	return &Handler{
		service:       service,
		patients:      patients,
		settings:      settings,
		notifications: notifications,
		attachments:   attachments,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/files/:name", h.DownloadFile)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Delete)
		appointments.POST("/:id/file", h.UploadFile)
		appointments.POST("/:id/remind", h.SendReminder)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.Create(c.Request.Context(), handler.AccountID(c), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

// List returns the account's appointments matching the query filters.
// Statuses arrive either as repeated status params or as a single JSON
// array; the date range is a pair of calendar dates, applied only when
// both ends are present.
func (h *Handler) List(c *gin.Context) {
	filters := &model.AppointmentFilters{}

	for _, raw := range c.QueryArray("status") {
		raw = strings.TrimSpace(raw)
		if strings.HasPrefix(raw, "[") {
			var statuses []string
			if err := json.Unmarshal([]byte(raw), &statuses); err != nil {
				c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status filter"))
				return
			}
			for _, s := range statuses {
				filters.Statuses = append(filters.Statuses, model.AppointmentStatus(s))
			}
			continue
		}
		if raw != "" {
			filters.Statuses = append(filters.Statuses, model.AppointmentStatus(raw))
		}
	}

	start, end := c.Query("start_date"), c.Query("end_date")
	if start != "" && end != "" {
		startDate, err := time.ParseInLocation(dateLayout, start, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid start date"))
			return
		}
		endDate, err := time.ParseInLocation(dateLayout, end, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid end date"))
			return
		}
		filters.StartDate = &startDate
		filters.EndDate = &endDate
	}

	appointments, err := h.service.List(c.Request.Context(), handler.AccountID(c), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	found, err := h.service.Get(c.Request.Context(), handler.AccountID(c), id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), handler.AccountID(c), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), handler.AccountID(c), id); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "appointment deleted"}))
}

// UploadFile saves an attachment to disk, then records its stored name on
// the appointment. The write happens first; if attaching fails the file
// is simply unreferenced, never half-attached.
func (h *Handler) UploadFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("file is required"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	defer src.Close()

	storedName, err := h.attachments.SaveAppointmentFile(fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	updated, err := h.service.AttachFile(c.Request.Context(), handler.AccountID(c), id, storedName)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) DownloadFile(c *gin.Context) {
	path, err := h.attachments.AppointmentFilePath(c.Param("name"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.FileAttachment(path, originalName(c.Param("name")))
}

// originalName strips the uuid prefix added at upload time.
func originalName(storedName string) string {
	if _, rest, ok := strings.Cut(storedName, "_"); ok && rest != "" {
		return rest
	}
	return storedName
}

// SendReminder emails the appointment's patient using the account's
// reminder template and returns the rendered message.
func (h *Handler) SendReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	userID := handler.AccountID(c)
	ctx := c.Request.Context()

	apt, err := h.service.Get(ctx, userID, id)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	pat, err := h.patients.Get(ctx, userID, apt.PatientID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	cfg, err := h.settings.Get(ctx, userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	body, err := h.notifications.SendReminder(ctx, cfg, pat, apt)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": body}))
}
