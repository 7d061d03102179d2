package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/cache"
	"github.com/reselltrack/reselltrack_pro_be/internal/filter"
	"github.com/reselltrack/reselltrack_pro_be/internal/metrics"
	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/store"
)

type MeetingHandler struct {
	Meetings *store.MeetingStore
	Products *store.ProductStore
	Cache    *cache.Cache
	Log      *slog.Logger
	Metrics  *metrics.Metrics
}

func meetingSortField(s string) string {
	switch s {
	case "scheduled_at", "title", "client_name", "created_at", "status":
		return s
	}
	return ""
}

func parseDateParam(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

func (h *MeetingHandler) List(c *fiber.Ctx) error {
	sess := getSession(c)

	meetings, err := h.Meetings.List(c.Context(), sess.UserID)
	if err != nil {
		h.Log.Error("list meetings", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load meetings",
		})
	}

	var to *time.Time
	if t := parseDateParam(c.Query("to")); t != nil {
		// inclusive upper bound covers the whole day
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	f := filter.MeetingFilter{
		Status: c.Query("status", filter.All),
		Search: c.Query("q"),
		From:   parseDateParam(c.Query("from")),
		To:     to,
	}
	s := filter.Sort{
		Field:     meetingSortField(c.Query("sort")),
		Direction: filter.Direction(c.Query("dir", "asc")),
	}

	out := filter.Meetings(meetings, f, s)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"meetings": out,
			"total":    len(out),
		},
	})
}

func (h *MeetingHandler) Get(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid meeting id",
		})
	}

	m, err := h.Meetings.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Meeting not found",
			})
		}
		h.Log.Error("get meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load meeting",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": m})
}

type meetingCreateRequest struct {
	Title           string  `json:"title"`
	ClientName      string  `json:"client_name"`
	ClientEmail     string  `json:"client_email"`
	ClientPhone     string  `json:"client_phone"`
	MeetingDate     string  `json:"meeting_date"` // "2006-01-02"
	MeetingTime     string  `json:"meeting_time"` // "15:04"
	DurationMinutes *int    `json:"duration_minutes"`
	Location        string  `json:"location"`
	Type            string  `json:"meeting_type"`
	Notes           string  `json:"notes"`
	ProductID       *string `json:"product_id"`
}

func validMeetingType(t models.MeetingType) bool {
	switch t {
	case models.MeetingPickup, models.MeetingDropOff, models.MeetingViewing,
		models.MeetingNegotiation, models.MeetingOther:
		return true
	}
	return false
}

func (r *meetingCreateRequest) validate() (time.Time, FieldErrors) {
	fe := FieldErrors{}
	if strings.TrimSpace(r.Title) == "" {
		fe.Add("title", "Title is required")
	}
	var date time.Time
	if r.MeetingDate == "" {
		fe.Add("meeting_date", "Meeting date is required")
	} else {
		var err error
		date, err = time.Parse("2006-01-02", r.MeetingDate)
		if err != nil {
			fe.Add("meeting_date", "Date must be formatted as YYYY-MM-DD")
		}
	}
	if r.MeetingTime != "" {
		if _, err := time.Parse("15:04", r.MeetingTime); err != nil {
			fe.Add("meeting_time", "Time must be formatted as HH:MM")
		}
	}
	if r.DurationMinutes != nil && *r.DurationMinutes <= 0 {
		fe.Add("duration_minutes", "Duration must be greater than zero")
	}
	if r.Type != "" && !validMeetingType(models.MeetingType(r.Type)) {
		fe.Add("meeting_type", "Unknown meeting type")
	}
	return date, fe
}

// resolveProduct verifies a linked product belongs to the caller.
func (h *MeetingHandler) resolveProduct(c *fiber.Ctx, ownerID uuid.UUID, raw string) (*uuid.UUID, error) {
	pid, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	if _, err := h.Products.Get(c.Context(), ownerID, pid); err != nil {
		return nil, err
	}
	return &pid, nil
}

func (h *MeetingHandler) Create(c *fiber.Ctx) error {
	sess := getSession(c)

	var req meetingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	date, fe := req.validate()
	if len(fe) > 0 {
		return validationFail(c, fe)
	}

	typ := models.MeetingOther
	if req.Type != "" {
		typ = models.MeetingType(req.Type)
	}

	m := models.Meeting{
		UserID:          sess.UserID,
		Title:           strings.TrimSpace(req.Title),
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientEmail:     strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ClientPhone:     strings.TrimSpace(req.ClientPhone),
		MeetingDate:     date,
		MeetingTime:     req.MeetingTime,
		DurationMinutes: req.DurationMinutes,
		Location:        strings.TrimSpace(req.Location),
		Type:            typ,
		Status:          models.MeetingScheduled,
		Notes:           strings.TrimSpace(req.Notes),
	}

	if req.ProductID != nil && *req.ProductID != "" {
		pid, err := h.resolveProduct(c, sess.UserID, *req.ProductID)
		if err != nil {
			fe := FieldErrors{}
			fe.Add("product_id", "Linked product not found")
			return validationFail(c, fe)
		}
		m.ProductID = pid
	}

	if err := h.Meetings.Create(c.Context(), &m); err != nil {
		h.Log.Error("create meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create meeting",
		})
	}

	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Meeting scheduled",
		"data":    m,
	})
}

type meetingUpdateRequest struct {
	Title           *string `json:"title"`
	ClientName      *string `json:"client_name"`
	ClientEmail     *string `json:"client_email"`
	ClientPhone     *string `json:"client_phone"`
	MeetingDate     *string `json:"meeting_date"`
	MeetingTime     *string `json:"meeting_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Location        *string `json:"location"`
	Type            *string `json:"meeting_type"`
	Notes           *string `json:"notes"`
	ProductID       *string `json:"product_id"`
}

func (h *MeetingHandler) Update(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid meeting id",
		})
	}

	var req meetingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	m, err := h.Meetings.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Meeting not found",
			})
		}
		h.Log.Error("get meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load meeting",
		})
	}

	fe := FieldErrors{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			fe.Add("title", "Title cannot be empty")
		} else {
			m.Title = strings.TrimSpace(*req.Title)
		}
	}
	if req.MeetingDate != nil {
		d, err := time.Parse("2006-01-02", *req.MeetingDate)
		if err != nil {
			fe.Add("meeting_date", "Date must be formatted as YYYY-MM-DD")
		} else {
			m.MeetingDate = d
			// rescheduling re-arms the reminder
			m.ReminderSent = false
		}
	}
	if req.MeetingTime != nil {
		if *req.MeetingTime != "" {
			if _, err := time.Parse("15:04", *req.MeetingTime); err != nil {
				fe.Add("meeting_time", "Time must be formatted as HH:MM")
			} else {
				m.MeetingTime = *req.MeetingTime
				m.ReminderSent = false
			}
		} else {
			m.MeetingTime = ""
		}
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			fe.Add("duration_minutes", "Duration must be greater than zero")
		} else {
			m.DurationMinutes = req.DurationMinutes
		}
	}
	if req.Type != nil {
		if !validMeetingType(models.MeetingType(*req.Type)) {
			fe.Add("meeting_type", "Unknown meeting type")
		} else {
			m.Type = models.MeetingType(*req.Type)
		}
	}
	if len(fe) > 0 {
		return validationFail(c, fe)
	}

	if req.ClientName != nil {
		m.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientEmail != nil {
		m.ClientEmail = strings.ToLower(strings.TrimSpace(*req.ClientEmail))
	}
	if req.ClientPhone != nil {
		m.ClientPhone = strings.TrimSpace(*req.ClientPhone)
	}
	if req.Location != nil {
		m.Location = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		m.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.ProductID != nil {
		if *req.ProductID == "" {
			m.ProductID = nil
			m.Product = nil
		} else {
			pid, err := h.resolveProduct(c, sess.UserID, *req.ProductID)
			if err != nil {
				fe := FieldErrors{}
				fe.Add("product_id", "Linked product not found")
				return validationFail(c, fe)
			}
			m.ProductID = pid
			m.Product = nil
		}
	}

	if err := h.Meetings.Save(c.Context(), m); err != nil {
		h.Log.Error("save meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update meeting",
		})
	}

	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Meeting updated",
		"data":    m,
	})
}

type meetingStatusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves a meeting through its lifecycle
// (scheduled, completed, cancelled, no_show).
func (h *MeetingHandler) SetStatus(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid meeting id",
		})
	}

	var req meetingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	st := models.MeetingStatus(req.Status)
	switch st {
	case models.MeetingScheduled, models.MeetingCompleted,
		models.MeetingCancelled, models.MeetingNoShow:
	default:
		fe := FieldErrors{}
		fe.Add("status", "Unknown status")
		return validationFail(c, fe)
	}

	m, err := h.Meetings.Get(c.Context(), sess.UserID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Meeting not found",
			})
		}
		h.Log.Error("get meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load meeting",
		})
	}

	m.Status = st
	if err := h.Meetings.Save(c.Context(), m); err != nil {
		h.Log.Error("set meeting status", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update meeting",
		})
	}

	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Meeting status updated",
		"data":    m,
	})
}

func (h *MeetingHandler) Delete(c *fiber.Ctx) error {
	sess := getSession(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid meeting id",
		})
	}

	if err := h.Meetings.SoftDelete(c.Context(), sess.UserID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Meeting not found",
			})
		}
		h.Log.Error("delete meeting", "err", err)
		h.Metrics.StoreErrors.WithLabelValues("meeting").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete meeting",
		})
	}

	h.Cache.InvalidateDashboard(c.Context(), sess.UserID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Meeting deleted",
	})
}
