package notification

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes the manager over HTTP for operational use:
// ad-hoc sends, delivery inspection, and retries.
type NotificationHandler struct {
	mgr *NotificationManager
}

func NewNotificationHandler(mgr *NotificationManager) *NotificationHandler {
	return &NotificationHandler{mgr: mgr}
}

func (h *NotificationHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/notifications/send", h.Send)
	api.POST("/notifications/send-template", h.SendFromTemplate)
	api.GET("/notifications/stats", h.Stats)
	api.GET("/notifications/:id", h.Get)
	api.GET("/notifications", h.ListByRecipient)
	api.POST("/notifications/:id/retry", h.Retry)
}

func (h *NotificationHandler) Send(c echo.Context) error {
	var n Notification
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if n.Recipient == "" || n.Body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "recipient and body are required")
	}
	if err := h.mgr.Send(c.Request().Context(), &n); err != nil {
		// The attempt is recorded either way; report the failed record.
		return c.JSON(http.StatusBadGateway, n)
	}
	return c.JSON(http.StatusCreated, n)
}

type sendTemplateRequest struct {
	TemplateID string            `json:"template_id"`
	Recipient  string            `json:"recipient"`
	Data       map[string]string `json:"data"`
}

func (h *NotificationHandler) SendFromTemplate(c echo.Context) error {
	var req sendTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.TemplateID == "" || req.Recipient == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "template_id and recipient are required")
	}
	n, err := h.mgr.SendFromTemplate(c.Request().Context(), req.TemplateID, req.Data, req.Recipient)
	if err != nil {
		if n == nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusBadGateway, n)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.mgr.NotificationStats(c.Request().Context()))
}

func (h *NotificationHandler) Get(c echo.Context) error {
	n, err := h.mgr.GetNotification(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "notification not found")
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) ListByRecipient(c echo.Context) error {
	recipient := c.QueryParam("recipient")
	if recipient == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "recipient query parameter is required")
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	items, err := h.mgr.ListByRecipient(c.Request().Context(), recipient, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list notifications")
	}
	if items == nil {
		items = []*Notification{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) Retry(c echo.Context) error {
	id := c.Param("id")
	if err := h.mgr.Retry(c.Request().Context(), id); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		case strings.Contains(err.Error(), "not in failed status"):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			// Delivery failed again; report the still-failed record.
			if n, getErr := h.mgr.GetNotification(c.Request().Context(), id); getErr == nil {
				return c.JSON(http.StatusBadGateway, n)
			}
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
	}
	n, err := h.mgr.GetNotification(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load notification")
	}
	return c.JSON(http.StatusOK, n)
}
