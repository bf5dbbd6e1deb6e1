package claims

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sjarmak/accumed-demo/internal/platform/auth"
	"github.com/sjarmak/accumed-demo/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "billing", "adjuster"))
	g.POST("/claims", h.Submit)
	g.GET("/claims", h.List)
	g.GET("/claims/:id", h.Get)
	g.DELETE("/claims/:id", h.Delete)
	g.POST("/claims/:id/approve", h.Approve)
	g.POST("/claims/:id/deny", h.Deny)
	g.POST("/claims/:id/reimbursement", h.Reimburse)
	g.POST("/claims/:id/validate", h.Validate)
	g.POST("/claims/:id/adjust", h.Adjust)
}

// httpError maps service errors onto the API's status codes.
// Internal detail never leaks past this point.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrClaimNotFound),
		errors.Is(err, ErrPatientNotFound),
		errors.Is(err, ErrProviderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrCodesRequired),
		errors.Is(err, ErrTooManyCodes):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "claim operation failed")
	}
}

func (h *Handler) Submit(c echo.Context) error {
	var in SubmitClaimInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in.Actor = auth.UserIDFromContext(c.Request().Context())
	claim, err := h.svc.SubmitClaim(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, claim)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	claim, err := h.svc.GetClaim(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, claim)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	var filter ListFilter
	if pid := c.QueryParam("patient_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		filter.PatientID = id
	}
	if status := c.QueryParam("status"); status != "" {
		st := Status(status)
		if !st.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		filter.Status = st
	}
	items, total, err := h.svc.ListClaims(c.Request().Context(), filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list claims")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteClaim(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	approver := auth.UserIDFromContext(c.Request().Context())
	claim, err := h.svc.ApproveClaim(c.Request().Context(), id, approver)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, claim)
}

type denyRequest struct {
	Reason string `json:"reason"`
}

func (h *Handler) Deny(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req denyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Reason == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reason is required")
	}
	claim, err := h.svc.DenyClaim(c.Request().Context(), id, req.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, claim)
}

func (h *Handler) Reimburse(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	amount, err := h.svc.CalculateReimbursement(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"claim_id":             id,
		"reimbursement_amount": amount,
	})
}

func (h *Handler) Validate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	valid, err := h.svc.ValidateClaim(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"claim_id": id,
		"valid":    valid,
	})
}

type adjustRequest struct {
	Delta float64 `json:"delta"`
}

func (h *Handler) Adjust(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req adjustRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	claim, err := h.svc.AdjustClaimAmount(c.Request().Context(), id, req.Delta)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, claim)
}
