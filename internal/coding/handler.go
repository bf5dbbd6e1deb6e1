package coding

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const maxBatchSize = 100

// Handler exposes code validation over HTTP.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers code validation routes on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/codes/diagnosis/validate", h.ValidateDiagnosis)
	g.POST("/codes/procedure/validate", h.ValidateProcedure)
}

type validateRequest struct {
	Codes []string `json:"codes"`
}

// ValidateDiagnosis handles POST /codes/diagnosis/validate.
func (h *Handler) ValidateDiagnosis(c echo.Context) error {
	codes, err := bindCodes(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ValidateDiagnosisBatch(codes))
}

// ValidateProcedure handles POST /codes/procedure/validate.
func (h *Handler) ValidateProcedure(c echo.Context) error {
	codes, err := bindCodes(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ValidateProcedureBatch(codes))
}

func bindCodes(c echo.Context) ([]string, error) {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Codes) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "codes is required")
	}
	if len(req.Codes) > maxBatchSize {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "too many codes in batch")
	}
	return req.Codes, nil
}
