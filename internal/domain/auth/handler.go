package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/login", h.Login)
	api.GET("/session", h.Session)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(fault.HTTPStatus(err), fault.DisplayMessage(err))
}

func (h *Handler) Login(c echo.Context) error {
	var req struct {
		ClinicID string `json:"clinicId"`
		Role     Role   `json:"role"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	session, err := h.svc.Authenticate(c.Request().Context(), req.ClinicID, req.Role, req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, session)
}

// Session echoes the claims of a valid bearer token.
func (h *Handler) Session(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	token := strings.TrimPrefix(header, "Bearer ")
	claims, err := h.svc.VerifySession(token)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"clinic": claims.Clinic,
		"role":   claims.Role,
	})
}
