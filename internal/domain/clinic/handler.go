package clinic

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

type Handler struct {
	svc           *Service
	defaultClinic string
}

func NewHandler(svc *Service, defaultClinic string) *Handler {
	return &Handler{svc: svc, defaultClinic: defaultClinic}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/signup", h.Signup)
	api.GET("/clinics", h.ListClinics)
	api.GET("/debug", h.Debug)
	api.POST("/debug/migrate", h.Migrate)
	api.POST("/debug/clear", h.Clear)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(fault.HTTPStatus(err), fault.DisplayMessage(err))
}

func (h *Handler) Signup(c echo.Context) error {
	var req struct {
		Name          string `json:"name"`
		Address       string `json:"address"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
		AdminUsername string `json:"adminUsername"`
		AdminPassword string `json:"adminPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.Register(c.Request().Context(), RegisterInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		AdminUsername: req.AdminUsername,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		return httpError(err)
	}
	// Credentials never travel back out.
	created.AdminPassword = ""
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) ListClinics(c echo.Context) error {
	summaries, err := h.svc.Summaries(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *Handler) Debug(c echo.Context) error {
	clinicID := c.QueryParam("clinic")
	if clinicID == "" {
		clinicID = h.defaultClinic
	}
	dump, err := h.svc.DumpClinic(c.Request().Context(), clinicID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dump)
}

func (h *Handler) Migrate(c echo.Context) error {
	migrated, err := h.svc.MigrateLegacyData(c.Request().Context(), h.defaultClinic)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"migrated": migrated})
}

func (h *Handler) Clear(c echo.Context) error {
	clinicID := c.QueryParam("clinic")
	if err := h.svc.ClearClinicData(c.Request().Context(), clinicID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
