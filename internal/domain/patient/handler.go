package patient

import (
	"fmt"
	"net/http"

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
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient)
	api.PATCH("/patients/:id/status", h.UpdateStatus)
	api.PUT("/patients/:id/medical", h.UpdateMedicalDetails)
	api.DELETE("/patients/:id", h.DeletePatient)
	api.GET("/waiting-room", h.ListWaitingRoom)
	api.GET("/doctor-room", h.ListDoctorRoom)
	api.GET("/patient-history", h.PatientHistory)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(fault.HTTPStatus(err), fault.DisplayMessage(err))
}

type createRequest struct {
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber"`
	Age         interface{} `json:"age"`
	Gender      string      `json:"gender"`
	ClinicID    string      `json:"clinicId"`
	Status      Status      `json:"status"`
}

// age arrives as a JSON number from the API client or as the raw form
// string; both normalize to text for the service's validation.
func (r *createRequest) ageString() string {
	switch v := r.Age.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.Create(c.Request().Context(), req.ClinicID, CreateInput{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Age:         req.ageString(),
		Gender:      req.Gender,
	}, req.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.QueryParam("clinic"), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var body struct {
		Status   Status `json:"status"`
		ClinicID string `json:"clinicId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.TransitionStatus(c.Request().Context(), body.ClinicID, c.Param("id"), body.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateMedicalDetails(c echo.Context) error {
	var body struct {
		Symptoms     string           `json:"symptoms"`
		Diagnosis    string           `json:"diagnosis"`
		Prescription string           `json:"prescription"`
		Notes        string           `json:"notes"`
		Attachments  []FileAttachment `json:"attachments"`
		ClinicID     string           `json:"clinicId"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.svc.RecordMedicalDetails(c.Request().Context(), body.ClinicID, c.Param("id"), DetailsInput{
		Symptoms:     body.Symptoms,
		Diagnosis:    body.Diagnosis,
		Prescription: body.Prescription,
		Notes:        body.Notes,
		Attachments:  body.Attachments,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.QueryParam("clinic"), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListWaitingRoom(c echo.Context) error {
	patients, err := h.svc.ListWaiting(c.Request().Context(), c.QueryParam("clinic"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) ListDoctorRoom(c echo.Context) error {
	patients, err := h.svc.ListWithDoctor(c.Request().Context(), c.QueryParam("clinic"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) PatientHistory(c echo.Context) error {
	history, err := h.svc.FindHistory(
		c.Request().Context(),
		c.QueryParam("clinic"),
		c.QueryParam("name"),
		c.QueryParam("phone"),
	)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, history)
}
