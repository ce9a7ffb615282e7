package transcribe

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinicdesk/internal/platform/fault"
)

type Handler struct {
	engine Engine
}

func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/transcribe", h.Transcribe)
}

func (h *Handler) Transcribe(c echo.Context) error {
	var req struct {
		Audio       string `json:"audio"`
		ContentType string `json:"contentType"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Audio == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "audio is required")
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "audio must be base64 encoded")
	}

	ctx := c.Request().Context()
	text, err := h.engine.Transcribe(ctx, audio, req.ContentType)
	if err != nil {
		return echo.NewHTTPError(fault.HTTPStatus(err), fault.DisplayMessage(err))
	}

	analysis, err := h.engine.Analyze(ctx, text)
	if err != nil {
		// The transcript is still worth returning on its own.
		log.Warn().Err(err).Msg("transcript analysis failed")
		analysis = Fields{}
	}

	return c.JSON(http.StatusOK, Result{Text: text, Analysis: analysis})
}
