package devopsite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/devopsite/relay"
)

const (
	relayTimeout = 15 * time.Second
	maxFormBody  = 64 << 10
)

// Generic messages returned to clients; details stay in the log.
const (
	msgInvalid     = "Please fill in the form before sending."
	msgRateLimited = "Too many submissions. Please try again later."
	msgFailed      = "Your message could not be sent. Please try again or email us directly."
)

type formResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func formError(c echo.Context, code int, msg string) error {
	return c.JSON(code, formResponse{Success: false, Error: msg})
}

// handleForm accepts a JSON object or an urlencoded/multipart form and
// relays it to the form providers.
func (a *App) handleForm(form string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()
		if !a.formLimiter.Allow(ip) {
			return formError(c, http.StatusTooManyRequests, msgRateLimited)
		}

		fields, err := readFormFields(c)
		if err != nil {
			a.logger.Debug().Err(err).Str("form", form).Msg("unreadable form body")
			return formError(c, http.StatusBadRequest, msgInvalid)
		}
		sub, err := relay.NewSubmission(form, fields, a.now())
		if err != nil {
			return formError(c, http.StatusBadRequest, msgInvalid)
		}
		sub.RemoteIP = ip
		sub.UserAgent = c.Request().UserAgent()

		ctx, cancel := context.WithTimeout(c.Request().Context(), relayTimeout)
		defer cancel()
		if err := a.Relay.Deliver(ctx, sub); err != nil {
			a.logger.Error().Err(err).Str("form", form).Str("id", sub.ID).Msg("form relay failed")
			return formError(c, http.StatusBadGateway, msgFailed)
		}
		a.logger.Info().Str("form", form).Str("id", sub.ID).Msg("form relayed")
		return c.JSON(http.StatusOK, formResponse{Success: true})
	}
}

func readFormFields(c echo.Context) (map[string]string, error) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxFormBody)

	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var raw map[string]any
		if err := json.NewDecoder(req.Body).Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			switch v := v.(type) {
			case nil:
			case string:
				fields[k] = v
			case bool, float64:
				fields[k] = fmt.Sprint(v)
			case []any:
				parts := make([]string, 0, len(v))
				for _, p := range v {
					if s, ok := p.(string); ok {
						parts = append(parts, s)
					}
				}
				fields[k] = strings.Join(parts, ", ")
			}
		}
		return fields, nil
	}

	values, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}
	if len(values) == 0 {
		return nil, errors.New("empty form")
	}
	fields := make(map[string]string, len(values))
	for k, v := range values {
		fields[k] = strings.Join(v, ", ")
	}
	return fields, nil
}
