// Package panel is the administrative HTTP service. It is a thin CRUD layer
// over the same ledger primitives the bot uses, running as an independent
// process against the shared database.
package panel

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coinbot/service"
)

// NewServer builds the Echo instance with all routes registered.
func NewServer(apiKey string, userService service.UserService, ledgerService service.LedgerService, restrictionService service.RestrictionService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(RequestMetrics())

	h := &Handler{
		userService:        userService,
		ledgerService:      ledgerService,
		restrictionService: restrictionService,
	}

	e.GET("/api/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api", APIKey(apiKey))
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id/logs", h.UserLogs)
	api.GET("/users/:id/cards", h.UserCards)
	api.POST("/users/:id/ban", h.BanUser)
	api.POST("/users/:id/unban", h.UnbanUser)

	return e
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

func newValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
