package panel

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"coinbot/models"
	"coinbot/service"
)

// Handler holds the services the panel endpoints call into.
type Handler struct {
	userService        service.UserService
	ledgerService      service.LedgerService
	restrictionService service.RestrictionService
}

type userResponse struct {
	UserID           int64   `json:"user_id"`
	LinkedProfileURL *string `json:"linked_profile_url"`
	Balance          int64   `json:"balance"`
	CreatedAt        string  `json:"created_at"`
}

type logResponse struct {
	ID        int64            `json:"id"`
	Action    models.ActionTag `json:"action"`
	Amount    *int64           `json:"amount"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	CreatedAt string           `json:"created_at"`
}

type cardResponse struct {
	ID         int64  `json:"id"`
	Source     string `json:"source"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	Verified   bool   `json:"verified"`
}

type banRequest struct {
	Days   int     `json:"days" validate:"min=0,max=3650"`
	Reason *string `json:"reason"`
}

// Health reports liveness; it requires no API key.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// ListUsers returns the newest accounts joined with their balances.
func (h *Handler) ListUsers(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}
	if limit < 1 || limit > 200 {
		return echo.NewHTTPError(http.StatusBadRequest, "limit out of range")
	}

	accounts, err := h.userService.ListAccounts(c.Request().Context(), limit)
	if err != nil {
		log.Errorf("Error listing accounts: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list users")
	}

	items := make([]userResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, userResponse{
			UserID:           a.UserID,
			LinkedProfileURL: a.LinkedProfileURL,
			Balance:          a.Balance,
			CreatedAt:        a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// UserLogs returns the newest audit entries for a user.
func (h *Handler) UserLogs(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	entries, err := h.ledgerService.GetHistory(c.Request().Context(), userID, 100)
	if err != nil {
		log.Errorf("Error listing logs for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list logs")
	}

	items := make([]logResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, logResponse{
			ID:        e.ID,
			Action:    e.Action,
			Amount:    e.Amount,
			Metadata:  e.Metadata,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// UserCards returns the cards owned by a user.
func (h *Handler) UserCards(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	cards, err := h.userService.GetCards(c.Request().Context(), userID)
	if err != nil {
		log.Errorf("Error listing cards for user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list cards")
	}

	items := make([]cardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, cardResponse{
			ID:         card.ID,
			Source:     card.Source,
			ExternalID: card.ExternalID,
			Name:       card.Name,
			Verified:   card.Verified,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// BanUser sets a game ban. days 0 means permanent.
func (h *Handler) BanUser(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	req := banRequest{Days: 7}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var activeUntil *time.Time
	if req.Days > 0 {
		until := time.Now().UTC().Add(time.Duration(req.Days) * 24 * time.Hour).Truncate(time.Second)
		activeUntil = &until
	}

	if err := h.restrictionService.SetRestriction(c.Request().Context(), userID, activeUntil, req.Reason); err != nil {
		log.Errorf("Error banning user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to set ban")
	}

	resp := map[string]any{"ok": true, "user_id": userID, "reason": req.Reason}
	if activeUntil != nil {
		resp["active_until"] = activeUntil.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}

// UnbanUser lifts any ban by clearing both fields.
func (h *Handler) UnbanUser(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.restrictionService.SetRestriction(c.Request().Context(), userID, nil, nil); err != nil {
		log.Errorf("Error unbanning user %d: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to lift ban")
	}

	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

func parseUserID(c echo.Context) (int64, error) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return userID, nil
}
