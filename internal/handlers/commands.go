package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid   = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid     = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errLoadCommands  = "failed to load commands"
	layoutDateTime   = "2006-01-02 15:04:05"
	layoutDate       = "2006-01-02"
	endOfDayInterval = 24*time.Hour - time.Nanosecond
)

// @Summary      List control commands
// @Description  Commands recorded locally by the mirror. A date-only 'to' is end-of-day inclusive.
// @Tags         commands
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range, same formats"  example(2025-08-31)
// @Param        type  query   string  false  "Command type"  Enums(manual_update,automation_update,actuator_update)
// @Success      200   {object}  map[string]interface{}  "count, commands"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/commands [get]
func (h *Handler) getCommands(c *gin.Context) {
	var (
		f   = service.CommandFilter{Type: c.Query("type")}
		err error
	)
	if qs := c.Query("from"); qs != "" {
		if f.From, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if f.To, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			f.To = f.To.Add(endOfDayInterval)
		}
	}

	cmds, err := h.services.CommandLog.List(c.Request.Context(), f)
	if err != nil {
		h.serviceError(c, errLoadCommands, "commands_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(cmds),
		"commands": cmds,
	})
}

func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" and
// returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
