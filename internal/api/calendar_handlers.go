package api

import (
	"net/http"

	"campusclubs/internal/service"
)

type CalendarHandler struct {
	Service *service.CalendarService
}

func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

// Heatmap returns student density grouped by day and time range.
func (h *CalendarHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	cells, err := h.Service.ComputeHeatmap()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"data":        cells,
		"total_slots": len(cells),
	})
}

// OptimalTimes returns the least busy slot per weekday.
func (h *CalendarHandler) OptimalTimes(w http.ResponseWriter, r *http.Request) {
	optimal, err := h.Service.ComputeOptimalTimes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"optimal_times": optimal,
	})
}

// Stats returns summary statistics over the scraped course data.
func (h *CalendarHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.ComputeStats()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}
