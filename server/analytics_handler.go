package server

import (
	"net/http"
	"strconv"

	"soundlift/core/analytics"
	"soundlift/logger"
)

// AnalyticsHandler returns the authenticated user's analytics events within a
// recency window. The `days` query parameter defaults to 30 and must be a
// positive integer.
func (h *APIHandler) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	days := analytics.DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	events, err := h.analytics.EventsWithin(userID, days)
	if err != nil {
		logger.Error("failed to fetch analytics", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// DashboardStatsHandler returns the dashboard summary for the authenticated
// user. Recomputed from store state on every call.
func (h *APIHandler) DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.analytics.DashboardStats(userID)
	if err != nil {
		logger.Error("failed to compute dashboard stats", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
