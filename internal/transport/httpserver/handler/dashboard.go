package handler

import (
	"net/http"
)

type dashboardStatsResponse struct {
	TotalMembers         int64 `json:"totalMembers"`
	WeeklyAttendanceRate int64 `json:"weeklyAttendanceRate"`
	ActiveVotes          int64 `json:"activeVotes"`
	ConsecutiveAbsentees int64 `json:"consecutiveAbsentees"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Members.Stats(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.stats: member stats failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	weeklyRate, err := h.Attendance.WeeklyRate(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.stats: weekly rate failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	activeVotes, err := h.Voting.CountActive(r.Context())
	if err != nil {
		h.log.InternalError("dashboard.stats: active votes failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, dashboardStatsResponse{
		TotalMembers:         stats.TotalMembers,
		WeeklyAttendanceRate: weeklyRate,
		ActiveVotes:          activeVotes,
		ConsecutiveAbsentees: stats.ConsecutiveAbsentees,
	})
}
