package handler

import "net/http"

func (h *Handlers) TriggerVoteDeadlineSweep(w http.ResponseWriter, r *http.Request) {
	h.Sweeps.RunVoteDeadlineSweep(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"sweep": "vote-deadline"})
}

func (h *Handlers) TriggerWarningReset(w http.ResponseWriter, r *http.Request) {
	h.Sweeps.RunWarningReset(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"sweep": "warning-reset"})
}
