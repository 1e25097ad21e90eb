package handler

import (
	"errors"
	"net/http"
	"strings"

	financedomain "club-app-go/internal/domain/finance"
	"club-app-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ledgerEntryRequest struct {
	MemberID    string `json:"memberId"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type annualFeeRequest struct {
	MemberID string `json:"memberId"`
	Paid     bool   `json:"paid"`
}

func (h *Handlers) GetMyAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}
	account, err := h.Finance.GetOrCreateAccount(r.Context(), caller.ID)
	if err != nil {
		h.log.InternalError("finance.account failed", err, "member_id", caller.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Finance.ListAccounts(r.Context())
	if err != nil {
		h.log.InternalError("finance.accounts failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	memberID := strings.TrimSpace(chi.URLParam(r, "memberId"))
	if memberID == "" {
		memberID = caller.ID
	}

	history, err := h.Finance.History(r.Context(), memberID)
	if err != nil {
		h.log.InternalError("finance.transactions failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handlers) Deposit(w http.ResponseWriter, r *http.Request) {
	h.postLedgerEntry(w, r, true)
}

func (h *Handlers) Deduct(w http.ResponseWriter, r *http.Request) {
	h.postLedgerEntry(w, r, false)
}

func (h *Handlers) postLedgerEntry(w http.ResponseWriter, r *http.Request, credit bool) {
	admin, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_identity", "identity required")
		return
	}

	var req ledgerEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.MemberID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "memberId is required")
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid amount")
		return
	}

	txType := financedomain.TransactionType(req.Type)
	if req.Type == "" {
		if credit {
			txType = financedomain.TypeDeposit
		} else {
			txType = financedomain.TypeAdjustment
		}
	}

	opts := financedomain.EntryOptions{ProcessedByAdminID: admin.ID}
	var txn *financedomain.Transaction
	if credit {
		txn, err = h.Finance.Credit(r.Context(), req.MemberID, amount, txType, req.Description, opts)
	} else {
		txn, err = h.Finance.Debit(r.Context(), req.MemberID, amount, txType, req.Description, opts)
	}
	if err != nil {
		switch {
		case errors.Is(err, financedomain.ErrNonPositiveAmount):
			writeError(w, http.StatusBadRequest, "non_positive_amount", "amount must be positive")
		case errors.Is(err, financedomain.ErrInvalidTransactionType):
			writeError(w, http.StatusBadRequest, "invalid_type", "invalid transaction type")
		default:
			h.log.InternalError("finance.post failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

func (h *Handlers) SetAnnualFee(w http.ResponseWriter, r *http.Request) {
	var req annualFeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.MemberID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "memberId is required")
		return
	}
	if err := h.Finance.MarkAnnualFee(r.Context(), req.MemberID, req.Paid); err != nil {
		h.log.InternalError("finance.annual_fee failed", err, "member_id", req.MemberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"paid": req.Paid})
}
