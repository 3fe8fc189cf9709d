// Package handler serves bank and branch lookups over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/lookup"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	apperrors "github.com/Adithya-Monish-Kumar-K/zengin/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/logger"
)

type Handler struct {
	source lookup.Source
	logger *slog.Logger
}

func New(source lookup.Source) *Handler {
	return &Handler{
		source: source,
		logger: slog.Default().With("component", "lookup-handler"),
	}
}

// Register mounts the lookup routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/banks", h.ListBanks)
	mux.HandleFunc("GET /api/v1/banks/{bankCode}", h.GetBank)
	mux.HandleFunc("GET /api/v1/banks/{bankCode}/branches", h.ListBranches)
	mux.HandleFunc("GET /api/v1/banks/{bankCode}/branches/{branchCode}", h.GetBranch)
}

type bankList struct {
	Count int           `json:"count"`
	Banks []zengin.Bank `json:"banks"`
}

type branchList struct {
	Bank     zengin.Bank     `json:"bank"`
	Count    int             `json:"count"`
	Branches []zengin.Branch `json:"branches"`
}

func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.source.Banks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sorted := banks.Sorted()
	h.writeJSON(w, http.StatusOK, bankList{Count: len(sorted), Banks: sorted})
}

func (h *Handler) GetBank(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("bankCode")
	bank, ok, err := h.source.Bank(r.Context(), code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, apperrors.Newf(apperrors.ErrBankNotFound, http.StatusNotFound, "bank %s not found", code))
		return
	}
	h.writeJSON(w, http.StatusOK, bank)
}

func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("bankCode")
	bank, ok, err := h.source.Bank(ctx, code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, apperrors.Newf(apperrors.ErrBankNotFound, http.StatusNotFound, "bank %s not found", code))
		return
	}
	branches, ok, err := h.source.Branches(ctx, code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, apperrors.Newf(apperrors.ErrBankNotFound, http.StatusNotFound, "bank %s not found", code))
		return
	}
	sorted := branches.Sorted()
	h.writeJSON(w, http.StatusOK, branchList{Bank: bank, Count: len(sorted), Branches: sorted})
}

func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	bankCode := r.PathValue("bankCode")
	branchCode := r.PathValue("branchCode")
	branch, ok, err := h.source.Branch(r.Context(), bankCode, branchCode)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ok {
		h.fail(w, r, apperrors.Newf(apperrors.ErrBranchNotFound, http.StatusNotFound, "branch %s/%s not found", bankCode, branchCode))
		return
	}
	h.writeJSON(w, http.StatusOK, branch)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatusCode(err)
	message := err.Error()
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
	case status >= http.StatusInternalServerError:
		logger.FromContext(r.Context()).Error("lookup failed", "path", r.URL.Path, "error", err)
		message = http.StatusText(status)
	}
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}
