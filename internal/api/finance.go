package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fruitshop/m/internal/service"
)

// Revenue handlers

type revenueRequest struct {
	GrossIncome          *decimal.Decimal `json:"gross_income"`
	NetIncome            *decimal.Decimal `json:"net_income"`
	PurchasesExpense     *decimal.Decimal `json:"purchases_expense"`
	PersonnelExpenses    *decimal.Decimal `json:"personnel_expenses"`
	MiscellaneousExpense *decimal.Decimal `json:"miscellaneous_expense"`
	Wastage              *decimal.Decimal `json:"wastage"`
}

func (r revenueRequest) amounts() service.RevenueAmounts {
	return service.RevenueAmounts{
		GrossIncome:          r.GrossIncome,
		NetIncome:            r.NetIncome,
		PurchasesExpense:     r.PurchasesExpense,
		PersonnelExpenses:    r.PersonnelExpenses,
		MiscellaneousExpense: r.MiscellaneousExpense,
		Wastage:              r.Wastage,
	}
}

func (h *Handler) listRevenues(w http.ResponseWriter, r *http.Request) {
	page, size := pagingParams(r)
	result, err := h.revenues.List(page, size)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.revenues.Load(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, revenue)
}

func (h *Handler) createRevenue(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req revenueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	revenue, err := h.revenues.Create(req.amounts())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, revenue)
}

func (h *Handler) updateRevenue(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req revenueRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	revenue, err := h.revenues.Update(chi.URLParam(r, "id"), req.amounts())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, revenue)
}

func (h *Handler) deleteRevenue(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	if err := h.revenues.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Miscellaneous handlers

type miscellaneousRequest struct {
	Name   *string          `json:"name"`
	Amount *decimal.Decimal `json:"amount"`
}

func (h *Handler) listMiscellaneous(w http.ResponseWriter, r *http.Request) {
	page, size := pagingParams(r)
	begin := r.URL.Query().Get("begin")
	end := r.URL.Query().Get("end")
	result, err := h.miscellaneous.List(page, size, begin, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getMiscellaneous(w http.ResponseWriter, r *http.Request) {
	expense, err := h.miscellaneous.Load(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *Handler) createMiscellaneous(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req miscellaneousRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil || req.Amount == nil {
		respondError(w, http.StatusBadRequest, "name and amount are required")
		return
	}
	expense, err := h.miscellaneous.Create(*req.Name, *req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *Handler) updateMiscellaneous(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req miscellaneousRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense, err := h.miscellaneous.Update(chi.URLParam(r, "id"), req.Name, req.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *Handler) deleteMiscellaneous(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	if err := h.miscellaneous.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) sumMiscellaneous(w http.ResponseWriter, r *http.Request) {
	begin := r.URL.Query().Get("begin")
	end := r.URL.Query().Get("end")
	if begin == "" || end == "" {
		respondError(w, http.StatusBadRequest, "begin and end are required")
		return
	}
	total, err := h.miscellaneous.SumAmountBetweenRecordDate(begin, end)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"begin": begin, "end": end, "total": total})
}
