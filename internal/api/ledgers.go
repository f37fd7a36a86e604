package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Purchase handlers

type purchaseRequest struct {
	ProductID     *string  `json:"product_id"`
	Quantity      *float64 `json:"quantity"`
	ReceivingDate *string  `json:"receiving_date"`
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	page, size := pagingParams(r)
	result, err := h.purchases.List(page, size)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.purchases.Load(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == nil || req.Quantity == nil || req.ReceivingDate == nil {
		respondError(w, http.StatusBadRequest, "product_id, quantity and receiving_date are required")
		return
	}
	purchase, err := h.purchases.Create(*req.ProductID, *req.Quantity, *req.ReceivingDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	purchase, err := h.purchases.Update(chi.URLParam(r, "id"), req.ProductID, req.Quantity, req.ReceivingDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, purchase)
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	if err := h.purchases.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Wastage handlers

type wastageRequest struct {
	ProductID *string  `json:"product_id"`
	Quantity  *float64 `json:"quantity"`
	Date      *string  `json:"date"`
}

func (h *Handler) listWastages(w http.ResponseWriter, r *http.Request) {
	page, size := pagingParams(r)
	result, err := h.wastages.List(page, size)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getWastage(w http.ResponseWriter, r *http.Request) {
	wastage, err := h.wastages.Load(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wastage)
}

func (h *Handler) createWastage(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req wastageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == nil {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}
	quantity := 0.0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	date := ""
	if req.Date != nil {
		date = *req.Date
	}
	wastage, err := h.wastages.Create(*req.ProductID, quantity, date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, wastage)
}

func (h *Handler) updateWastage(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req wastageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	wastage, err := h.wastages.Update(chi.URLParam(r, "id"), req.ProductID, req.Quantity, req.Date)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wastage)
}

func (h *Handler) deleteWastage(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	if err := h.wastages.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
