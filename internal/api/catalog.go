package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

// Enum catalogs

type unitTypeEntry struct {
	Value  domain.UnitType `json:"value"`
	Label  string          `json:"label"`
	Factor float64         `json:"factor"`
}

func (h *Handler) listUnitTypes(w http.ResponseWriter, r *http.Request) {
	entries := make([]unitTypeEntry, 0, len(domain.UnitTypes))
	for _, u := range domain.UnitTypes {
		entries = append(entries, unitTypeEntry{Value: u, Label: u.Label(), Factor: u.Factor()})
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) listProductTypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.ProductTypes)
}

// Consignor handlers

type consignorRequest struct {
	NickName    string `json:"nick_name"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Company     string `json:"company"`
}

func (h *Handler) listConsignors(w http.ResponseWriter, r *http.Request) {
	consignors := []domain.Consignor{}
	if err := h.db.Select(&consignors, `SELECT id, nick_name, name, phone_number, company FROM consignor ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list consignors")
		return
	}
	respondJSON(w, http.StatusOK, consignors)
}

func (h *Handler) createConsignor(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req consignorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	consignor := domain.Consignor{
		ID:          ids.New(),
		NickName:    req.NickName,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Company:     req.Company,
	}
	_, err := h.db.Exec(
		`INSERT INTO consignor (id, nick_name, name, phone_number, company) VALUES ($1, $2, $3, $4, $5)`,
		consignor.ID, consignor.NickName, consignor.Name, consignor.PhoneNumber, consignor.Company)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create consignor")
		return
	}
	respondJSON(w, http.StatusCreated, consignor)
}

func (h *Handler) updateConsignor(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	id := chi.URLParam(r, "id")
	var req consignorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	res, err := h.db.Exec(
		`UPDATE consignor SET nick_name = $1, name = $2, phone_number = $3, company = $4 WHERE id = $5`,
		req.NickName, req.Name, req.PhoneNumber, req.Company, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update consignor")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "consignor not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteConsignor(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, domain.LevelAdmin, domain.LevelBoss) {
		return
	}
	id := chi.URLParam(r, "id")
	res, err := h.db.Exec(`DELETE FROM consignor WHERE id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete consignor")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "consignor not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Product handlers

type productRequest struct {
	Name      *string          `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Type      *string          `json:"type"`
	UnitType  *string          `json:"unit_type"`
	PersonID  *string          `json:"person_id"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, size := pagingParams(r)
	result, err := h.products.List(page, size)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Load(chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == nil || req.Type == nil || req.UnitType == nil || req.PersonID == nil {
		respondError(w, http.StatusBadRequest, "name, type, unit_type and person_id are required")
		return
	}
	unitPrice := decimal.Zero
	if req.UnitPrice != nil {
		unitPrice = *req.UnitPrice
	}
	product, err := h.products.Create(*req.Name, unitPrice, domain.ProductType(*req.Type), domain.UnitType(*req.UnitType), *req.PersonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, staffLevels...) {
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	var (
		typ  *domain.ProductType
		unit *domain.UnitType
	)
	if req.Type != nil {
		t := domain.ProductType(*req.Type)
		typ = &t
	}
	if req.UnitType != nil {
		u := domain.UnitType(*req.UnitType)
		unit = &u
	}
	product, err := h.products.Update(chi.URLParam(r, "id"), req.Name, req.UnitPrice, typ, unit, req.PersonID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireLevel(w, r, domain.LevelAdmin, domain.LevelBoss) {
		return
	}
	if err := h.products.Delete(chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
