package api

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"fruitshop/m/domain"
	"fruitshop/m/internal/ids"
)

type registerRequest struct {
	NickName    string `json:"nick_name"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
	Company     string `json:"company"`
}

type authResponse struct {
	Token  string        `json:"token"`
	Person domain.Person `json:"person"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Level == "" {
		respondError(w, http.StatusBadRequest, "name, email, password and level are required")
		return
	}
	level := domain.Level(req.Level)
	if !level.Valid() {
		respondError(w, http.StatusBadRequest, "level must be admin, consignor, boss or employee")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	person := domain.Person{
		ID:          ids.New(),
		NickName:    req.NickName,
		Name:        req.Name,
		Level:       level,
		Email:       strings.ToLower(req.Email),
		PhoneNumber: req.PhoneNumber,
		Company:     req.Company,
	}
	_, err = h.db.Exec(
		`INSERT INTO person (id, nick_name, name, level, email, password, phone_number, company) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		person.ID, person.NickName, person.Name, person.Level, person.Email, hashed, person.PhoneNumber, person.Company)
	if err != nil {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}

	token, err := h.generateToken(person.ID, person.Level)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Token: token, Person: person})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var person domain.Person
	err := h.db.Get(&person,
		`SELECT id, nick_name, name, level, email, password, phone_number, company, created_at FROM person WHERE email = $1`,
		strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(person.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(person.ID, person.Level)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	person.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, Person: person})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "new_password is required")
		return
	}
	personID := r.Context().Value(ctxPersonID).(string)
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.db.Exec(`UPDATE person SET password = $1 WHERE id = $2`, hashed, personID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
