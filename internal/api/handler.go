package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"

	"fruitshop/m/domain"
	"fruitshop/m/internal/service"
)

type ctxKey string

const (
	ctxPersonID ctxKey = "personID"
	ctxLevel    ctxKey = "level"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db     *sqlx.DB
	secret string

	products      *service.ProductService
	purchases     *service.PurchaseLedger
	wastages      *service.WastageLedger
	revenues      *service.RevenueService
	miscellaneous *service.MiscellaneousService
}

// New constructs a Handler and its services.
func New(db *sqlx.DB, secret string, guardWastageCreate bool) *Handler {
	wastages := service.NewWastageLedger(db)
	wastages.GuardCreate = guardWastageCreate

	return &Handler{
		db:            db,
		secret:        secret,
		products:      service.NewProductService(db),
		purchases:     service.NewPurchaseLedger(db),
		wastages:      wastages,
		revenues:      service.NewRevenueService(db),
		miscellaneous: service.NewMiscellaneousService(db),
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Get("/product-types", h.listProductTypes)
		pr.Get("/unit-types", h.listUnitTypes)

		pr.Route("/consignors", func(r chi.Router) {
			r.Get("/", h.listConsignors)
			r.Post("/", h.createConsignor)
			r.Put("/{id}", h.updateConsignor)
			r.Delete("/{id}", h.deleteConsignor)
		})

		pr.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/{id}", h.getProduct)
			r.Put("/{id}", h.updateProduct)
			r.Delete("/{id}", h.deleteProduct)
		})

		pr.Route("/purchases", func(r chi.Router) {
			r.Get("/", h.listPurchases)
			r.Post("/", h.createPurchase)
			r.Get("/{id}", h.getPurchase)
			r.Put("/{id}", h.updatePurchase)
			r.Delete("/{id}", h.deletePurchase)
		})

		pr.Route("/wastages", func(r chi.Router) {
			r.Get("/", h.listWastages)
			r.Post("/", h.createWastage)
			r.Get("/{id}", h.getWastage)
			r.Put("/{id}", h.updateWastage)
			r.Delete("/{id}", h.deleteWastage)
		})

		pr.Route("/revenues", func(r chi.Router) {
			r.Get("/", h.listRevenues)
			r.Post("/", h.createRevenue)
			r.Get("/{id}", h.getRevenue)
			r.Put("/{id}", h.updateRevenue)
			r.Delete("/{id}", h.deleteRevenue)
		})

		pr.Route("/miscellaneous", func(r chi.Router) {
			r.Get("/", h.listMiscellaneous)
			r.Post("/", h.createMiscellaneous)
			r.Get("/summary", h.sumMiscellaneous)
			r.Get("/{id}", h.getMiscellaneous)
			r.Put("/{id}", h.updateMiscellaneous)
			r.Delete("/{id}", h.deleteMiscellaneous)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Authentication helpers

type authClaims struct {
	PersonID string `json:"person_id"`
	Level    string `json:"level"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(personID string, level domain.Level) (string, error) {
	claims := authClaims{
		PersonID: personID,
		Level:    string(level),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxPersonID, claims.PersonID)
		ctx = context.WithValue(ctx, ctxLevel, claims.Level)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireLevel(w http.ResponseWriter, r *http.Request, allowed ...domain.Level) bool {
	level := r.Context().Value(ctxLevel)
	if level == nil {
		respondError(w, http.StatusUnauthorized, "missing level")
		return false
	}
	current := domain.Level(level.(string))
	for _, allowedLevel := range allowed {
		if current == allowedLevel {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

// staffLevels may mutate ledgers and catalog data.
var staffLevels = []domain.Level{domain.LevelAdmin, domain.LevelBoss, domain.LevelEmployee}

// Helpers

func pagingParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	return page, size
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps typed service outcomes to transport responses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case service.IsValidation(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
