package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"shop-erp/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	logger *zap.Logger
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, logger *zap.Logger, allowedOrigins []string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)
	r.Get("/api/schema/{name}", h.apiSchema)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// ── Catalog ──────────────────────────────────────────────────────────
		r.Get("/api/products", h.apiListProducts)
		r.Post("/api/products", h.apiAddProduct)
		r.Get("/api/products/{id}", h.apiGetProduct)
		r.Put("/api/products/{id}/price", h.apiSetProductPrice)
		r.Delete("/api/products/{id}", h.apiDeleteProduct)

		// ── Customers and suppliers ──────────────────────────────────────────
		r.Get("/api/customers", h.apiListCustomers)
		r.Post("/api/customers", h.apiAddCustomer)
		r.Delete("/api/customers/{id}", h.apiDeleteCustomer)
		r.Get("/api/customers/{id}/orders", h.apiCustomerHistory)
		r.Get("/api/suppliers", h.apiListSuppliers)
		r.Post("/api/suppliers", h.apiAddSupplier)
		r.Delete("/api/suppliers/{id}", h.apiDeleteSupplier)
		r.Get("/api/suppliers/{id}/orders", h.apiSupplierHistory)

		// ── Sales orders ─────────────────────────────────────────────────────
		r.Post("/api/sales/preview", h.apiPreviewSale)
		r.Post("/api/sales", h.apiConfirmSale)
		r.Get("/api/sales", h.apiListSales)
		r.Get("/api/sales/{number}", h.apiGetSale)

		// ── Resupply orders ──────────────────────────────────────────────────
		r.Post("/api/resupplies/preview", h.apiPreviewResupply)
		r.Post("/api/resupplies", h.apiConfirmResupply)
		r.Get("/api/resupplies", h.apiListResupplies)
		r.Get("/api/resupplies/{number}", h.apiGetResupply)

		// ── Persistence ──────────────────────────────────────────────────────
		r.Post("/api/save", h.apiSave)
		r.Get("/api/load-report", h.apiLoadReport)
	})

	h.router = r
	return r
}

// health returns service status and whether the last load skipped any rows.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status   string `json:"status"`
		Products int    `json:"products"`
		LoadOK   bool   `json:"load_ok"`
	}
	products, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, response{Status: "ok", Products: len(products.Products), LoadOK: h.svc.LoadReport().OK()})
}

func (h *Handler) apiSave(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Save(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apiLoadReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.LoadReport())
}

// pathID parses a positive integer URL parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, r, fmt.Sprintf("invalid %s %q", name, raw), "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
