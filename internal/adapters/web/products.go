package web

import (
	"net/http"

	"shop-erp/internal/app"
)

// apiListProducts handles GET /api/products. An optional ?q= filters by name.
func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		result *app.ProductListResult
		err    error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		result, err = h.svc.SearchProducts(r.Context(), q)
	} else {
		result, err = h.svc.ListProducts(r.Context())
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetProduct handles GET /api/products/{id}.
func (h *Handler) apiGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// apiAddProduct handles POST /api/products.
// Body: { name, sale_price, quantity }
func (h *Handler) apiAddProduct(w http.ResponseWriter, r *http.Request) {
	var req app.AddProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.AddProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, p)
}

// apiSetProductPrice handles PUT /api/products/{id}/price.
// Body: { sale_price }
func (h *Handler) apiSetProductPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req app.SetPriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.svc.SetProductPrice(r.Context(), id, req.SalePrice)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, p)
}

// apiDeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
