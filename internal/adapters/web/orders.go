package web

import (
	"net/http"

	"shop-erp/internal/app"
)

// ── Sales orders ──────────────────────────────────────────────────────────────

// apiPreviewSale handles POST /api/sales/preview. Stock is not touched.
// Body: { cashier_id, customer: {kind, customer_id?}, lines: [{product_id, quantity}] }
func (h *Handler) apiPreviewSale(w http.ResponseWriter, r *http.Request) {
	var req app.SaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.PreviewSale(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiConfirmSale handles POST /api/sales. The body is the same as preview;
// stock is re-validated and decremented atomically.
func (h *Handler) apiConfirmSale(w http.ResponseWriter, r *http.Request) {
	var req app.SaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.ConfirmSale(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Order)
}

func (h *Handler) apiListSales(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListSalesOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetSale handles GET /api/sales/{number}.
func (h *Handler) apiGetSale(w http.ResponseWriter, r *http.Request) {
	number, ok := pathID(w, r, "number")
	if !ok {
		return
	}
	result, err := h.svc.GetSalesOrder(r.Context(), number)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}

// ── Resupply orders ───────────────────────────────────────────────────────────

// apiPreviewResupply handles POST /api/resupplies/preview.
// Body: { storekeeper_id, supplier_id, total_cost, lines: [{product_id, quantity}] }
func (h *Handler) apiPreviewResupply(w http.ResponseWriter, r *http.Request) {
	var req app.ResupplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.PreviewResupply(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiConfirmResupply handles POST /api/resupplies.
func (h *Handler) apiConfirmResupply(w http.ResponseWriter, r *http.Request) {
	var req app.ResupplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.ConfirmResupply(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Order)
}

func (h *Handler) apiListResupplies(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListResupplyOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiGetResupply(w http.ResponseWriter, r *http.Request) {
	number, ok := pathID(w, r, "number")
	if !ok {
		return
	}
	result, err := h.svc.GetResupplyOrder(r.Context(), number)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Order)
}
