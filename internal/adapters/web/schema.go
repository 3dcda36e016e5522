package web

import (
	"encoding/json"
	"net/http"
	"reflect"

	"shop-erp/internal/app"
	"shop-erp/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
)

// requestBodies maps the names served by GET /api/schema/{name} to the
// request type whose schema is published.
var requestBodies = map[string]any{
	"product":  app.AddProductRequest{},
	"price":    app.SetPriceRequest{},
	"customer": core.CustomerInput{},
	"supplier": core.SupplierInput{},
	"sale":     app.SaleRequest{},
	"resupply": app.ResupplyRequest{},
}

// apiSchema handles GET /api/schema/{name}.
func (h *Handler) apiSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	v, ok := requestBodies[name]
	if !ok {
		writeError(w, r, "unknown schema "+name, "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, generateSchema(v))
}

func generateSchema(v any) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
		Mapper:                    mapDomainTypes,
	}
	return reflector.Reflect(v)
}

var (
	decimalType     = reflect.TypeOf(decimal.Decimal{})
	customerRefType = reflect.TypeOf(core.CustomerRef{})
)

// mapDomainTypes describes types whose JSON form differs from their Go fields.
func mapDomainTypes(t reflect.Type) *jsonschema.Schema {
	switch t {
	case decimalType:
		return &jsonschema.Schema{Type: "string", Pattern: `^-?[0-9]+(\.[0-9]+)?$`}
	case customerRefType:
		guest := jsonschema.NewProperties()
		guest.Set("kind", &jsonschema.Schema{Const: "guest"})

		registered := jsonschema.NewProperties()
		registered.Set("kind", &jsonschema.Schema{Const: "registered"})
		registered.Set("customer_id", &jsonschema.Schema{Type: "integer", Minimum: json.Number("1")})

		return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
			{Type: "object", Properties: guest},
			{Type: "object", Properties: registered, Required: []string{"kind", "customer_id"}},
		}}
	}
	return nil
}
