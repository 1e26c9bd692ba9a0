package http

import (
	"net/http"

	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/validator"
)

type productHandler struct {
	res        *responder
	validator  validator.Validator
	productSvc service.ProductService
}

func newProductHandler(
	res *responder,
	validator validator.Validator,
	productSvc service.ProductService,
) *productHandler {
	return &productHandler{
		res:        res,
		validator:  validator,
		productSvc: productSvc,
	}
}

func listProductsParams(r *http.Request) service.ListProductsParams {
	q := r.URL.Query()
	return service.ListProductsParams{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
	}
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListProducts(r.Context(), listProductsParams(r))
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, products)
}

func (h *productHandler) listPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListPublicProducts(r.Context(), listProductsParams(r))
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, products)
}

type productRequest struct {
	ProductName  string  `json:"product_name" validate:"required,max=200"`
	Category     string  `json:"category" validate:"required,max=100"`
	Type         *string `json:"type" validate:"omitempty,max=100"`
	Quantity     int     `json:"quantity" validate:"gte=0"`
	PricePerUnit float64 `json:"price_per_unit" validate:"gte=0"`
	MinimumStock int     `json:"minimum_stock" validate:"gte=0"`
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		ProductName:  req.ProductName,
		Category:     req.Category,
		Type:         req.Type,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		MinimumStock: req.MinimumStock,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusCreated, product)
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), service.UpdateProductParams{
		ID:           id,
		ProductName:  req.ProductName,
		Category:     req.Category,
		Type:         req.Type,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		MinimumStock: req.MinimumStock,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, product)
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusNoContent, nil)
}

// Amount is range-checked by the service so a zero or negative restock
// maps to the dedicated error code.
type restockRequest struct {
	Amount int `json:"amount"`
}

func (h *productHandler) restock(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	var req restockRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	product, err := h.productSvc.RestockProduct(r.Context(), id, req.Amount)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, product)
}
