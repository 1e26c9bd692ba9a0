package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dukasmart/partspos/internal/apperr"
	"github.com/dukasmart/partspos/internal/http/session"
	"github.com/dukasmart/partspos/internal/service"
	"github.com/dukasmart/partspos/pkg/validator"
)

type saleHandler struct {
	res       *responder
	validator validator.Validator
	saleSvc   service.SaleService
}

func newSaleHandler(
	res *responder,
	validator validator.Validator,
	saleSvc service.SaleService,
) *saleHandler {
	return &saleHandler{
		res:       res,
		validator: validator,
		saleSvc:   saleSvc,
	}
}

func (h *saleHandler) list(w http.ResponseWriter, r *http.Request) {
	var params service.ListSalesParams
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			h.res.writeError(w, r, apperr.ValidationErr.WrapParent(err))
			return
		}
		params.Date = &date
	}

	sales, err := h.saleSvc.ListSales(r.Context(), params)
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, sales)
}

type createSaleRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"required"`
	QuantitySold int       `json:"quantity_sold" validate:"required,gt=0"`

	// SellingPricePerUnit overrides the product's list price when set.
	SellingPricePerUnit *float64 `json:"selling_price_per_unit" validate:"omitempty,gte=0"`
}

func (h *saleHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	staff, ok := session.FromContext(r.Context())
	if !ok {
		h.res.writeError(w, r, apperr.UnauthorizedErr)
		return
	}

	sale, err := h.saleSvc.CreateSale(r.Context(), service.CreateSaleParams{
		ProductID:           req.ProductID,
		QuantitySold:        req.QuantitySold,
		SellingPricePerUnit: req.SellingPricePerUnit,
		Staff:               staff,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusCreated, sale)
}

type updateSaleRequest struct {
	QuantitySold int     `json:"quantity_sold" validate:"required,gt=0"`
	SalePrice    float64 `json:"sale_price" validate:"gte=0"`
}

func (h *saleHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	var req updateSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.res.writeError(w, r, err)
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	sale, err := h.saleSvc.UpdateSale(r.Context(), service.UpdateSaleParams{
		ID:           id,
		QuantitySold: req.QuantitySold,
		SalePrice:    req.SalePrice,
	})
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusOK, sale)
}

func (h *saleHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.res.writeError(w, r, err)
		return
	}

	if err := h.saleSvc.DeleteSale(r.Context(), id); err != nil {
		h.res.writeError(w, r, err)
		return
	}

	h.res.writeJSON(w, r, http.StatusNoContent, nil)
}
