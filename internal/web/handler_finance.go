package web

import (
	"net/http"

	"github.com/mkanyika/shamba/internal/domain"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if err := readJSON(w, r, &expense); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense.FarmID = r.PathValue("id")

	user := userFrom(r.Context())
	created, err := s.service.RecordExpense(r.Context(), user.ID, expense)
	if err != nil {
		s.serviceError(w, err, "create expense failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	expenses, err := s.service.ListExpenses(r.Context(), user.ID, r.PathValue("id"), queryRange(r), limit)
	if err != nil {
		s.serviceError(w, err, "list expenses failed")
		return
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// saleRequest is the create-sale payload. TotalAmount is always computed
// server-side from quantity and price.
type saleRequest struct {
	CropName     string            `json:"crop_name"`
	Quantity     float64           `json:"quantity"`
	Unit         string            `json:"unit"`
	PricePerUnit float64           `json:"price_per_unit"`
	SaleDate     string            `json:"sale_date"`
	Buyer        *domain.BuyerInfo `json:"buyer_info"`
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := readJSON(w, r, &req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale := domain.NewSale(r.PathValue("id"), req.CropName, req.Quantity,
		req.Unit, req.PricePerUnit, req.SaleDate, req.Buyer)

	user := userFrom(r.Context())
	created, err := s.service.RecordSale(r.Context(), user.ID, sale)
	if err != nil {
		s.serviceError(w, err, "create sale failed")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	user := userFrom(r.Context())
	sales, err := s.service.ListSales(r.Context(), user.ID, r.PathValue("id"), queryRange(r), limit)
	if err != nil {
		s.serviceError(w, err, "list sales failed")
		return
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	writeJSON(w, http.StatusOK, sales)
}
