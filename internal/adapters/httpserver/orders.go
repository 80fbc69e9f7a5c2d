package httpserver

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phenrril/kiddocorner/internal/adapters/sheet"
	"github.com/phenrril/kiddocorner/internal/domain"
	"github.com/phenrril/kiddocorner/internal/usecase"
)

func (s *Server) apiShipping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Orders.ShippingCosts(r.Context()))
}

func (s *Server) apiPaymentMethods(w http.ResponseWriter, r *http.Request) {
	list, err := s.Orders.PaymentMethods(r.Context(), true)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	var in usecase.CheckoutInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	o, err := s.Orders.Checkout(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	lang := s.lang(r)
	msg := s.Content.Translator.T(lang, "checkout.orderSuccess", "Order Placed Successfully", nil)
	writeJSON(w, http.StatusCreated, map[string]any{"order": o, "message": msg})
}

// --- admin ---

func (s *Server) adminOrders(w http.ResponseWriter, r *http.Request) {
	f := domain.OrderFilter{
		Status:   domain.OrderStatus(r.URL.Query().Get("status")),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "page_size"),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	list, total, err := s.Orders.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page[domain.OrderDetails]{Items: list, Total: total, Page: f.Page})
}

func (s *Server) adminOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	o, err := s.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) adminOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const exportLimit = 10000

func (s *Server) adminExportOrders(w http.ResponseWriter, r *http.Request) {
	f := domain.OrderFilter{Status: domain.OrderStatus(r.URL.Query().Get("status")), Page: 1, PageSize: exportLimit}
	list, _, err := s.Orders.List(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeWorkbook(w, r, sheet.Filename("orders", time.Now().Format("20060102")), func(out io.Writer) error {
		return sheet.WriteOrders(out, list)
	})
}

func (s *Server) adminPaymentMethods(w http.ResponseWriter, r *http.Request) {
	list, err := s.Orders.PaymentMethods(r.Context(), false)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// adminSavePaymentMethod creates on POST and updates on PUT /{id}.
func (s *Server) adminSavePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var m domain.PaymentMethod
	if err := decodeJSON(w, r, &m); err != nil {
		writeError(w, r, err)
		return
	}
	m.ID = uuid.Nil
	code := http.StatusCreated
	if chi.URLParam(r, "id") != "" {
		id, err := idParam(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		m.ID = id
		code = http.StatusOK
	}
	if err := s.Orders.SavePaymentMethod(r.Context(), &m); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, code, m)
}

func (s *Server) adminDeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Orders.DeletePaymentMethod(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminUpdateShipping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cost float64 `json:"cost"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Orders.UpdateShipping(r.Context(), chi.URLParam(r, "key"), req.Cost); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Orders.ShippingCosts(r.Context()))
}
