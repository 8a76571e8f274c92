package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/littlelemon/tablebook/internal/internaltypes"
	"github.com/littlelemon/tablebook/internal/order"
)

type cartLineView struct {
	ItemID    int    `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type cartView struct {
	Type  order.Type     `json:"type"`
	Lines []cartLineView `json:"lines"`
	Count int            `json:"count"`
	Total string         `json:"total"`
}

func newCartView(c *order.Cart) cartView {
	v := cartView{Type: c.Type(), Lines: []cartLineView{}, Count: c.Count(), Total: c.Total().String()}
	for _, l := range c.Lines() {
		v.Lines = append(v.Lines, cartLineView{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice.String(),
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal().String(),
		})
	}
	return v
}

func (s *Server) handleCartGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newCartView(s.Carts.Load(r)))
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	s.Carts.Clear(w)
	writeJSON(w, http.StatusOK, newCartView(order.NewCart()))
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID int `json:"itemId"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	item, err := s.Menu.Find(req.ItemID)
	if errors.Is(err, internaltypes.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cart := s.Carts.Load(r)
	cart.AddItem(item)
	s.saveCart(w, r, cart)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := decodeJSON(w, r, &req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}
	cart := s.Carts.Load(r)
	cart.UpdateQuantity(id, *req.Quantity)
	s.saveCart(w, r, cart)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := itemIDParam(w, r)
	if !ok {
		return
	}
	cart := s.Carts.Load(r)
	cart.RemoveItem(id)
	s.saveCart(w, r, cart)
}

func (s *Server) handleCartType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	typ, err := order.ParseType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cart := s.Carts.Load(r)
	cart.SetType(typ)
	s.saveCart(w, r, cart)
}

func (s *Server) saveCart(w http.ResponseWriter, r *http.Request, cart *order.Cart) {
	if err := s.Carts.Save(w, r, cart); err != nil {
		s.log(r).Error("cannot save cart", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Could not save cart")
		return
	}
	writeJSON(w, http.StatusOK, newCartView(cart))
}

func itemIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "item id must be a number")
		return 0, false
	}
	return id, true
}
