package httpinterface

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

type addItemBody struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	SellerId string `json:"seller_id"`
}

func (s *server) handleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.addItem(w, r)
	case http.MethodGet:
		s.listItems(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) handleItemById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	itemId := strings.TrimPrefix(r.URL.Path, "/v1/items/")
	item, err := s.operatorSvc.GetItem(r.Context(), itemId)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemView(*item))
}

func (s *server) addItem(w http.ResponseWriter, r *http.Request) {
	var body addItemBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Title == "" || body.SellerId == "" {
		http.Error(w, "title and seller_id are required", http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		http.Error(w, "price must be a decimal number", http.StatusBadRequest)
		return
	}

	item, err := s.operatorSvc.AddItem(r.Context(), body.Title, price, body.SellerId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemView(*item))
}

func (s *server) listItems(w http.ResponseWriter, r *http.Request) {
	sellerId := r.URL.Query().Get("seller_id")
	if sellerId == "" {
		http.Error(w, "seller_id query param is required", http.StatusBadRequest)
		return
	}

	items, err := s.operatorSvc.ListItemsForSeller(r.Context(), sellerId)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]itemView, len(items))
	for i, item := range items {
		views[i] = toItemView(item)
	}
	writeJSON(w, http.StatusOK, views)
}
