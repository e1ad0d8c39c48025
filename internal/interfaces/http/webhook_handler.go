package httpinterface

import (
	"net/http"
	"strings"
)

type addWebhookBody struct {
	Topic    string `json:"topic"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret"`
}

func (s *server) handleWebhooks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.addWebhook(w, r)
	case http.MethodGet:
		s.listWebhooks(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) handleWebhookById(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/webhooks/")
	if err := s.operatorSvc.RemoveWebhook("", id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (s *server) addWebhook(w http.ResponseWriter, r *http.Request) {
	var body addWebhookBody
	if err := decodeJSON(r, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := s.operatorSvc.AddWebhook(body.Topic, body.Endpoint, body.Secret)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"id": id})
}

func (s *server) listWebhooks(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = "*"
	}

	subs := s.operatorSvc.ListWebhooks(topic)
	views := make([]subscriptionView, len(subs))
	for i, sub := range subs {
		views[i] = subscriptionView{
			Id:       sub.Id(),
			Topic:    sub.Topic(),
			Endpoint: sub.NotifyAt(),
			Secured:  sub.IsSecured(),
		}
	}
	writeJSON(w, http.StatusOK, views)
}
