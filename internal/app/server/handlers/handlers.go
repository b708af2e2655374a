package handlers

import (
	"net/http"

	"yookassa-bridge/internal/app/services"

	"github.com/bytedance/sonic"
)

type Handlers struct {
	paymentService *services.PaymentService
	notifier       *services.Notifier
}

func NewHandlers(paymentService *services.PaymentService, notifier *services.Notifier) *Handlers {
	return &Handlers{
		paymentService: paymentService,
		notifier:       notifier,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Error errorMessage `json:"error"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: errorMessage{Message: message}})
}
