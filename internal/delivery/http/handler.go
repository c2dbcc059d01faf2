package http

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kudzaim/paynow-relay/internal/usecase/createpayment"
	"github.com/kudzaim/paynow-relay/internal/usecase/paymentqr"
)

const (
	serviceName       = "paynow-relay"
	relaySecretHeader = "x-relay-secret"
)

type Handler struct {
	relaySecret string
	paynowReady bool
	createUC    *createpayment.UseCase
	qrUC        *paymentqr.UseCase
	logger      *slog.Logger
}

func NewHandler(
	relaySecret string,
	paynowReady bool,
	createUC *createpayment.UseCase,
	qrUC *paymentqr.UseCase,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		relaySecret: relaySecret,
		paynowReady: paynowReady,
		createUC:    createUC,
		qrUC:        qrUC,
		logger:      logger,
	}
}

// amount accepts both a JSON number and a numeric string, matching what
// upstream callers actually send. A value that is present but not numeric
// stays unset and fails field validation.
type amount struct {
	value float64
	set   bool
}

func (a *amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	a.value = v
	a.set = true
	return nil
}

type createPaymentRequest struct {
	Email     string `json:"email"`
	Amount    amount `json:"amount"`
	Reference string `json:"reference"`
}

type createPaymentResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirectUrl"`
	PollURL     string `json:"pollUrl"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Timestamp   string `json:"timestamp"`
	PaynowReady bool   `json:"paynowReady"`
}

// HandleHealth always answers 200, even when the processor client is not
// ready; readiness is reported through the body flag instead.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Service:     serviceName,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		PaynowReady: h.paynowReady,
	})
}

func (h *Handler) HandleCreatePayment(w http.ResponseWriter, r *http.Request) {
	req, ok := h.authorizeAndParse(w, r)
	if !ok {
		return
	}

	resp, err := h.createUC.Execute(r.Context(), *req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createPaymentResponse{
		Success:     true,
		RedirectURL: resp.RedirectURL,
		PollURL:     resp.PollURL,
	})
}

func (h *Handler) HandleCreatePaymentQR(w http.ResponseWriter, r *http.Request) {
	req, ok := h.authorizeAndParse(w, r)
	if !ok {
		return
	}

	png, err := h.qrUC.Execute(r.Context(), *req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// authorizeAndParse runs the shared front of the create-payment pipeline.
// Auth comes before body parsing so unauthenticated callers learn nothing
// about request validation.
func (h *Handler) authorizeAndParse(w http.ResponseWriter, r *http.Request) (*createpayment.Request, bool) {
	secret := r.Header.Get(relaySecretHeader)
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.relaySecret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var body createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if body.Email == "" || body.Reference == "" || !body.Amount.set || body.Amount.value <= 0 {
		writeError(w, http.StatusBadRequest, "Missing email, amount or reference")
		return nil, false
	}

	return &createpayment.Request{
		Email:     body.Email,
		Amount:    body.Amount.value,
		Reference: body.Reference,
	}, true
}

func (h *Handler) writeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, createpayment.ErrRejected) {
		writeError(w, http.StatusBadRequest, "Paynow rejected transaction")
		return
	}
	h.logger.Error("payment relay error", "error", err)
	writeError(w, http.StatusInternalServerError, "Payment relay error")
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
