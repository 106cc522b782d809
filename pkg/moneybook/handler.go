package moneybook

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hyoniii710/gimyo-sns/internal/rest"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service *Service
}

// TransactionDTO carries the amount as a string so digit-only validation
// happens at entry time instead of silently coercing.
type TransactionDTO struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Memo     string `json:"memo"`
	Type     string `json:"type"`
}

type CategoryTotalDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	txs, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		dtos = append(dtos, txToDTO(tx))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tx, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	created, err := h.service.Add(r.Context(), tx)
	if err != nil {
		writeMoneyBookError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(txToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tx, ok := decodeTransaction(w, r)
	if !ok {
		return
	}
	tx.ID = mux.Vars(r)["txId"]

	updated, err := h.service.Update(r.Context(), tx)
	if err != nil {
		writeMoneyBookError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(txToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.service.Delete(r.Context(), mux.Vars(r)["txId"]); err != nil {
		writeMoneyBookError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	txType := TransactionType(r.URL.Query().Get("type"))
	totals, err := h.service.Summary(r.Context(), txType)
	if err != nil {
		writeMoneyBookError(w, err)
		return
	}

	dtos := make([]CategoryTotalDTO, 0, len(totals))
	for _, t := range totals {
		dtos = append(dtos, CategoryTotalDTO{Name: t.Name, Value: t.Value})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	balance, err := h.service.Balance(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]decimal.Decimal{"balance": balance}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func decodeTransaction(w http.ResponseWriter, r *http.Request) (Transaction, bool) {
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return Transaction{}, false
	}

	amount, err := ParseAmount(dto.Amount)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid amount",
			Details: "Amount must contain digits only",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return Transaction{}, false
	}

	return Transaction{
		ID:       dto.ID,
		Date:     dto.Date,
		Amount:   amount,
		Category: dto.Category,
		Memo:     dto.Memo,
		Type:     TransactionType(dto.Type),
	}, true
}

func writeMoneyBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidCategory):
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	case errors.Is(err, ErrTransactionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrQuotaExceeded):
		w.WriteHeader(http.StatusInsufficientStorage)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Storage is full",
			Details: "The transaction could not be saved because local storage is full",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func txToDTO(tx Transaction) TransactionDTO {
	return TransactionDTO{
		ID:       tx.ID,
		Date:     tx.Date,
		Amount:   tx.Amount.String(),
		Category: tx.Category,
		Memo:     tx.Memo,
		Type:     string(tx.Type),
	}
}
