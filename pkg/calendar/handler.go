package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/hyoniii710/gimyo-sns/internal/rest"
	"github.com/hyoniii710/gimyo-sns/internal/store"
)

type Handler struct {
	service *Service
}

type ScheduleEntryDTO struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Color    string `json:"color"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dateLabel := r.URL.Query().Get("date")

	var entries []ScheduleEntry
	if dateLabel == "" {
		entries = h.service.Entries()
	} else {
		entries = h.service.EntriesOn(dateLabel)
	}

	dtos := make([]ScheduleEntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ScheduleEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.service.AddEntry(r.Context(), dto.Date, Category(dto.Category), dto.Content)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrUnknownCategory), errors.Is(err, ErrReservedCategory):
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		case errors.Is(err, store.ErrQuotaExceeded):
			w.WriteHeader(http.StatusInsufficientStorage)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Storage is full",
				Details: "The schedule could not be saved because local storage is full",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid entry id",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if err := h.service.DeleteEntry(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrDerivedEntry):
			w.WriteHeader(http.StatusConflict)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Derived entry",
				Details: "Todo entries can only be removed through the todo list",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		case errors.Is(err, ErrEntryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetMonthMarkers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	markers := h.service.MonthMarkers(year, time.Month(month))

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(markers); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func entryToDTO(e ScheduleEntry) ScheduleEntryDTO {
	return ScheduleEntryDTO{
		ID:       e.ID,
		Date:     e.Date,
		Category: string(e.Category),
		Content:  e.Content,
		Color:    MarkerColor(e.Category),
	}
}
