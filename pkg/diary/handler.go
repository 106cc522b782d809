package diary

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hyoniii710/gimyo-sns/internal/rest"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

type EntryDTO struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
	Mood     string  `json:"mood"`
	Weather  string  `json:"weather"`
}

// ImageDTO carries an optional base64-encoded image attached to a create or
// update request.
type ImageDTO struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

type entryRequest struct {
	EntryDTO
	Image *ImageDTO `json:"image"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

// GetLatest godoc
// @Summary Get the most recent diary post
// @Tags Diary
// @Produce json
// @Success 200 {object} EntryDTO
// @Router /api/diary/latest [get]
func (h *Handler) GetLatest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entry, err := h.service.Latest(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(*entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries, err := h.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, entryToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entry, err := h.service.Get(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(*entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating diary post")

	req, image, ok := decodeEntryRequest(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Create(r.Context(), dtoToEntry(req.EntryDTO), image)
	if err != nil {
		writeDiaryError(w, err)
		return
	}
	if entry == nil {
		// No authenticated user: the remote variant treats this as a no-op.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(*entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	req, image, ok := decodeEntryRequest(w, r)
	if !ok {
		return
	}
	req.ID = mux.Vars(r)["postId"]

	entry, err := h.service.Update(r.Context(), dtoToEntry(req.EntryDTO), image)
	if err != nil {
		writeDiaryError(w, err)
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(*entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.service.Delete(r.Context(), mux.Vars(r)["postId"]); err != nil {
		writeDiaryError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeEntryRequest(w http.ResponseWriter, r *http.Request) (entryRequest, *ImageUpload, bool) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return entryRequest{}, nil, false
	}

	var image *ImageUpload
	if req.Image != nil && req.Image.Data != "" {
		content, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid image encoding",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return entryRequest{}, nil, false
		}
		image = &ImageUpload{
			Filename:    req.Image.Filename,
			ContentType: req.Image.ContentType,
			Content:     content,
		}
	}
	return req, image, true
}

func writeDiaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEntryDataInvalid):
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Title and content are required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	case errors.Is(err, ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrQuotaExceeded):
		w.WriteHeader(http.StatusInsufficientStorage)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Storage is full",
			Details: "The diary post could not be saved because local storage is full",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		ID:       e.ID,
		Date:     e.Date,
		Title:    e.Title,
		Content:  e.Content,
		ImageURL: e.ImageURL,
		Mood:     e.MoodGlyph(),
		Weather:  e.WeatherGlyph(),
	}
}

func dtoToEntry(dto EntryDTO) Entry {
	mood := dto.Mood
	if mood == UnknownGlyph {
		mood = ""
	}
	weather := dto.Weather
	if weather == UnknownGlyph {
		weather = ""
	}
	return Entry{
		ID:       dto.ID,
		Date:     dto.Date,
		Title:    dto.Title,
		Content:  dto.Content,
		ImageURL: dto.ImageURL,
		Mood:     mood,
		Weather:  weather,
	}
}
