package geo

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

const unavailableText = "주소 정보를 불러올 수 없습니다."

type Handler struct {
	client Client
}

type LocationDTO struct {
	Location string `json:"location"`
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	address, err := h.client.ReverseGeocode(r.Context(), lat, lon)
	if err != nil || address == "" {
		log.Debugf("reverse geocode failed: %v", err)
		address = unavailableText
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LocationDTO{Location: address}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
