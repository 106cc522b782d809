package weather

import (
	"encoding/json"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// unavailableText is shown when the lookup fails; the failure never surfaces
// as an error to the caller.
const unavailableText = "날씨 정보를 가져오지 못했습니다."

type Handler struct {
	client Client
}

type WeatherDTO struct {
	Weather string `json:"weather"`
}

func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}

	report, err := h.client.Current(r.Context(), lat, lon)
	if err != nil {
		log.Debugf("weather lookup failed: %v", err)
		report = unavailableText
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(WeatherDTO{Weather: report}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
