package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenWeatherClient_Current(t *testing.T) {
	t.Run("should format temperature and description", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/weather", r.URL.Path)
			assert.Equal(t, "metric", r.URL.Query().Get("units"))
			assert.Equal(t, "kr", r.URL.Query().Get("lang"))
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			w.Write([]byte(`{"main":{"temp":21.53},"weather":[{"description":"맑음"}]}`))
		}))
		defer server.Close()
		client := NewOpenWeatherClient(server.URL, "test-key")

		report, err := client.Current(context.Background(), 37.56, 126.97)

		require.NoError(t, err)
		assert.Equal(t, "21.5°C 맑음", report)
	})

	t.Run("should fail on non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		client := NewOpenWeatherClient(server.URL, "bad-key")

		_, err := client.Current(context.Background(), 37.56, 126.97)

		assert.Error(t, err)
	})

	t.Run("should fail on empty weather list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"main":{"temp":10},"weather":[]}`))
		}))
		defer server.Close()
		client := NewOpenWeatherClient(server.URL, "test-key")

		_, err := client.Current(context.Background(), 37.56, 126.97)

		assert.Error(t, err)
	})
}

func TestHandler_GetCurrent(t *testing.T) {
	t.Run("should return the weather report", func(t *testing.T) {
		handler := NewHandler(&StubClient{Report: "21.5°C 맑음"})
		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=37.56&lon=126.97", nil)
		rec := httptest.NewRecorder()

		handler.GetCurrent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"weather":"21.5°C 맑음"}`, rec.Body.String())
	})

	t.Run("should degrade to fallback text when the lookup fails", func(t *testing.T) {
		handler := NewHandler(&StubClient{Err: errors.New("network down")})
		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=37.56&lon=126.97", nil)
		rec := httptest.NewRecorder()

		handler.GetCurrent(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"weather":"날씨 정보를 가져오지 못했습니다."}`, rec.Body.String())
	})

	t.Run("should reject missing coordinates", func(t *testing.T) {
		handler := NewHandler(&StubClient{Report: "ignored"})
		req := httptest.NewRequest(http.MethodGet, "/api/weather?lat=37.56", nil)
		rec := httptest.NewRecorder()

		handler.GetCurrent(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
