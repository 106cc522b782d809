package calendar

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/hyoniii710/gimyo-sns/internal/event_bus"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, *store.MemoryStore) {
	recordStore := store.NewMemoryStore()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)}
	service, err := NewService(recordStore, bus, clock)
	require.NoError(t, err)
	t.Cleanup(service.Close)
	return NewHandler(service), recordStore
}

func postEntry(t *testing.T, handler *Handler, dto ScheduleEntryDTO) *httptest.ResponseRecorder {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/schedule", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateEntry(w, req)
	return w
}

func TestHandler_CreateEntry(t *testing.T) {
	t.Run("should create an entry with its marker color", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)

		w := postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "식사", Content: "점심 약속"})

		assert.Equal(t, http.StatusCreated, w.Code)
		var dto ScheduleEntryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "식사", dto.Category)
		assert.Equal(t, "#38bdf8", dto.Color)
		assert.NotZero(t, dto.ID)
	})

	t.Run("should reject the reserved todo category", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)

		w := postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "todo", Content: "sneaky"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject empty content", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)

		w := postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "식사", Content: " "})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should report a full store", func(t *testing.T) {
		handler, recordStore := setupHandlerTest(t)
		recordStore.MaxBytes = 10

		w := postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "식사", Content: "점심"})

		assert.Equal(t, http.StatusInsufficientStorage, w.Code)
	})
}

func TestHandler_GetSchedule(t *testing.T) {
	t.Run("should filter by date", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "식사", Content: "lunch"})
		postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 4일", Category: "공부", Content: "study"})

		req := httptest.NewRequest(http.MethodGet, "/api/calendar/schedule?date="+url.QueryEscape("2024년 5월 3일"), nil)
		w := httptest.NewRecorder()
		handler.GetSchedule(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var dtos []ScheduleEntryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, "lunch", dtos[0].Content)
	})
}

func TestHandler_DeleteEntry(t *testing.T) {
	t.Run("should delete an entry", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		w := postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "운동", Content: "러닝"})
		var created ScheduleEntryDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		req := httptest.NewRequest(http.MethodDelete, "/api/calendar/schedule/1", nil)
		req = mux.SetURLVars(req, map[string]string{"entryId": strconv.FormatInt(created.ID, 10)})
		rec := httptest.NewRecorder()
		handler.DeleteEntry(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("should refuse to delete a todo-derived entry", func(t *testing.T) {
		handler, recordStore := setupHandlerTest(t)
		derived := ScheduleEntry{ID: 99, Date: "2024년 5월 3일", Category: CategoryTodo, Content: "buy milk"}
		require.NoError(t, store.Save(recordStore, store.NamespaceSchedules, []ScheduleEntry{derived}))

		req := httptest.NewRequest(http.MethodDelete, "/api/calendar/schedule/99", nil)
		req = mux.SetURLVars(req, map[string]string{"entryId": "99"})
		rec := httptest.NewRecorder()
		handler.DeleteEntry(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should return 404 for unknown entry", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)

		req := httptest.NewRequest(http.MethodDelete, "/api/calendar/schedule/12345", nil)
		req = mux.SetURLVars(req, map[string]string{"entryId": "12345"})
		rec := httptest.NewRecorder()
		handler.DeleteEntry(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_GetMonthMarkers(t *testing.T) {
	t.Run("should return markers keyed by day", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)
		postEntry(t, handler, ScheduleEntryDTO{Date: "2024년 5월 3일", Category: "식사", Content: "lunch"})

		req := httptest.NewRequest(http.MethodGet, "/api/calendar/markers?year=2024&month=5", nil)
		w := httptest.NewRecorder()
		handler.GetMonthMarkers(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var markers map[string][]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&markers))
		assert.Equal(t, []string{"#38bdf8"}, markers["3"])
	})

	t.Run("should reject an invalid month", func(t *testing.T) {
		handler, _ := setupHandlerTest(t)

		req := httptest.NewRequest(http.MethodGet, "/api/calendar/markers?year=2024&month=13", nil)
		w := httptest.NewRecorder()
		handler.GetMonthMarkers(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
