package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hyoniii710/gimyo-sns/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Todo list
	r.HandleFunc("/api/todo", deps.TodoHandler.GetTodos).Methods("GET")
	r.HandleFunc("/api/todo", deps.TodoHandler.AddTodo).Methods("POST")
	r.HandleFunc("/api/todo/{todoId}/done", deps.TodoHandler.ToggleTodo).Methods("PATCH")
	r.HandleFunc("/api/todo/{todoId}", deps.TodoHandler.DeleteTodo).Methods("DELETE")

	// Calendar schedules
	r.HandleFunc("/api/calendar/schedule", deps.CalendarHandler.GetSchedule).Methods("GET")
	r.HandleFunc("/api/calendar/schedule", deps.CalendarHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/calendar/schedule/{entryId}", deps.CalendarHandler.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/api/calendar/markers", deps.CalendarHandler.GetMonthMarkers).
		Queries("year", "{year}", "month", "{month}").Methods("GET")

	// Diary
	r.HandleFunc("/api/diary", deps.DiaryHandler.GetEntries).Methods("GET")
	r.HandleFunc("/api/diary/latest", deps.DiaryHandler.GetLatest).Methods("GET")
	r.HandleFunc("/api/diary", deps.DiaryHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/diary/{postId}", deps.DiaryHandler.GetEntry).Methods("GET")
	r.HandleFunc("/api/diary/{postId}", deps.DiaryHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/diary/{postId}", deps.DiaryHandler.DeleteEntry).Methods("DELETE")

	// Money book
	r.HandleFunc("/api/moneybook", deps.MoneyBookHandler.GetTransactions).Methods("GET")
	r.HandleFunc("/api/moneybook", deps.MoneyBookHandler.CreateTransaction).Methods("POST")
	r.HandleFunc("/api/moneybook/summary", deps.MoneyBookHandler.GetSummary).Queries("type", "{type}").Methods("GET")
	r.HandleFunc("/api/moneybook/balance", deps.MoneyBookHandler.GetBalance).Methods("GET")
	r.HandleFunc("/api/moneybook/{txId}", deps.MoneyBookHandler.UpdateTransaction).Methods("PUT")
	r.HandleFunc("/api/moneybook/{txId}", deps.MoneyBookHandler.DeleteTransaction).Methods("DELETE")

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).
		Queries("username", "{username}").Methods("GET")

	// Weather and location lookups
	r.HandleFunc("/api/weather", deps.WeatherHandler.GetCurrent).Queries("lat", "{lat}", "lon", "{lon}").Methods("GET")
	r.HandleFunc("/api/location", deps.GeoHandler.GetLocation).Queries("lat", "{lat}", "lon", "{lon}").Methods("GET")

	// Uploaded diary images
	r.PathPrefix(cfg.Storage.PublicBaseURL + "/").Handler(
		http.StripPrefix(cfg.Storage.PublicBaseURL+"/", http.FileServer(http.Dir(deps.ImageStorage.Dir()))),
	).Methods("GET")
}
