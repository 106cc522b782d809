package app

import (
	"database/sql"
	"fmt"

	"github.com/hyoniii710/gimyo-sns/internal/config"
	"github.com/hyoniii710/gimyo-sns/internal/event_bus"
	"github.com/hyoniii710/gimyo-sns/internal/storage"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	"github.com/hyoniii710/gimyo-sns/pkg/calendar"
	"github.com/hyoniii710/gimyo-sns/pkg/diary"
	"github.com/hyoniii710/gimyo-sns/pkg/geo"
	"github.com/hyoniii710/gimyo-sns/pkg/moneybook"
	"github.com/hyoniii710/gimyo-sns/pkg/todo"
	"github.com/hyoniii710/gimyo-sns/pkg/user"
	"github.com/hyoniii710/gimyo-sns/pkg/weather"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus    *event_bus.EventBus
	RecordStore store.RecordStore
	Clock       utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	TodoService *todo.Service
	TodoHandler *todo.Handler

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	ImageStorage    *storage.DiskStore
	DiaryRepository diary.Repository
	DiaryService    *diary.Service
	DiaryHandler    *diary.Handler

	MoneyBookService *moneybook.Service
	MoneyBookHandler *moneybook.Handler

	WeatherClient  weather.Client
	WeatherHandler *weather.Handler

	GeoClient  geo.Client
	GeoHandler *geo.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	recordStore, err := store.NewFileStore(cfg.Store.Dir, cfg.Store.MaxBytes)
	if err != nil {
		return nil, err
	}
	deps.RecordStore = recordStore

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TodoService = todo.NewService(deps.RecordStore, deps.EventBus, deps.Clock)
	deps.TodoHandler = todo.NewHandler(deps.TodoService)

	deps.CalendarService, err = calendar.NewService(deps.RecordStore, deps.EventBus, deps.Clock)
	if err != nil {
		return nil, err
	}
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.ImageStorage, err = storage.NewDiskStore(cfg.Storage.Dir, cfg.Storage.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	switch cfg.Diary.Variant {
	case "local":
		deps.DiaryRepository = diary.NewLocalRepository(deps.RecordStore)
	case "remote":
		deps.DiaryRepository = diary.NewRemoteRepository(db, deps.ImageStorage, deps.Clock)
	default:
		return nil, fmt.Errorf("unknown diary variant: %q", cfg.Diary.Variant)
	}
	deps.DiaryService = diary.NewService(deps.DiaryRepository, diary.NewCatAPIClient(cfg.Placeholder.BaseURL))
	deps.DiaryHandler = diary.NewHandler(deps.DiaryService)

	deps.MoneyBookService = moneybook.NewService(deps.RecordStore)
	deps.MoneyBookHandler = moneybook.NewHandler(deps.MoneyBookService)

	deps.WeatherClient = weather.NewOpenWeatherClient(cfg.Weather.BaseURL, cfg.Weather.APIKey)
	deps.WeatherHandler = weather.NewHandler(deps.WeatherClient)

	deps.GeoClient = geo.NewNominatimClient(cfg.Geo.BaseURL)
	deps.GeoHandler = geo.NewHandler(deps.GeoClient)

	return deps, nil
}
