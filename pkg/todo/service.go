package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hyoniii710/gimyo-sns/internal/event_bus"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	"github.com/hyoniii710/gimyo-sns/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyText    = errors.New("todo text is empty")
	ErrTodoNotFound = errors.New("todo not found")
)

// Service owns the todo list. After every mutation it rewrites the
// todo-derived schedule entries for today and publishes a calendar-updated
// notification.
type Service struct {
	store store.RecordStore
	bus   *event_bus.EventBus
	clock utils.Clock

	mu     sync.Mutex
	lastID int64
}

func NewService(recordStore store.RecordStore, bus *event_bus.EventBus, clock utils.Clock) *Service {
	return &Service{
		store: recordStore,
		bus:   bus,
		clock: clock,
	}
}

// List returns all todo items in stored order.
func (s *Service) List(ctx context.Context) ([]TodoItem, error) {
	return store.Load[TodoItem](s.store, store.NamespaceTodos)
}

// Add creates a todo item from the trimmed text and re-projects the list
// onto today's schedule.
func (s *Service) Add(ctx context.Context, text string) (TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return TodoItem{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := store.Load[TodoItem](s.store, store.NamespaceTodos)
	if err != nil {
		return TodoItem{}, fmt.Errorf("failed to load todos: %w", err)
	}

	item := TodoItem{
		ID:   s.nextIDLocked(),
		Text: text,
		Done: false,
	}
	items = append(items, item)

	if err := s.persistAndProject(ctx, items); err != nil {
		return TodoItem{}, err
	}
	return item, nil
}

// Toggle flips the done flag of the matching item.
func (s *Service) Toggle(ctx context.Context, id int64) (TodoItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := store.Load[TodoItem](s.store, store.NamespaceTodos)
	if err != nil {
		return TodoItem{}, fmt.Errorf("failed to load todos: %w", err)
	}

	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return TodoItem{}, ErrTodoNotFound
	}
	items[idx].Done = !items[idx].Done

	if err := s.persistAndProject(ctx, items); err != nil {
		return TodoItem{}, err
	}
	return items[idx], nil
}

// Delete removes the matching item.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := store.Load[TodoItem](s.store, store.NamespaceTodos)
	if err != nil {
		return fmt.Errorf("failed to load todos: %w", err)
	}

	idx := -1
	for i, item := range items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrTodoNotFound
	}
	items = append(items[:idx], items[idx+1:]...)

	return s.persistAndProject(ctx, items)
}

// persistAndProject saves the todo list, rewrites the todo-category schedule
// entries for today (entries of other categories are preserved untouched),
// and publishes the calendar-updated notification.
func (s *Service) persistAndProject(ctx context.Context, items []TodoItem) error {
	if err := store.Save(s.store, store.NamespaceTodos, items); err != nil {
		return err
	}

	schedules, err := store.Load[calendar.ScheduleEntry](s.store, store.NamespaceSchedules)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}

	today := calendar.DateLabel(s.clock.Now())

	merged := make([]calendar.ScheduleEntry, 0, len(schedules)+len(items))
	for _, entry := range schedules {
		if entry.Category != calendar.CategoryTodo {
			merged = append(merged, entry)
		}
	}
	for _, item := range items {
		merged = append(merged, calendar.ScheduleEntry{
			ID:       item.ID,
			Date:     today,
			Category: calendar.CategoryTodo,
			Content:  item.Text,
		})
	}

	if err := store.Save(s.store, store.NamespaceSchedules, merged); err != nil {
		return err
	}

	event := event_bus.NewEvent(ctx, event_bus.CalendarUpdatedEvent, event_bus.CalendarUpdated{Date: today})
	if err := s.bus.Publish(event); err != nil {
		// The todo mutation is already persisted; a failed notification only
		// leaves dependent views stale.
		log.Errorf("failed to publish calendar update: %v", err)
	}
	return nil
}

// nextIDLocked issues a millisecond-timestamp id, bumped past the previous
// one when two additions land in the same millisecond.
func (s *Service) nextIDLocked() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
