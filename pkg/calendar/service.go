package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hyoniii710/gimyo-sns/internal/event_bus"
	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyContent     = errors.New("schedule content is empty")
	ErrReservedCategory = errors.New("category todo is reserved for derived entries")
	ErrUnknownCategory  = errors.New("unknown schedule category")
	ErrDerivedEntry     = errors.New("todo entries can only be changed through the todo list")
	ErrEntryNotFound    = errors.New("schedule entry not found")
)

// maxDayMarkers limits per-day indicator marks in the month grid.
const maxDayMarkers = 3

// Service owns user-authored schedule entries and merges them with the
// todo-derived ones. It keeps a cached copy of the schedule list, reloaded on
// every calendar-updated notification.
type Service struct {
	store store.RecordStore
	clock utils.Clock

	mu      sync.RWMutex
	entries []ScheduleEntry
	lastID  int64

	unsubscribe func()
}

// NewService loads the schedule list and subscribes to calendar-updated
// notifications. Close must be called on teardown to release the
// subscription.
func NewService(recordStore store.RecordStore, bus *event_bus.EventBus, clock utils.Clock) (*Service, error) {
	s := &Service{
		store: recordStore,
		clock: clock,
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	s.unsubscribe = event_bus.SubscribeTyped(bus, event_bus.CalendarUpdatedEvent,
		func(e event_bus.EventT[event_bus.CalendarUpdated]) error {
			log.Debugf("calendar: reloading schedules for %s", e.Data.Date)
			return s.Refresh()
		})
	return s, nil
}

// Close releases the bus subscription.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Refresh re-reads the schedule list from the record store.
func (s *Service) Refresh() error {
	entries, err := store.Load[ScheduleEntry](s.store, store.NamespaceSchedules)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}
	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}

// Entries returns the cached schedule list in stored order.
func (s *Service) Entries() []ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ScheduleEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// EntriesOn returns entries whose date label equals the given one, in stored
// order.
func (s *Service) EntriesOn(dateLabel string) []ScheduleEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ScheduleEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Date == dateLabel {
			out = append(out, e)
		}
	}
	return out
}

// MonthMarkers computes up to three indicator colors per day of the given
// month, keyed by day of month, in original list order.
func (s *Service) MonthMarkers(year int, month time.Month) map[int][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	markers := make(map[int][]string)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= daysInMonth; day++ {
		label := DateLabel(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		for _, e := range s.entries {
			if e.Date != label {
				continue
			}
			markers[day] = append(markers[day], MarkerColor(e.Category))
			if len(markers[day]) == maxDayMarkers {
				break
			}
		}
	}
	return markers
}

// AddEntry creates a user-authored entry for the given date label. The todo
// category is rejected here: derived entries are written only by the todo
// projection.
func (s *Service) AddEntry(ctx context.Context, dateLabel string, category Category, content string) (ScheduleEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return ScheduleEntry{}, ErrEmptyContent
	}
	if category == CategoryTodo {
		return ScheduleEntry{}, ErrReservedCategory
	}
	if !category.Authorable() {
		return ScheduleEntry{}, ErrUnknownCategory
	}
	if dateLabel == "" {
		dateLabel = DateLabel(s.clock.Now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := store.Load[ScheduleEntry](s.store, store.NamespaceSchedules)
	if err != nil {
		return ScheduleEntry{}, fmt.Errorf("failed to load schedules: %w", err)
	}

	entry := ScheduleEntry{
		ID:       s.nextIDLocked(),
		Date:     dateLabel,
		Category: category,
		Content:  content,
	}
	entries = append(entries, entry)

	if err := store.Save(s.store, store.NamespaceSchedules, entries); err != nil {
		return ScheduleEntry{}, err
	}
	s.entries = entries
	return entry, nil
}

// DeleteEntry removes a user-authored entry. Deleting a todo-derived entry is
// refused and leaves the stored list unchanged.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := store.Load[ScheduleEntry](s.store, store.NamespaceSchedules)
	if err != nil {
		return fmt.Errorf("failed to load schedules: %w", err)
	}

	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrEntryNotFound
	}
	if entries[idx].Category == CategoryTodo {
		return ErrDerivedEntry
	}

	entries = append(entries[:idx], entries[idx+1:]...)
	if err := store.Save(s.store, store.NamespaceSchedules, entries); err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// nextIDLocked issues a millisecond-timestamp id, bumped past the previous
// one when two creations land in the same millisecond.
func (s *Service) nextIDLocked() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}
