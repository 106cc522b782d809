package event_bus

// CalendarUpdatedEvent is published by the todo subsystem after it rewrites
// its derived schedule entries, so calendar views re-read the record store.
const CalendarUpdatedEvent EventType = "calendar.updated"

// CalendarUpdated is the payload of CalendarUpdatedEvent.
type CalendarUpdated struct {
	// Date is the localized day label the todo projection was written for.
	Date string
}
