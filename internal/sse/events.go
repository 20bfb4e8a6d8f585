// Package sse implements Server-Sent Events for real-time portal updates and event broadcasting.
package sse

import (
	"time"

	"github.com/campushub/campus-server/internal/domain"
)

// The portal only needs server-to-client push: catalog reloads, board and
// booking changes, and per-user mailbox notifications. Clients mutate state
// through the regular REST surface.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventCatalogReloaded fires after a catalog source is re-imported.
	EventCatalogReloaded EventType = "catalog.reloaded"

	// EventNoticeCreated represents a notice creation event.
	EventNoticeCreated EventType = "notice.created"
	// EventNoticeUpdated represents a notice update event.
	EventNoticeUpdated EventType = "notice.updated"
	// EventNoticeDeleted represents a notice deletion event.
	EventNoticeDeleted EventType = "notice.deleted"

	// EventBookingCreated represents a room booking creation event.
	EventBookingCreated EventType = "booking.created"
	// EventBookingUpdated represents a room booking reschedule event.
	EventBookingUpdated EventType = "booking.updated"
	// EventBookingDeleted represents a room booking cancellation event.
	EventBookingDeleted EventType = "booking.deleted"

	// EventReservationCreated is sent to the reserving user only.
	EventReservationCreated EventType = "reservation.created"
	// EventReservationCancelled is sent to the cancelling user only.
	EventReservationCancelled EventType = "reservation.cancelled"

	// EventCommunityCreated represents a community creation event.
	EventCommunityCreated EventType = "community.created"
	// EventCommunityUpdated covers membership and detail changes.
	EventCommunityUpdated EventType = "community.updated"

	// EventMessageReceived is sent to the recipient only.
	EventMessageReceived EventType = "message.received"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`

	// UserEmail filters delivery to one user's connections.
	// Empty means broadcast to all. Not sent to clients.
	UserEmail string `json:"-"`
}

// CatalogReloadedEventData is the data payload for catalog reload events.
type CatalogReloadedEventData struct {
	ReloadedAt time.Time `json:"reloaded_at"`
	Area       string    `json:"area"`
	ItemCount  int       `json:"item_count"`
}

// NoticeEventData is the data payload for notice events.
type NoticeEventData struct {
	Notice *domain.Notice `json:"notice"`
}

// NoticeDeletedEventData is the data payload for notice delete events.
type NoticeDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	NoticeID  string    `json:"notice_id"`
}

// BookingEventData is the data payload for booking events.
type BookingEventData struct {
	Booking *domain.RoomBooking `json:"booking"`
}

// BookingDeletedEventData is the data payload for booking delete events.
type BookingDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	BookingID string    `json:"booking_id"`
	RoomID    string    `json:"room_id"`
	Date      string    `json:"date"`
}

// ReservationEventData is the data payload for reservation events.
type ReservationEventData struct {
	Reservation *domain.Reservation `json:"reservation"`
}

// CommunityEventData is the data payload for community events.
type CommunityEventData struct {
	Community *domain.Community `json:"community"`
}

// MessageEventData is the data payload for message notifications.
type MessageEventData struct {
	Message *domain.Message `json:"message"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

// NewCatalogReloadedEvent creates a catalog reload event.
func NewCatalogReloadedEvent(area string, itemCount int) Event {
	now := time.Now()
	return Event{
		Type:      EventCatalogReloaded,
		Timestamp: now,
		Data: CatalogReloadedEventData{
			ReloadedAt: now,
			Area:       area,
			ItemCount:  itemCount,
		},
	}
}

// NewNoticeCreatedEvent creates a notice creation event.
func NewNoticeCreatedEvent(notice *domain.Notice) Event {
	return Event{
		Type:      EventNoticeCreated,
		Timestamp: time.Now(),
		Data:      NoticeEventData{Notice: notice},
	}
}

// NewNoticeUpdatedEvent creates a notice update event.
func NewNoticeUpdatedEvent(notice *domain.Notice) Event {
	return Event{
		Type:      EventNoticeUpdated,
		Timestamp: time.Now(),
		Data:      NoticeEventData{Notice: notice},
	}
}

// NewNoticeDeletedEvent creates a notice deletion event.
func NewNoticeDeletedEvent(noticeID string) Event {
	now := time.Now()
	return Event{
		Type:      EventNoticeDeleted,
		Timestamp: now,
		Data: NoticeDeletedEventData{
			DeletedAt: now,
			NoticeID:  noticeID,
		},
	}
}

// NewBookingCreatedEvent creates a booking creation event.
func NewBookingCreatedEvent(booking *domain.RoomBooking) Event {
	return Event{
		Type:      EventBookingCreated,
		Timestamp: time.Now(),
		Data:      BookingEventData{Booking: booking},
	}
}

// NewBookingUpdatedEvent creates a booking reschedule event.
func NewBookingUpdatedEvent(booking *domain.RoomBooking) Event {
	return Event{
		Type:      EventBookingUpdated,
		Timestamp: time.Now(),
		Data:      BookingEventData{Booking: booking},
	}
}

// NewBookingDeletedEvent creates a booking cancellation event.
func NewBookingDeletedEvent(booking *domain.RoomBooking) Event {
	now := time.Now()
	return Event{
		Type:      EventBookingDeleted,
		Timestamp: now,
		Data: BookingDeletedEventData{
			DeletedAt: now,
			BookingID: booking.ID,
			RoomID:    booking.RoomID,
			Date:      booking.Date,
		},
	}
}

// NewReservationCreatedEvent creates a reservation event for the holder.
func NewReservationCreatedEvent(r *domain.Reservation) Event {
	return Event{
		Type:      EventReservationCreated,
		Timestamp: time.Now(),
		UserEmail: r.UserEmail,
		Data:      ReservationEventData{Reservation: r},
	}
}

// NewReservationCancelledEvent creates a cancellation event for the holder.
func NewReservationCancelledEvent(r *domain.Reservation) Event {
	return Event{
		Type:      EventReservationCancelled,
		Timestamp: time.Now(),
		UserEmail: r.UserEmail,
		Data:      ReservationEventData{Reservation: r},
	}
}

// NewCommunityCreatedEvent creates a community creation event.
func NewCommunityCreatedEvent(c *domain.Community) Event {
	return Event{
		Type:      EventCommunityCreated,
		Timestamp: time.Now(),
		Data:      CommunityEventData{Community: c},
	}
}

// NewCommunityUpdatedEvent creates a community update event.
func NewCommunityUpdatedEvent(c *domain.Community) Event {
	return Event{
		Type:      EventCommunityUpdated,
		Timestamp: time.Now(),
		Data:      CommunityEventData{Community: c},
	}
}

// NewMessageReceivedEvent creates a mailbox notification for the recipient.
func NewMessageReceivedEvent(m *domain.Message) Event {
	return Event{
		Type:      EventMessageReceived,
		Timestamp: time.Now(),
		UserEmail: m.ToEmail,
		Data:      MessageEventData{Message: m},
	}
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	now := time.Now()
	return Event{
		Type:      EventHeartbeat,
		Timestamp: now,
		Data:      HeartbeatEventData{ServerTime: now},
	}
}
