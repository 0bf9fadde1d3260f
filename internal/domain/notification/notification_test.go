package notification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petstay/service-booking/internal/domain"
)

func TestParseType(t *testing.T) {
	valid := []string{
		"new_request", "request_accepted", "request_rejected",
		"booking_reminder", "review_reminder", "message",
	}
	for _, s := range valid {
		t.Run(s, func(t *testing.T) {
			parsed, err := ParseType(s)
			require.NoError(t, err)
			assert.Equal(t, NotificationType(s), parsed)
		})
	}
}

func TestParseType_Invalid(t *testing.T) {
	for _, s := range []string{"", "push", "NEW_REQUEST", "reminder"} {
		t.Run(s, func(t *testing.T) {
			_, err := ParseType(s)
			assert.Error(t, err)
		})
	}
}

func TestNewNotification(t *testing.T) {
	bookingID := uuid.New()
	n, err := NewNotification(uuid.New(), TypeNewRequest, "New Booking Request", "Milo needs a sitter", &bookingID)
	require.NoError(t, err)

	assert.Equal(t, TypeNewRequest, n.Type())
	assert.False(t, n.IsRead())
	require.NotNil(t, n.BookingID())
	assert.Equal(t, bookingID, *n.BookingID())
}

func TestNewNotification_Validation(t *testing.T) {
	tests := []struct {
		name      string
		userID    uuid.UUID
		notifType NotificationType
		title     string
	}{
		{"nil recipient", uuid.Nil, TypeMessage, "Message"},
		{"invalid type", uuid.New(), NotificationType("push"), "Message"},
		{"empty title", uuid.New(), TypeMessage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNotification(tt.userID, tt.notifType, tt.title, "", nil)
			require.Error(t, err)
			assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		})
	}
}

func TestMarkRead(t *testing.T) {
	n, err := NewNotification(uuid.New(), TypeMessage, "Message", "hello", nil)
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.IsRead())
}
