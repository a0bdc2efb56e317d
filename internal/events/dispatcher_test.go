package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	var got []Event
	dispatcher.Subscribe(EventTicketOpened, func(_ context.Context, event Event) error {
		got = append(got, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketOpened, GuildID: "guild-1"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "guild-1", got[0].GuildID)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	calls := 0
	dispatcher.Subscribe(EventTicketClosed, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventTicketOpened}))
	assert.Zero(t, calls)
}

func TestPublishContinuesPastHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()
	dispatcher.Subscribe(EventTicketClosed, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	calls := 0
	dispatcher.Subscribe(EventTicketClosed, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{Type: EventTicketClosed})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
