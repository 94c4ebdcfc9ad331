package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all subscribers of the type", func(t *testing.T) {
		t.Parallel()
		dispatcher := NewInMemoryDispatcher()

		var seen []string
		dispatcher.Subscribe(EventUserLoggedIn, func(_ context.Context, event Event) error {
			seen = append(seen, "first:"+event.ID)
			return nil
		})
		dispatcher.Subscribe(EventUserLoggedIn, func(_ context.Context, event Event) error {
			seen = append(seen, "second:"+event.ID)
			return nil
		})

		err := dispatcher.Publish(context.Background(), Event{
			ID:        "ev-1",
			Type:      EventUserLoggedIn,
			UserID:    7,
			Timestamp: time.Now(),
		})
		require.NoError(t, err)
		require.Equal(t, []string{"first:ev-1", "second:ev-1"}, seen)
	})

	t.Run("other event types are not delivered", func(t *testing.T) {
		t.Parallel()
		dispatcher := NewInMemoryDispatcher()

		called := false
		dispatcher.Subscribe(EventUserRegistered, func(context.Context, Event) error {
			called = true
			return nil
		})

		err := dispatcher.Publish(context.Background(), Event{ID: "ev-2", Type: EventUserLoggedOut})
		require.NoError(t, err)
		require.False(t, called)
	})

	t.Run("a failing handler does not block the rest", func(t *testing.T) {
		t.Parallel()
		dispatcher := NewInMemoryDispatcher()

		var reached bool
		dispatcher.Subscribe(EventTokenRefreshed, func(context.Context, Event) error {
			return errors.New("boom")
		})
		dispatcher.Subscribe(EventTokenRefreshed, func(context.Context, Event) error {
			reached = true
			return nil
		})

		err := dispatcher.Publish(context.Background(), Event{ID: "ev-3", Type: EventTokenRefreshed})
		require.NoError(t, err)
		require.True(t, reached)
	})

	t.Run("publish with no subscribers is a no-op", func(t *testing.T) {
		t.Parallel()
		dispatcher := NewInMemoryDispatcher()
		require.NoError(t, dispatcher.Publish(context.Background(), Event{ID: "ev-4", Type: EventResumeUploaded}))
	})
}
