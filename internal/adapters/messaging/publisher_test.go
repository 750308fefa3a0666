package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"holidayplanner/internal/domain"
	"holidayplanner/internal/requestctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: "holidayplanner.events",
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      func() time.Time { return time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC) },
	}
}

func TestPublisher_PublishExperienceCreated(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch)
	evt := domain.ExperienceCreatedEvent{
		ExperienceID: 11,
		OrganiserID:  7,
		Name:         "Hike",
		Date:         time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC),
		Location:     "Alpen",
	}

	ctx := requestctx.WithRequestID(context.Background(), "req-1")
	require.NoError(t, p.PublishExperienceCreated(ctx, evt))

	assert.Equal(t, "holidayplanner.events", ch.exchange)
	assert.Equal(t, RoutingKeyExperienceCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)
	assert.Equal(t, "req-1", ch.msg.Headers["X-Request-ID"])

	var got domain.ExperienceCreatedEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, int64(11), got.ExperienceID)
	assert.Equal(t, int64(7), got.OrganiserID)
	assert.True(t, evt.Date.Equal(got.Date))
}

func TestPublisher_NoRequestIDNoHeaders(t *testing.T) {
	ch := &fakeChannel{}
	require.NoError(t, newTestPublisher(ch).PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 1}))
	assert.Nil(t, ch.msg.Headers)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}
	err := newTestPublisher(ch).PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestPublisher_RedialsAfterClosedChannel(t *testing.T) {
	stale := &fakeChannel{err: amqp.ErrClosed}
	fresh := &fakeChannel{}
	p := newTestPublisher(stale)
	dials := 0
	p.connect = func() (*amqp.Connection, channel, error) {
		dials++
		return nil, fresh, nil
	}

	require.NoError(t, p.PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 4}))
	assert.Equal(t, 1, dials)
	assert.True(t, stale.closed)
	assert.Equal(t, RoutingKeyExperienceCreated, fresh.key)

	require.NoError(t, p.PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 5}))
	assert.Equal(t, 1, dials)
}

func TestPublisher_RedialFailureIsReturned(t *testing.T) {
	p := newTestPublisher(&fakeChannel{err: amqp.ErrClosed})
	p.connect = func() (*amqp.Connection, channel, error) {
		return nil, nil, errors.New("connection refused")
	}

	err := p.PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPublisher_OtherErrorsAreNotRetried(t *testing.T) {
	ch := &fakeChannel{err: errors.New("precondition failed")}
	p := newTestPublisher(ch)
	dials := 0
	p.connect = func() (*amqp.Connection, channel, error) {
		dials++
		return nil, &fakeChannel{}, nil
	}

	require.Error(t, p.PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{ExperienceID: 4}))
	assert.Zero(t, dials)
	assert.False(t, ch.closed)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	newTestPublisher(ch).Close()
	assert.True(t, ch.closed)
}

func TestNoopPublisher(t *testing.T) {
	p := NewNoopPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, p.PublishExperienceCreated(context.Background(), domain.ExperienceCreatedEvent{}))
}
