package notification

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritmodivulga/promo-engine/internal/domain"
)

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(ctx context.Context, n domain.Notification) error { return f.err }

func sample(recipient, title string) domain.Notification {
	return domain.Notification{
		Recipient: recipient,
		Title:     title,
		Message:   "Vídeo 1 do pacote de Ana foi postado",
		Severity:  domain.SeverityInfo,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestMulti_DeliversToAllAndJoinsErrors(t *testing.T) {
	first := &Recorder{}
	second := &Recorder{}
	boom := errors.New("smtp down")

	err := Multi{first, failingNotifier{boom}, second}.Notify(context.Background(), sample("2", "Vídeo postado"))

	assert.True(t, errors.Is(err, boom))
	assert.Len(t, first.Sent(), 1)
	assert.Len(t, second.Sent(), 1)
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	require.NoError(t, NewLogNotifier(logger).Notify(context.Background(), sample("admin", "Pacote concluído")))

	assert.Contains(t, buf.String(), `"recipient":"admin"`)
	assert.Contains(t, buf.String(), `"title":"Pacote concluído"`)
}

func TestRedisNotifier_InboxAndPublish(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	sub := client.Subscribe(ctx, ChannelKey("2"))
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	notifier := NewRedisNotifier(client)
	require.NoError(t, notifier.Notify(ctx, sample("2", "first")))
	require.NoError(t, notifier.Notify(ctx, sample("2", "second")))

	inbox, err := notifier.Inbox(ctx, "2", 10)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "second", inbox[0].Title, "newest first")
	assert.Equal(t, domain.SeverityInfo, inbox[1].Severity)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Contains(t, msg.Payload, `"title":"first"`)

	empty, err := notifier.Inbox(ctx, "admin", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisNotifier_InboxIsCapped(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	notifier := NewRedisNotifier(client)
	for i := 0; i < inboxLimit+5; i++ {
		require.NoError(t, notifier.Notify(ctx, sample("admin", "n")))
	}

	n, err := client.LLen(ctx, InboxKey("admin")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(inboxLimit), n)
}

func TestEmailNotifier_SkipsUnknownRecipients(t *testing.T) {
	notifier := NewEmailNotifier(SMTPConfig{Host: "smtp.invalid", Port: 587, From: "noreply@example.com"}, map[string]string{
		"admin": "admin@example.com",
	})

	assert.NoError(t, notifier.Notify(context.Background(), sample("2", "Vídeo postado")))
}

func TestEmailNotifier_BuildsMessage(t *testing.T) {
	notifier := NewEmailNotifier(SMTPConfig{From: "noreply@example.com"}, nil)

	msg, err := notifier.message("admin@example.com", sample("admin", "Pacote <pronto>"))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "admin@example.com")
	assert.Contains(t, buf.String(), "Pacote &lt;pronto&gt;")

	_, err = notifier.message("not an address", sample("admin", "x"))
	assert.Error(t, err)
}

type blockingNotifier struct {
	started chan struct{}
	got     chan error
}

func (b blockingNotifier) Notify(ctx context.Context, n domain.Notification) error {
	close(b.started)
	<-ctx.Done()
	b.got <- ctx.Err()
	return ctx.Err()
}

func TestAsync_DoesNotBlockTheCaller(t *testing.T) {
	var logs bytes.Buffer
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "failed_total"})
	next := blockingNotifier{started: make(chan struct{}), got: make(chan error, 1)}
	async := NewAsync(next, 50*time.Millisecond, slog.New(slog.NewJSONHandler(&logs, nil)), failed)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, async.Notify(ctx, sample("admin", "Pacote Concluído")))
	<-next.started
	// the caller going away must not abort the send
	cancel()

	async.Wait()
	assert.ErrorIs(t, <-next.got, context.DeadlineExceeded)
	assert.Equal(t, 1.0, testutil.ToFloat64(failed))
	assert.Contains(t, logs.String(), "notification not delivered")
}

func TestAsync_Delivers(t *testing.T) {
	recorder := &Recorder{}
	failed := prometheus.NewCounter(prometheus.CounterOpts{Name: "failed_total"})
	async := NewAsync(recorder, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), failed)

	require.NoError(t, async.Notify(context.Background(), sample("2", "Vídeo Postado")))
	require.NoError(t, async.Notify(context.Background(), sample("admin", "Pacote Concluído")))
	async.Wait()

	assert.Len(t, recorder.Sent(), 2)
	assert.Equal(t, 0.0, testutil.ToFloat64(failed))
}
