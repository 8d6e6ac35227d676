package notification

import (
	"FinanceTracker/internal/entity"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	err     error
	release chan struct{}
}

func (f *fakeMailer) SendMail(_ context.Context, to string, subject string, body string) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return f.err
}

func (f *fakeMailer) delivered() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

func wait(t *testing.T, e *EmailNotifier) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, e.Wait(ctx))
}

type fakePublisher struct {
	bodies [][]byte
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, body []byte) error {
	f.bodies = append(f.bodies, body)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

func sample() entity.Notification {
	return entity.Notification{
		UserID:    7,
		Kind:      entity.NotificationBudgetExceeded,
		Subject:   "Budget exceeded",
		Message:   "Budget 3 exceeded: spent 100, limit 100",
		Recipient: "alice@example.com",
		CreatedAt: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestLogNotifier(t *testing.T) {
	log, hook := test.NewNullLogger()

	require.NoError(t, NewLog(log).Notify(context.Background(), sample()))

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, sample().Message, hook.LastEntry().Message)
	assert.Equal(t, int64(7), hook.LastEntry().Data["user_id"])
}

func TestEmailNotifier(t *testing.T) {
	log, _ := test.NewNullLogger()
	mailer := &fakeMailer{}
	notifier := NewEmail(log, mailer)

	require.NoError(t, notifier.Notify(context.Background(), sample()))
	wait(t, notifier)
	require.Len(t, mailer.delivered(), 1)
	assert.Equal(t, sentMail{to: "alice@example.com", subject: "Budget exceeded", body: sample().Message}, mailer.delivered()[0])

	anonymous := sample()
	anonymous.Recipient = ""
	require.NoError(t, notifier.Notify(context.Background(), anonymous))
	wait(t, notifier)
	assert.Len(t, mailer.delivered(), 1)
}

func TestEmailNotifierDoesNotWaitForDelivery(t *testing.T) {
	log, hook := test.NewNullLogger()
	mailer := &fakeMailer{err: errors.New("connection timed out"), release: make(chan struct{})}
	notifier := NewEmail(log, mailer)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, notifier.Notify(ctx, sample()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Empty(t, mailer.delivered())

	pending, cancelPending := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelPending()
	assert.ErrorIs(t, notifier.Wait(pending), context.DeadlineExceeded)

	close(mailer.release)
	wait(t, notifier)
	assert.Len(t, mailer.delivered(), 1)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "connection timed out", hook.LastEntry().Data["error"])
}

func TestBrokerNotifier(t *testing.T) {
	publisher := &fakePublisher{}

	require.NoError(t, NewBroker(publisher).Notify(context.Background(), sample()))
	require.Len(t, publisher.bodies, 1)

	var decoded entity.Notification
	require.NoError(t, jsoniter.Unmarshal(publisher.bodies[0], &decoded))
	assert.Equal(t, sample(), decoded)
	assert.Equal(t, "BUDGET_EXCEEDED", jsoniter.Get(publisher.bodies[0], "kind").ToString())
}

func TestMultiContinuesAfterFailure(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	failing := &fakePublisher{err: errors.New("broker down")}
	mailer := &fakeMailer{}
	email := NewEmail(log, mailer)

	err := Multi(NewBroker(failing), email, NewLog(log)).Notify(context.Background(), sample())
	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, failing.bodies, 1)
	wait(t, email)
	assert.Len(t, mailer.delivered(), 1)

	assert.NoError(t, Multi().Notify(context.Background(), sample()))
}
