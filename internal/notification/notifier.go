package notification

import (
	"FinanceTracker/internal/entity"
	"FinanceTracker/pkg/amqp"
	contextPkg "FinanceTracker/pkg/context"
	"FinanceTracker/pkg/smtp"
	"context"
	"errors"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// Notifier delivers a budget or goal event. Delivery is best effort: callers
// log a returned error and carry on.
type Notifier interface {
	Notify(ctx context.Context, n entity.Notification) error
}

type logNotifier struct {
	log *logrus.Logger
}

func NewLog(log *logrus.Logger) Notifier {
	return &logNotifier{log: log}
}

func (l *logNotifier) Notify(_ context.Context, n entity.Notification) error {
	l.log.WithFields(logrus.Fields{
		"user_id": n.UserID,
		"kind":    n.Kind,
	}).Info(n.Message)
	return nil
}

type EmailNotifier struct {
	log    *logrus.Logger
	mailer smtp.ItfSmtp
	wg     sync.WaitGroup
}

// NewEmail returns a notifier that mails in the background. Notify never
// waits on the SMTP server; delivery failures are logged.
func NewEmail(log *logrus.Logger, mailer smtp.ItfSmtp) *EmailNotifier {
	return &EmailNotifier{log: log, mailer: mailer}
}

// Notify skips notifications without a recipient address.
func (e *EmailNotifier) Notify(ctx context.Context, n entity.Notification) error {
	if n.Recipient == "" {
		return nil
	}

	requestID := contextPkg.GetRequestID(ctx)
	sendCtx := context.WithoutCancel(ctx)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if err := e.mailer.SendMail(sendCtx, n.Recipient, n.Subject, n.Message); err != nil {
			e.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    n.UserID,
				"kind":       n.Kind,
				"error":      err.Error(),
			}).Warn("Failed to send notification email")
		}
	}()
	return nil
}

// Wait blocks until every email started so far has finished or ctx is done.
func (e *EmailNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type brokerNotifier struct {
	publisher amqp.IPublisher
}

func NewBroker(publisher amqp.IPublisher) Notifier {
	return &brokerNotifier{publisher: publisher}
}

func (b *brokerNotifier) Notify(ctx context.Context, n entity.Notification) error {
	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(n)
	if err != nil {
		return err
	}
	return b.publisher.Publish(ctx, "", body)
}

type multiNotifier struct {
	notifiers []Notifier
}

// Multi sends every notification to all of notifiers, even when some fail.
func Multi(notifiers ...Notifier) Notifier {
	return &multiNotifier{notifiers: notifiers}
}

func (m *multiNotifier) Notify(ctx context.Context, n entity.Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
