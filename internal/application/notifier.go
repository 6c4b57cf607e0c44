package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

// NotificationSink persists and delivers a notification.
type NotificationSink interface {
	Deliver(ctx context.Context, n *entity.Notification) error
}

// SMSSender hands a text message to an external gateway.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, body string) error
}

// Notifier is the best-effort side channel of the social engine. Calls
// return immediately; failures are logged and counted, never returned.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification)
	SMS(ctx context.Context, phone, body string)
}

// Dispatcher runs every delivery on its own goroutine with its own timeout,
// detached from the request context.
type Dispatcher struct {
	sink    NotificationSink
	sms     SMSSender
	logger  *logrus.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(sink NotificationSink, sms SMSSender, logger *logrus.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{sink: sink, sms: sms, logger: logger, timeout: timeout}
}

func (d *Dispatcher) Notify(ctx context.Context, n *entity.Notification) {
	if d == nil || d.sink == nil || n == nil {
		return
	}
	d.run(ctx, channelNotification, logrus.Fields{"type": n.Type, "user_id": n.UserID}, func(c context.Context) error {
		return d.sink.Deliver(c, n)
	})
}

func (d *Dispatcher) SMS(ctx context.Context, phone, body string) {
	if d == nil || d.sms == nil || phone == "" {
		return
	}
	d.run(ctx, channelSMS, nil, func(c context.Context) error {
		return d.sms.SendSMS(c, phone, body)
	})
}

// Wait blocks until all in-flight deliveries have finished.
func (d *Dispatcher) Wait() {
	if d != nil {
		d.wg.Wait()
	}
}

func (d *Dispatcher) run(ctx context.Context, channel string, fields logrus.Fields, fn func(context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		c, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		timer := prometheus.NewTimer(dispatchDuration.WithLabelValues(channel))
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic: %v", r)
				}
			}()
			return fn(c)
		}()
		timer.ObserveDuration()
		if err != nil {
			dispatchTotal.WithLabelValues(channel, resultFailed).Inc()
			if d.logger != nil {
				d.logger.WithError(err).WithFields(fields).Warnf("%s dispatch failed", channel)
			}
			return
		}
		dispatchTotal.WithLabelValues(channel, resultOK).Inc()
	}()
}
