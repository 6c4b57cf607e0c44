package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/style-gallery-api/config"
	mailtpl "github.com/oksasatya/style-gallery-api/pkg/mailer/templates"
	"github.com/oksasatya/style-gallery-api/pkg/notify"
)

type emailSender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

type textSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// errPermanent marks jobs that can never succeed and must not be requeued.
var errPermanent = errors.New("permanent failure")

// jobHandler delivers one queued job. A nil sender disables its channel.
type jobHandler struct {
	email  emailSender
	sms    textSender
	brand  map[string]any
	logger *logrus.Logger
}

func brandData(cfg *config.Config) map[string]any {
	return map[string]any{
		"AppName":        cfg.AppName,
		"CompanyName":    cfg.CompanyName,
		"CompanyAddress": cfg.CompanyAddress,
		"LogoURL":        cfg.LogoURL,
		"SupportURL":     cfg.SupportURL,
		"UnsubscribeURL": cfg.UnsubscribeURL,
	}
}

// handle decodes and sends body. Errors wrapping errPermanent mean the
// message should be dropped; other errors are worth a retry.
func (h *jobHandler) handle(ctx context.Context, body []byte) error {
	var job notify.DispatchJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", errPermanent, err)
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errPermanent, err)
	}

	switch job.Channel {
	case notify.ChannelSMS:
		if h.sms == nil {
			return fmt.Errorf("%w: sms channel disabled", errPermanent)
		}
		sid, err := h.sms.Send(ctx, job.To, job.Text)
		if err != nil {
			return err
		}
		h.logger.WithField("sid", sid).Debug("sms sent")
		return nil
	default:
		if h.email == nil {
			return fmt.Errorf("%w: email channel disabled", errPermanent)
		}
		subject, text, html := job.Subject, job.Text, job.HTML
		if job.Template != "" {
			data := make(map[string]any, len(h.brand)+len(job.Data))
			for k, v := range h.brand {
				data[k] = v
			}
			for k, v := range job.Data {
				data[k] = v
			}
			var err error
			if subject, text, html, err = mailtpl.Render(job.Template, data); err != nil {
				return fmt.Errorf("%w: render %s: %v", errPermanent, job.Template, err)
			}
		}
		return h.email.Send(ctx, job.To, subject, text, html)
	}
}
