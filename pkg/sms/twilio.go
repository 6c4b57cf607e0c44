package sms

import (
	"context"
	"errors"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

// MaxBodyLength is the longest body sent; longer texts are cut with an
// ellipsis so one notification never fans out into many segments.
const MaxBodyLength = 320

var ErrNotConfigured = errors.New("sms: twilio not configured")

// messageCreator is the slice of the Twilio API the sender uses.
type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

// Twilio sends text messages through the Twilio REST API.
type Twilio struct {
	From string
	api  messageCreator
}

func NewTwilio(accountSID, authToken, from string) (*Twilio, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, ErrNotConfigured
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Twilio{From: from, api: client.Api}, nil
}

// Send delivers body to the E.164 number to and returns the message SID.
// The Twilio client does not take a context, so ctx is only checked before
// the call.
func (t *Twilio) Send(ctx context.Context, to, body string) (string, error) {
	if t == nil || t.api == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return "", errors.New("sms: empty recipient")
	}

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.From)
	params.SetBody(Truncate(body, MaxBodyLength))

	msg, err := t.api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if msg != nil && msg.Sid != nil {
		return *msg.Sid, nil
	}
	return "", nil
}

// Truncate shortens s to at most n runes.
func Truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
