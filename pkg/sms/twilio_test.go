package sms

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeAPI struct {
	got *api.CreateMessageParams
	err error
}

func (f *fakeAPI) CreateMessage(p *api.CreateMessageParams) (*api.ApiV2010Message, error) {
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &api.ApiV2010Message{Sid: &sid}, nil
}

func TestNewTwilioRequiresCredentials(t *testing.T) {
	_, err := NewTwilio("", "token", "+15550000000")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendBuildsParams(t *testing.T) {
	f := &fakeAPI{}
	tw := &Twilio{From: "+15550000000", api: f}

	sid, err := tw.Send(context.Background(), " +15551234567 ", `Ana liked your design "Linen"`)
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)
	require.NotNil(t, f.got)
	assert.Equal(t, "+15551234567", *f.got.To)
	assert.Equal(t, "+15550000000", *f.got.From)
	assert.Equal(t, `Ana liked your design "Linen"`, *f.got.Body)
}

func TestSendPropagatesErrors(t *testing.T) {
	tw := &Twilio{From: "+1", api: &fakeAPI{err: errors.New("bad number")}}
	_, err := tw.Send(context.Background(), "+15551234567", "hi")
	assert.EqualError(t, err, "bad number")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tw.Send(ctx, "+15551234567", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("  short ", 10))
	long := strings.Repeat("é", 400)
	got := Truncate(long, MaxBodyLength)
	assert.Equal(t, MaxBodyLength, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}
