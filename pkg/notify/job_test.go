package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchJobValidate(t *testing.T) {
	cases := []struct {
		name string
		job  DispatchJob
		want error
	}{
		{"sms", DispatchJob{Channel: ChannelSMS, To: "+15550001111", Text: "hi"}, nil},
		{"templated email", DispatchJob{Channel: ChannelEmail, To: "a@b.c", Template: TemplateNotification}, nil},
		{"raw email", DispatchJob{Channel: ChannelEmail, To: "a@b.c", Subject: "s", HTML: "<p>x</p>"}, nil},
		{"no recipient", DispatchJob{Channel: ChannelSMS, Text: "hi"}, errMissingRecipient},
		{"empty sms", DispatchJob{Channel: ChannelSMS, To: "+15550001111"}, errMissingBody},
		{"email without body", DispatchJob{Channel: ChannelEmail, To: "a@b.c", Subject: "s"}, errMissingBody},
		{"unknown channel", DispatchJob{Channel: "fax", To: "x"}, errUnknownChannel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.job.Validate(), tc.want)
		})
	}
}
