package notify

// Channel selects the transport a DispatchJob is sent through.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// TemplateNotification renders an in-app notification as an email.
const TemplateNotification = "notification"

// DispatchJob is the JSON payload put on the RabbitMQ queue for the
// notification worker.
// For email, either Template+Data or Subject with Text/HTML is set.
// For SMS, Text is the message body and To is an E.164 phone number.
type DispatchJob struct {
	Channel  Channel        `json:"channel"`
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Validate reports whether the job carries enough to be sent.
func (j DispatchJob) Validate() error {
	if j.To == "" {
		return errMissingRecipient
	}
	switch j.Channel {
	case ChannelSMS:
		if j.Text == "" {
			return errMissingBody
		}
	case ChannelEmail:
		if j.Template == "" && (j.Subject == "" || (j.Text == "" && j.HTML == "")) {
			return errMissingBody
		}
	default:
		return errUnknownChannel
	}
	return nil
}
