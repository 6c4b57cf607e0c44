package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

// SMS is one recorded text message.
type SMS struct {
	Phone string
	Body  string
}

// Notifier records notifications and SMS synchronously.
type Notifier struct {
	mu            sync.Mutex
	notifications []entity.Notification
	sms           []SMS
}

func (n *Notifier) Notify(_ context.Context, v *entity.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, *v)
}

func (n *Notifier) SMS(_ context.Context, phone, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sms = append(n.sms, SMS{Phone: phone, Body: body})
}

func (n *Notifier) Notifications() []entity.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]entity.Notification(nil), n.notifications...)
}

func (n *Notifier) Messages() []SMS {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]SMS(nil), n.sms...)
}

// Audit records audit events. Err makes every Record fail.
type Audit struct {
	mu     sync.Mutex
	events []entity.AuditEvent
	Err    error
}

func (a *Audit) Record(_ context.Context, e entity.AuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.events = append(a.events, e)
	return nil
}

func (a *Audit) Events() []entity.AuditEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]entity.AuditEvent(nil), a.events...)
}

// Index is a fake search index. Search returns Hits.
type Index struct {
	mu      sync.Mutex
	Indexed map[string]string // id -> title
	Removed []string
	Hits    []string
	Err     error
}

func NewIndex() *Index { return &Index{Indexed: map[string]string{}} }

func (x *Index) Index(_ context.Context, d *entity.Design) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.Err != nil {
		return x.Err
	}
	x.Indexed[d.ID] = d.Title
	return nil
}

func (x *Index) Remove(_ context.Context, id string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.Err != nil {
		return x.Err
	}
	delete(x.Indexed, id)
	x.Removed = append(x.Removed, id)
	return nil
}

func (x *Index) Search(_ context.Context, _ string, size int) ([]string, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.Err != nil {
		return nil, x.Err
	}
	hits := x.Hits
	if size > 0 && len(hits) > size {
		hits = hits[:size]
	}
	return append([]string(nil), hits...), nil
}

// Images records uploads and returns a fake public URL.
type Images struct {
	mu      sync.Mutex
	Uploads map[string][]byte
}

func (s *Images) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", errors.New("empty upload")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Uploads == nil {
		s.Uploads = map[string][]byte{}
	}
	s.Uploads[objectPath] = b
	return "https://storage.test/" + objectPath, nil
}

// Publisher records published jobs.
type Publisher struct {
	mu   sync.Mutex
	jobs []any
	Err  error
}

func (p *Publisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *Publisher) Jobs() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.jobs...)
}
