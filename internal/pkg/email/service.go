package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/pandalens/pandalens-api/internal/pkg/money"
)

const (
	templateBookingRequested = "booking_requested"
	templateWelcome          = "welcome"
)

// Config for the email service.
type Config struct {
	SendGrid  SendGridConfig
	Currency  string
	QueueSize int
}

// Service renders templates and sends them from a background worker.
// A nil *Service drops every email, so callers need no feature checks.
type Service struct {
	client    *SendGridClient
	templates map[string]*template.Template
	base      *template.Template
	currency  string
	queue     chan *queuedEmail
	wg        sync.WaitGroup
}

type queuedEmail struct {
	To           string
	ToName       string
	Subject      string
	TemplateName string
	Data         any
}

// BookingRequested is the data shown in the booking confirmation.
type BookingRequested struct {
	Name        string
	Date        string
	StartTime   string
	EndTime     string
	ServiceType string
	TotalPrice  int64 // minor units
}

// NewService creates email service. Returns nil when no API key is set.
func NewService(cfg Config) *Service {
	if cfg.SendGrid.APIKey == "" {
		log.Warn().Msg("SendGrid API key not configured, emails will not be sent")
		return nil
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}

	s := &Service{
		client: NewSendGridClient(cfg.SendGrid),
		templates: map[string]*template.Template{
			templateBookingRequested: template.Must(template.New(templateBookingRequested).Parse(BookingRequestedTemplate)),
			templateWelcome:          template.Must(template.New(templateWelcome).Parse(WelcomeTemplate)),
		},
		base:     template.Must(template.New("base").Parse(BaseTemplate)),
		currency: cfg.Currency,
		queue:    make(chan *queuedEmail, cfg.QueueSize),
	}

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) worker() {
	defer s.wg.Done()

	for email := range s.queue {
		if err := s.send(context.Background(), email); err != nil {
			log.Error().Err(err).
				Str("template", email.TemplateName).
				Msg("Failed to send email")
		}
	}
}

func (s *Service) render(name string, data any) (string, error) {
	var content bytes.Buffer
	if err := s.templates[name].Execute(&content, data); err != nil {
		return "", err
	}

	var html bytes.Buffer
	if err := s.base.Execute(&html, map[string]any{"Content": template.HTML(content.String())}); err != nil {
		return "", err
	}
	return html.String(), nil
}

func (s *Service) send(ctx context.Context, email *queuedEmail) error {
	html, err := s.render(email.TemplateName, email.Data)
	if err != nil {
		return err
	}
	return s.client.Send(ctx, &Message{
		To:          email.To,
		ToName:      email.ToName,
		Subject:     email.Subject,
		HTMLContent: html,
	})
}

func (s *Service) enqueue(email *queuedEmail) {
	if s == nil || email.To == "" {
		return
	}
	select {
	case s.queue <- email:
	default:
		log.Warn().Str("template", email.TemplateName).Msg("Email queue full, dropping email")
	}
}

// SendBookingRequested confirms a booking request to the guest or user.
func (s *Service) SendBookingRequested(to string, data BookingRequested) {
	if s == nil {
		return
	}
	s.enqueue(&queuedEmail{
		To:           to,
		ToName:       data.Name,
		Subject:      "Your booking request on " + data.Date,
		TemplateName: templateBookingRequested,
		Data: map[string]string{
			"Name":        data.Name,
			"Date":        data.Date,
			"StartTime":   data.StartTime,
			"EndTime":     data.EndTime,
			"ServiceType": data.ServiceType,
			"Price":       money.Format(data.TotalPrice, s.currency),
		},
	})
}

// SendWelcome greets a new account.
func (s *Service) SendWelcome(to, name string) {
	s.enqueue(&queuedEmail{
		To:           to,
		ToName:       name,
		Subject:      "Welcome to PandaLens",
		TemplateName: templateWelcome,
		Data:         map[string]string{"Name": name},
	})
}

// Close drains the queue and stops the worker.
func (s *Service) Close() {
	if s == nil {
		return
	}
	close(s.queue)
	s.wg.Wait()
}
