package notification

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dentalcare/clinic-api/internal/model"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

// Mailer is satisfied by *gomail.Dialer.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Service struct {
	mailer Mailer
	from   string
}

func NewService(mailer Mailer, from string) *Service {
	return &Service{
		mailer: mailer,
		from:   from,
	}
}

// Compose renders the account's reminder template against an appointment
// and its patient. Supported tokens: {patient}, {clinic}, {date}, {time}.
func Compose(template string, settings *model.ClinicSettings, patient *model.Patient, appointment *model.Appointment) string {
	if template == "" {
		template = model.DefaultReminderTemplate
	}
	replacer := strings.NewReplacer(
		"{patient}", patient.Name,
		"{clinic}", settings.Name,
		"{date}", appointment.ScheduledAt.Format("02/01/2006"),
		"{time}", appointment.ScheduledAt.Format("15:04"),
	)
	return replacer.Replace(template)
}

// SendReminder composes and delivers an appointment reminder to the
// patient's email address. Delivery failures surface to the caller; the
// appointment itself is untouched either way.
func (s *Service) SendReminder(ctx context.Context, settings *model.ClinicSettings, patient *model.Patient, appointment *model.Appointment) (string, error) {
	if patient.Email == "" {
		return "", apperrors.NewValidation("patient has no email address", nil)
	}

	body := Compose(settings.ReminderTemplate, settings, patient, appointment)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", patient.Email)
	m.SetHeader("Subject", "Appointment reminder")
	m.SetBody("text/plain", body)

	if err := s.mailer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send reminder: %w", err)
	}
	return body, nil
}
