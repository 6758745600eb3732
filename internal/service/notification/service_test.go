package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/dentalcare/clinic-api/internal/model"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

type fakeMailer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func fixtures() (*model.ClinicSettings, *model.Patient, *model.Appointment) {
	scheduled, _ := model.ParseWallClock("2026-09-15 14:30:00")
	settings := &model.ClinicSettings{Name: "Downtown Dental"}
	patient := &model.Patient{Name: "Maria Silva", Email: "maria@example.com"}
	appointment := &model.Appointment{ScheduledAt: scheduled}
	appointment.ID = uuid.New()
	return settings, patient, appointment
}

func TestComposeReplacesAllTokens(t *testing.T) {
	settings, patient, appointment := fixtures()

	body := Compose("{patient} / {clinic} / {date} / {time}", settings, patient, appointment)
	assert.Equal(t, "Maria Silva / Downtown Dental / 15/09/2026 / 14:30", body)
}

func TestComposeFallsBackToDefaultTemplate(t *testing.T) {
	settings, patient, appointment := fixtures()

	body := Compose("", settings, patient, appointment)
	assert.Contains(t, body, "Maria Silva")
	assert.Contains(t, body, "Downtown Dental")
	assert.Contains(t, body, "15/09/2026")
	assert.Contains(t, body, "14:30")
	assert.NotContains(t, body, "{")
}

func TestSendReminder(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewService(mailer, "clinic@example.com")
	settings, patient, appointment := fixtures()

	body, err := svc.SendReminder(context.Background(), settings, patient, appointment)
	require.NoError(t, err)
	assert.Contains(t, body, "Maria Silva")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"maria@example.com"}, mailer.sent[0].GetHeader("To"))
}

func TestSendReminderRequiresPatientEmail(t *testing.T) {
	svc := NewService(&fakeMailer{}, "clinic@example.com")
	settings, patient, appointment := fixtures()
	patient.Email = ""

	_, err := svc.SendReminder(context.Background(), settings, patient, appointment)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSendReminderSurfacesDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewService(mailer, "clinic@example.com")
	settings, patient, appointment := fixtures()

	_, err := svc.SendReminder(context.Background(), settings, patient, appointment)
	require.Error(t, err)
	assert.ErrorContains(t, err, "smtp down")
}
