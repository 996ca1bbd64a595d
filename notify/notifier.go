// Package notify is the pluggable boundary where real emergency dispatch
// (telephony, SMS, paging) would be integrated. The default implementations
// log and email; the persisted EmergencyAlert row remains the system of
// record either way.
package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/models"
)

// Notifier pushes an emergency alert to the configured responder set.
// Implementations must be safe to fail: dispatch errors are logged by the
// caller and never fail or roll back the alert row.
type Notifier interface {
	Notify(ctx context.Context, alert models.EmergencyAlert) error
}

// LogNotifier writes the dispatch to the application log only. Used when no
// outbound channel is configured.
type LogNotifier struct{}

// Notify logs the alert
func (LogNotifier) Notify(_ context.Context, alert models.EmergencyAlert) error {
	zap.S().Infow("emergency alert dispatched",
		"emergencyId", alert.EmergencyID,
		"patient", alert.PatientName,
		"hospitalPhone", alert.HospitalPhone,
		"ambulancePhone", alert.AmbulancePhone,
	)
	return nil
}

// EmailNotifier sends the alert to the responder desk via SendGrid
type EmailNotifier struct {
	APIKey    string
	FromEmail string
	ToEmail   string
}

// Notify emails the alert summary to the responder desk
func (n EmailNotifier) Notify(_ context.Context, alert models.EmergencyAlert) error {
	from := mail.NewEmail("Chikitsa Emergency", n.FromEmail)
	to := mail.NewEmail("Responder Desk", n.ToEmail)
	subject := fmt.Sprintf("EMERGENCY: %s (%s)", alert.PatientName, alert.PatientPhone)
	plain := fmt.Sprintf(
		"Patient: %s\nPhone: %s\nSymptoms: %s\nDiagnosis: %s\nHospital: %s\nAmbulance: %s\nEmergency ID: %s",
		alert.PatientName, alert.PatientPhone, alert.Symptoms, alert.Diagnosis,
		alert.HospitalPhone, alert.AmbulancePhone, alert.EmergencyID,
	)
	message := mail.NewSingleEmail(from, subject, to, plain, "")

	client := sendgrid.NewSendClient(n.APIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	zap.S().Infow("emergency alert emailed to responder desk",
		"emergencyId", alert.EmergencyID,
		"status", resp.StatusCode,
	)
	return nil
}
