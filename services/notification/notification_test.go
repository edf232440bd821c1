package notification

import (
	"context"
	"testing"

	"resonance/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct{ sent []Message }

func (r *recordingNotifier) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestInlineDispatcher(t *testing.T) {
	rec := &recordingNotifier{}
	d := InlineDispatcher{Notifier: rec}

	require.NoError(t, d.Dispatch(context.Background(), VerificationMessage("a@b.c", "123456")))
	require.Len(t, rec.sent, 1)
	assert.Equal(t, KindVerifyEmail, rec.sent[0].Kind)
	assert.Contains(t, rec.sent[0].Body, "123456")

	assert.Error(t, InlineDispatcher{}.Dispatch(context.Background(), Message{}))
}

func TestNewEnquiryMessage(t *testing.T) {
	msg := NewEnquiryMessage("studio@example.com", models.Enquiry{
		ID: "e1", FullName: "Asha", Email: "asha@example.com", Phone: "999",
		SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00", SlotID: "s1",
	})
	assert.Equal(t, "studio@example.com", msg.To)
	assert.Equal(t, "New discovery enquiry", msg.Subject)
	assert.Contains(t, msg.Body, "on 2026-04-07 at 09:00")
	assert.Equal(t, "s1", msg.Data["slotId"])
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "INR 1234.50", FormatAmount(123450, "inr"))
	assert.Equal(t, "USD 0.05", FormatAmount(5, "usd"))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := LogNotifier{Logger: zap.New(core)}

	require.NoError(t, n.Send(context.Background(), LoginOTPMessage("a@b.c", "654321")))
	require.Equal(t, 1, logs.FilterMessage("Notification delivered").Len())

	require.NoError(t, n.Send(context.Background(), Message{Kind: KindNewEnquiry}))
	assert.Equal(t, 1, logs.FilterMessage("Notification delivered").Len())
}
