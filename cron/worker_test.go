package cron

import (
	"context"
	"errors"
	"testing"

	"resonance/services/notification"
	"resonance/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubNotifier struct {
	got []notification.Message
	err error
}

func (s *stubNotifier) Send(_ context.Context, msg notification.Message) error {
	s.got = append(s.got, msg)
	return s.err
}

func TestHandleNotificationTaskDelivers(t *testing.T) {
	n := &stubNotifier{}
	task, _, err := tasks.NewNotificationTask(notification.VerificationMessage("a@b.c", "123456"))
	require.NoError(t, err)

	require.NoError(t, HandleNotificationTask(n, zap.NewNop())(context.Background(), task))
	require.Len(t, n.got, 1)
	assert.Equal(t, "a@b.c", n.got[0].To)
}

func TestHandleNotificationTaskRetriesDeliveryErrors(t *testing.T) {
	n := &stubNotifier{err: errors.New("smtp timeout")}
	task, _, err := tasks.NewNotificationTask(notification.Message{Kind: notification.KindLoginOTP, To: "a@b.c"})
	require.NoError(t, err)

	err = HandleNotificationTask(n, zap.NewNop())(context.Background(), task)
	assert.EqualError(t, err, "smtp timeout")
}

func TestHandleNotificationTaskSkipsMalformedPayload(t *testing.T) {
	err := HandleNotificationTask(&stubNotifier{}, zap.NewNop())(context.Background(), asynq.NewTask(tasks.TypeNotificationSend, []byte("nope")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
