package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resonance/services/notification"

	"github.com/hibiken/asynq"
)

const TypeNotificationSend = "notification:send"

func NewNotificationTask(msg notification.Message) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationSend, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
		asynq.Queue("default"),
	}
	return task, opts, nil
}

// ParseNotificationTask decodes the payload written by NewNotificationTask.
func ParseNotificationTask(task *asynq.Task) (notification.Message, error) {
	var msg notification.Message
	if err := json.Unmarshal(task.Payload(), &msg); err != nil {
		return notification.Message{}, fmt.Errorf("invalid notification payload: %w", err)
	}
	return msg, nil
}

// Enqueuer is the part of *asynq.Client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueDispatcher defers delivery to the notification worker.
type QueueDispatcher struct {
	Client Enqueuer
}

func (d QueueDispatcher) Dispatch(ctx context.Context, msg notification.Message) error {
	task, opts, err := NewNotificationTask(msg)
	if err != nil {
		return err
	}
	if _, err := d.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s notification: %w", msg.Kind, err)
	}
	return nil
}
