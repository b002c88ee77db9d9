package backend

import (
	"context"

	"expensetracker/internal/amqp"
	"expensetracker/internal/log"
	"expensetracker/internal/store"
)

// Publisher is the part of the AMQP client the notifier needs.
type Publisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
}

// AMQPNotifier forwards store changes to a broker. Publish failures are
// logged and never reach the mutating caller.
type AMQPNotifier struct {
	publisher Publisher
	logger    *log.Logger
}

func NewAMQPNotifier(p Publisher, logger *log.Logger) *AMQPNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &AMQPNotifier{publisher: p, logger: logger.WithComponent(log.ComponentAMQP)}
}

func (n *AMQPNotifier) Notify(ctx context.Context, c store.Change) {
	msg := amqp.NewChangeMessage(string(c.Op), c.IDs, c.Revision)
	if err := n.publisher.PublishChange(ctx, msg); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish change",
			log.FieldError, err,
			"op", msg.Op,
			"revision", msg.Revision)
	}
}
