// Package rmqrpc is a small RPC server over AMQP: requests arrive on one
// queue with the logical pattern in the message Type property, the reply
// is published to the request's reply-to queue carrying its correlation
// id. This mirrors the message-pattern transport of the upstream callers.
package rmqrpc

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-directory-service/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Handler turns a request body into an encoded reply. It must not return
// a nil reply for a non-nil error; transport-level failures are logged
// and the message is dropped without a reply.
type Handler func(ctx context.Context, pattern string, body []byte) ([]byte, error)

type Server struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
	handler    Handler
}

func New(cfg config.MQ, logger *zap.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: logger,
	}
}

func (s *Server) SetHandler(h Handler) { s.handler = h }

func (s *Server) Connect(dsn string) error {
	var err error
	s.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	s.chConsume, err = s.conn.Channel()
	if err != nil {
		_ = s.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	s.log.Info("rabbitmq rpc server connected successfully")

	return nil
}

func (s *Server) Init() error {
	var err error
	if _, err = s.chConsume.QueueDeclare(
		s.cfg.RPCQueue,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	if err = s.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	s.chDelivery, err = s.chConsume.Consume(
		s.cfg.RPCQueue,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (s *Server) Worker(ctx context.Context) {
	s.log.Info("starting rpc worker")

	defer func() {
		s.log.Info("rpc worker gracefully stopped")
	}()

	for {
		select {
		case msg := <-s.chDelivery:
			if err := s.serve(ctx, msg); err != nil {
				// alert
				s.log.Error("rpc serve error", zap.Error(err))
			}
		case <-ctx.Done():
			s.chConsume.Close()
			return
		}
	}
}

func (s *Server) serve(ctx context.Context, msg amqp091.Delivery) error {
	if s.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	reply, err := s.handler(ctx, msg.Type, msg.Body)
	if err != nil {
		return fmt.Errorf("handle %q: %w", msg.Type, err)
	}

	// fire-and-forget messages carry no reply-to
	if msg.ReplyTo == "" {
		return nil
	}

	return s.chConsume.PublishWithContext(
		ctx,
		"",
		msg.ReplyTo,
		false,
		false,
		Reply(msg.CorrelationId, reply),
	)
}

// Reply builds the response publishing for a consumed request.
func Reply(correlationID string, body []byte) amqp091.Publishing {
	return amqp091.Publishing{
		ContentType:   "application/json",
		CorrelationId: correlationID,
		Body:          body,
	}
}
