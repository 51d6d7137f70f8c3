package rmqrpc

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-directory-service/config"
)

func TestConnect_InvalidDSN(t *testing.T) {
	s := New(config.MQ{}, zap.NewNop())

	err := s.Connect("amqp://bad:://dsn")
	require.Error(t, err)
	require.Nil(t, s.conn)
	require.Nil(t, s.chConsume)
}

func TestServe_NoHandler(t *testing.T) {
	s := New(config.MQ{}, zap.NewNop())

	err := s.serve(context.Background(), amqp091.Delivery{Type: "users.health"})
	require.Error(t, err)
}

func TestServe_HandlerErrorPropagates(t *testing.T) {
	s := New(config.MQ{}, zap.NewNop())
	s.SetHandler(func(_ context.Context, pattern string, _ []byte) ([]byte, error) {
		return nil, errors.New("boom")
	})

	err := s.serve(context.Background(), amqp091.Delivery{Type: "users.create", Body: []byte(`{}`)})
	require.Error(t, err)
	require.Contains(t, err.Error(), `handle "users.create"`)
}

func TestServe_FireAndForgetSkipsReply(t *testing.T) {
	s := New(config.MQ{}, zap.NewNop())

	var gotPattern string
	var gotBody []byte
	s.SetHandler(func(_ context.Context, pattern string, body []byte) ([]byte, error) {
		gotPattern = pattern
		gotBody = body
		return []byte(`{"status":200}`), nil
	})

	// no ReplyTo: the handler runs but nothing is published
	err := s.serve(context.Background(), amqp091.Delivery{
		Type: "users.remove",
		Body: []byte(`{"id":"x"}`),
	})
	require.NoError(t, err)
	require.Equal(t, "users.remove", gotPattern)
	require.JSONEq(t, `{"id":"x"}`, string(gotBody))
}

func TestReply_Shape(t *testing.T) {
	pub := Reply("corr-42", []byte(`{"status":200}`))

	require.Equal(t, "application/json", pub.ContentType)
	require.Equal(t, "corr-42", pub.CorrelationId)
	require.JSONEq(t, `{"status":200}`, string(pub.Body))
}
