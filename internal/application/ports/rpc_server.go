package ports

import (
	"context"

	"user-directory-service/pkg/rmqrpc"
)

type RPCServer interface {
	Connect(dsn string) error
	Init() error
	SetHandler(h rmqrpc.Handler)
	Worker(ctx context.Context)
}
