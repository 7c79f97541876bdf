package api

import (
	"context"
	"errors"

	"github.com/iudanet/quotesync/internal/models"
	"github.com/iudanet/quotesync/pkg/api"
)

var (
	// ErrUnavailable wraps every failure talking to the remote replica:
	// transport errors, timeouts and non-2xx responses.
	ErrUnavailable = errors.New("remote unavailable")

	// ErrUnauthorized is returned together with ErrUnavailable on 401/403
	ErrUnauthorized = errors.New("unauthorized")
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the remote replica as seen by the sync service
type ClientAPI interface {
	// FetchAll returns the full remote collection
	FetchAll(ctx context.Context) ([]models.Record, error)

	// Upsert creates or replaces one record on the remote; idempotent by ID
	Upsert(ctx context.Context, record models.Record) (*api.Ack, error)
}
