package scheduler

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/quotesync/internal/client/conflicts"
	"github.com/iudanet/quotesync/internal/client/sync"
)

func TestMailbox_PostAfterCloseIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	observer := &ObserverMock{
		OnPassFunc:       func(*sync.PassResult, conflicts.State) {},
		OnResolutionFunc: func(*sync.ResolutionResult, conflicts.State) {},
	}
	m := newMailbox(logger)
	m.subscribe(observer)

	m.post(event{pass: &sync.PassResult{}})
	m.close()
	m.post(event{resolution: &sync.ResolutionResult{}})
	m.close()

	assert.Len(t, observer.OnPassCalls(), 1, "events posted before close are delivered")
	assert.Empty(t, observer.OnResolutionCalls())
	assert.Contains(t, buf.String(), "Observer event dropped after close")
	assert.Contains(t, buf.String(), "kind=resolution")
}
