package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	err      error
	deadline bool
	calls    int
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	f.calls++
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestShutdownAll(t *testing.T) {
	t.Run("Success_AllStopped", func(t *testing.T) {
		api, metricsServer := &fakeServer{}, &fakeServer{}

		err := shutdownAll(map[string]stoppable{"api server": api, "metrics server": metricsServer}, time.Second)

		require.NoError(t, err)
		assert.Equal(t, 1, api.calls)
		assert.Equal(t, 1, metricsServer.calls)
		assert.True(t, api.deadline)
	})

	t.Run("Error_JoinsFailures", func(t *testing.T) {
		api := &fakeServer{err: errors.New("listener busy")}
		metricsServer := &fakeServer{}

		err := shutdownAll(map[string]stoppable{"api server": api, "metrics server": metricsServer}, time.Second)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "api server shutdown: listener busy")
		assert.Equal(t, 1, metricsServer.calls)
	})
}

func TestRunServer_InvalidConfiguration(t *testing.T) {
	t.Setenv("CREDENTIAL_STORE", "memcached")

	err := RunServer(context.Background(), "test")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
