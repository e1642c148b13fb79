package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/dtroode/trueconf-console/internal/config"
	"github.com/dtroode/trueconf-console/internal/testutil"
)

func TestSetup_Disabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.Telemetry{}, "trueconf-console", "test", testutil.MakeNoopLogger())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_Enabled(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	cfg := config.Telemetry{Endpoint: "127.0.0.1:4317", Insecure: true}
	shutdown, err := Setup(context.Background(), cfg, "trueconf-console", "test", testutil.MakeNoopLogger())
	require.NoError(t, err)

	assert.IsType(t, &trace.TracerProvider{}, otel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}
