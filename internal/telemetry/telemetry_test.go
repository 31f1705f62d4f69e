package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestOptions_Enabled(t *testing.T) {
	assert.False(t, Options{ServiceName: "svc"}.Enabled())
	assert.True(t, Options{Endpoint: "collector:4317"}.Enabled())
	assert.True(t, Options{Stdout: true}.Enabled())
}

func TestInitOtel_DisabledKeepsNoopProviders(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitOtel(context.Background(), Options{ServiceName: "chord-dictionary"})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitOtel_StdoutInstallsSDKTracer(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := InitOtel(context.Background(), Options{ServiceName: "chord-dictionary", Stdout: true})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.NoError(t, shutdown(context.Background()))
}
