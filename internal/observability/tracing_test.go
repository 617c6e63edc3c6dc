package observability

import (
	"context"
	"testing"

	"github.com/sindauto/agendamento/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

func TestInitTracer_Disabled(t *testing.T) {
	assert.NotPanics(t, func() {
		InitTracer(nil)
		InitTracer(&config.Config{TracingEnabled: false})
	})
	assert.Nil(t, tracerProvider)
}

func TestShutdownTracer_WithoutInit(t *testing.T) {
	assert.NotPanics(t, ShutdownTracer)
}

func TestNewResource_DescribesDeployment(t *testing.T) {
	cfg := &config.Config{Environment: "staging", ServiceVersion: "1.4.2", Timezone: "America/Bahia"}

	res, err := newResource(context.Background(), cfg)
	require.NoError(t, err)

	attrs := res.Set()
	for key, want := range map[attribute.Key]string{
		semconv.ServiceNameKey:           "sindauto-agendamento",
		semconv.ServiceVersionKey:        "1.4.2",
		semconv.DeploymentEnvironmentKey: "staging",
		"sindauto.timezone":              "America/Bahia",
	} {
		got, ok := attrs.Value(key)
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, want, got.AsString())
	}
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(&config.Config{TracingSampleRatio: 1}).Description(), "root:AlwaysOnSampler")
	assert.Contains(t, newSampler(&config.Config{TracingSampleRatio: 0.25}).Description(), "root:TraceIDRatioBased{0.25}")
}
