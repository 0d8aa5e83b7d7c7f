package telemetry

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetupFromEnvWithoutConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	tel, err := SetupFromEnv(context.Background(), "test:telemetry")
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.Nil(t, tel.MeterProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetupWithoutExporters(t *testing.T) {
	tel, err := Setup(context.Background(), "test:telemetry", Config{})
	require.NoError(t, err)
	require.Nil(t, tel.TracerProvider)
	require.NoError(t, tel.Shutdown(context.Background()))
}

func TestOtlpConfig(t *testing.T) {
	testCases := []struct {
		name     string
		config   OtlpConfig
		enabled  bool
		protocol string
		interval time.Duration
	}{
		{
			name:     "unset",
			protocol: "http",
			interval: DefaultMetricInterval,
		},
		{
			name: "grpc wins over http",
			config: OtlpConfig{
				Metrics: OtlpConnConfig{GrpcEndpoint: "http://localhost:4317", HttpEndpoint: "http://localhost:4318"},
			},
			enabled:  true,
			protocol: "grpc",
			interval: DefaultMetricInterval,
		},
		{
			name: "http with interval",
			config: OtlpConfig{
				Metrics:               OtlpConnConfig{HttpEndpoint: "http://localhost:4318"},
				MetricIntervalSeconds: 30,
			},
			enabled:  true,
			protocol: "http",
			interval: 30 * time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.enabled, tc.config.Metrics.enabled())
			require.Equal(t, tc.protocol, tc.config.Metrics.protocol())
			require.Equal(t, tc.interval, tc.config.metricInterval())
		})
	}
}
