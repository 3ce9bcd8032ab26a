package config

import (
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/okorolev/pulseblog/internal/observability"
)

// LoadObservabilityConfig reads the OTEL exporter settings. An empty
// endpoint means tracing export is disabled.
func LoadObservabilityConfig(config *koanf.Koanf, log *zap.Logger) observability.Config {
	observabilityConfig := observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
	}

	if observabilityConfig.OtelEndpoint != "" && observabilityConfig.ServiceName == "" {
		log.Fatal("OTEL_SERVICE_NAME is required when the otel endpoint is set")
	}

	return observabilityConfig
}
