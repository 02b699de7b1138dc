package config

// TracingConfig holds OTLP trace export configuration.
//
// Traces are exported over OTLP/HTTP to a local collector or agent.
// See internal/app for the exporter wiring.
type TracingConfig struct {
	// Enabled turns trace export on (default: false).
	Enabled bool `mapstructure:"enabled"`
	// Endpoint is the OTLP/HTTP collector endpoint (default: localhost:4318).
	Endpoint string `mapstructure:"endpoint"`
	// Environment is the deployment environment tag (default: dev).
	Environment string `mapstructure:"environment"`
	// ServiceName is the reported service name (default: gander).
	ServiceName string `mapstructure:"service_name"`
}
