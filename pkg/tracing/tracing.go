package tracing

import (
	"fmt"

	"bybit_bot/pkg/logger"

	"github.com/opentracing/opentracing-go"
	jCfg "github.com/uber/jaeger-client-go/config"
	"github.com/uber/jaeger-lib/metrics"
)

type Config struct {
	ServiceName string
	Host        string
	Port        int
}

// Enabled: трейсинг включается только при заданном агенте.
func (c Config) Enabled() bool {
	return c.Host != "" && c.Port > 0
}

// InitTracer регистрирует глобальный jaeger-трейсер. Без него opentracing
// отдаёт noop-спаны, так что клиенты биржи работают одинаково в обоих режимах.
func InitTracer(conf Config) (opentracing.Tracer, func(), error) {
	name := conf.ServiceName
	if name == "" {
		name = "bybit_bot"
	}
	cfg := &jCfg.Configuration{
		ServiceName: name,
		Sampler: &jCfg.SamplerConfig{
			Type:  "const",
			Param: 1,
		},
		Reporter: &jCfg.ReporterConfig{
			LogSpans:           true,
			LocalAgentHostPort: fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		},
	}

	tracer, closer, err := cfg.NewTracer(
		jCfg.Metrics(metrics.NullFactory),
	)
	if err != nil {
		return nil, nil, err
	}

	opentracing.SetGlobalTracer(tracer)
	return tracer, func() {
		if err := closer.Close(); err != nil {
			logger.Error("Error closing Jaeger tracer: %v", err)
		}
	}, nil
}
