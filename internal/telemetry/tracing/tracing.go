package tracing

import (
	"errors"
	"fmt"

	"github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcsouza2/fittude-data-repo/internal/store"
)

var GlobalTracer = otel.Tracer("fittude-data-repo")

// EndSpanWithErrCheck records err on the span and ends it. Caller-visible
// outcomes (not found, conflict) are recorded as events, only internal
// failures mark the span as errored.
func EndSpanWithErrCheck(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}

	span.RecordError(err)
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrConflict) {
		return
	}
	span.SetStatus(codes.Error, err.Error())
}

const honeycombTeamHeader = "x-honeycomb-team"

// HoneycombSetup configures the OpenTelemetry SDK with the honeycomb distro.
// An empty apiKey leaves it to the HONEYCOMB_API_KEY variable. The returned
// shutdown func is never nil.
func HoneycombSetup(enabled bool, serviceName, apiKey string) (func(), error) {
	if !enabled {
		log.Debugln("tracing disabled, skipping honeycomb setup")
		return func() {}, nil
	}

	opts := []otelconfig.Option{
		otelconfig.WithServiceName(serviceName),
		otelconfig.WithSpanProcessor(honeycomb.NewBaggageSpanProcessor()),
	}
	if apiKey != "" {
		opts = append(opts, otelconfig.WithHeaders(map[string]string{
			honeycombTeamHeader: apiKey,
		}))
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(opts...)
	if err != nil {
		return func() {}, fmt.Errorf("configure opentelemetry: %w", err)
	}

	log.Infof("honeycomb tracing set up for service [%s]", serviceName)
	return otelShutdown, nil
}
