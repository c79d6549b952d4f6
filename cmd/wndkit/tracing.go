package main

import (
	"context"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/odvcencio/wndkit/pkg/config"
	"github.com/odvcencio/wndkit/pkg/errors"
)

const tracerName = "github.com/odvcencio/wndkit/cmd/wndkit"

// setupTracing installs a tracer provider that writes spans as JSON to
// the configured trace file. With tracing disabled the global no-op
// provider is used.
func setupTracing(cfg *config.Config, runID string) (trace.Tracer, func(context.Context) error, error) {
	if !cfg.Tracing.Enabled {
		return otel.Tracer(tracerName), func(context.Context) error { return nil }, nil
	}

	path := cfg.TracePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "creating trace directory")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrCodeConfigLoad, "opening trace file").WithContext("path", path)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternal, "creating trace exporter")
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("wndkit"),
			attribute.String("wndkit.run_id", runID),
		),
	)
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrap(err, errors.ErrCodeInternal, "creating trace resource")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)

	shutdown := func(ctx context.Context) error {
		err := provider.Shutdown(ctx)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return provider.Tracer(tracerName), shutdown, nil
}
