// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package telemetry installs the OpenTelemetry tracer provider.
//
// With no OTLP endpoint configured the global no-op provider stays in place,
// so spans created by the domain services cost nothing in local development.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes pending spans.
type ShutdownFunc func(context.Context) error

// Options describes the running service.
type Options struct {
	ServiceName string
	Version     string
	Environment string
	Endpoint    string
}

// Setup configures the global tracer provider and propagator.
func Setup(ctx context.Context, options Options, logger *slog.Logger) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	endpoint := strings.TrimSpace(options.Endpoint)
	if endpoint == "" {
		logger.Info("tracing_disabled", slog.String("reason", "no OTLP endpoint"))
		return noop, nil
	}

	var exporterOptions []otlptracehttp.Option
	if strings.Contains(endpoint, "://") {
		exporterOptions = append(exporterOptions, otlptracehttp.WithEndpointURL(endpoint))
	} else {
		exporterOptions = append(exporterOptions, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, exporterOptions...)
	if err != nil {
		return noop, fmt.Errorf("telemetry: exporter init failed: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", options.ServiceName),
		attribute.String("service.version", options.Version),
		attribute.String("deployment.environment", options.Environment),
	))
	if err != nil {
		return noop, fmt.Errorf("telemetry: resource init failed: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing_enabled", slog.String("endpoint", endpoint))
	return provider.Shutdown, nil
}
