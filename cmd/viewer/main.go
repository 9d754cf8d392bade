// cmd/viewer/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"prodview/internal/clients"
	"prodview/internal/viewer"
)

func main() {
	source := getEnv("PRODVIEW_SOURCE", "./db.json")
	apiBase := getEnv("PRODVIEW_API_BASE", "https://api.escuelajs.co/api/v1")
	port := getEnv("PORT", "8080")

	ctx := context.Background()
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := initTracing(ctx)
		if err != nil {
			log.Fatalf("failed to init tracing: %v", err)
		}
		defer shutdown(ctx)
	}

	svc := viewer.NewService(source, clients.NewProductsClient(apiBase))
	defer svc.Close()

	// The routes only come up after a successful load, so no request can
	// observe a half-initialized catalog.
	if err := svc.Load(ctx); err != nil {
		log.Fatalf("failed to load catalog from %s: %v", source, err)
	}
	log.Printf("loaded %d products from %s", svc.Snapshot().Meta.TotalItems, source)

	handler := viewer.NewHandler(svc)
	log.Printf("viewer listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler.Routes()))
}

func initTracing(ctx context.Context) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "prodview"),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
