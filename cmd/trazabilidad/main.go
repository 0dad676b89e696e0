// trazabilidad genera el reporte de trazabilidad desde la línea de comandos, sin pasar por la API.
//
// Uso: go run ./cmd/trazabilidad report --company <uuid> --product <uuid> [--direction forward] [--format html] [--out archivo]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/trazabilidad-api/internal/bootstrap"
	"github.com/jhoicas/trazabilidad-api/internal/interfaces/cli"
	"github.com/jhoicas/trazabilidad-api/pkg/config"
	"github.com/jhoicas/trazabilidad-api/pkg/logger"
)

func main() {
	open := func(ctx context.Context) (*cli.Backend, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("cargar configuración: %w", err)
		}
		log := logger.NewWriter(os.Stderr, cfg.App.LogLevel)
		svc, err := bootstrap.Build(ctx, cfg, log, nil)
		if err != nil {
			return nil, nil, err
		}
		return &cli.Backend{
			Reports: svc.ReportUC,
			HTML:    svc.HTML,
			PDF:     svc.PDF,
			XLSX:    svc.XLSX,
			BaseURL: cfg.Report.BaseURL,
		}, svc.Close, nil
	}

	if err := cli.NewRootCommand(open).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
