// migrate aplica el esquema embebido (usuarios y productos) y termina.
//
// Uso: go run ./cmd/migrate [-list]
// Lee DATABASE_URL del entorno o de .env, igual que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-tracker/pkg/config"
	"github.com/jhoicas/inventory-tracker/pkg/logger"
)

func main() {
	list := flag.Bool("list", false, "solo listar los scripts embebidos")
	flag.Parse()

	if *list {
		names, err := postgres.Migrations()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Listar migraciones: %v\n", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
		log.Error().Err(err).Msg("aplicar esquema")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Msg("esquema aplicado")
}
