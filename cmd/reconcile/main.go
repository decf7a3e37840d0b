// cmd/reconcile/main.go — Encola un barrido de reconciliación de monederos.
// El pool de workers del servidor lo procesa. Pensado para cron nocturno.
// Uso: go run ./cmd/reconcile [-socio <uuid>] [-fix]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/config"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/infra"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/worker"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	socioID := flag.String("socio", "", "reconciliar solo este socio (UUID); vacío = todos")
	fix := flag.Bool("fix", false, "corregir el saldo al valor del ledger")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	dispatcher := worker.NewDispatcher(rdb)
	payload := worker.ReconciliacionJobPayload{SocioID: *socioID, Fix: *fix}
	if err := dispatcher.EnqueueReconciliacion(context.Background(), payload); err != nil {
		log.Fatal().Err(err).Msg("failed to enqueue reconciliation job")
	}
	log.Info().Str("socio_id", *socioID).Bool("fix", *fix).Msg("reconciliation job enqueued")
}
