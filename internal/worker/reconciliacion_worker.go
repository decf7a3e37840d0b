package worker

// reconciliacion_worker.go
// Recomputes each socio's wallet balance from the movimientos_monedero ledger
// and compares it against the denormalized Socio.Saldo. Both are written in
// the same transaction, so any drift means a bug or manual DB intervention.
// Drift is logged; the job only rewrites the column when Fix is set.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/dto"
	"github.com/gniv420/green-leaf-manager-pro-sub000/internal/repository"
)

// ReconciliacionJobPayload is the job envelope sent to QueueReconciliacion.
// An empty SocioID means "sweep every socio".
type ReconciliacionJobPayload struct {
	SocioID string `json:"socio_id,omitempty"`
	Fix     bool   `json:"fix,omitempty"`
}

type ReconciliacionWorker struct {
	socioRepo    repository.SocioRepository
	monederoRepo repository.MonederoRepository
}

func NewReconciliacionWorker(socioRepo repository.SocioRepository, monederoRepo repository.MonederoRepository) *ReconciliacionWorker {
	return &ReconciliacionWorker{socioRepo: socioRepo, monederoRepo: monederoRepo}
}

func (w *ReconciliacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReconciliacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reconciliacion_worker: invalid payload")
		return
	}

	if payload.SocioID != "" {
		id, err := uuid.Parse(payload.SocioID)
		if err != nil {
			log.Error().Str("socio_id", payload.SocioID).Msg("reconciliacion_worker: invalid socio_id")
			return
		}
		w.reconciliar(ctx, id, payload.Fix)
		return
	}

	// Full sweep, page by page.
	const pageSize = 200
	revisados, desviados := 0, 0
	for page := 1; ; page++ {
		socios, _, err := w.socioRepo.List(ctx, dto.SocioFilter{Estado: "all", Page: page, Limit: pageSize})
		if err != nil {
			log.Error().Err(err).Msg("reconciliacion_worker: error listando socios")
			return
		}
		if len(socios) == 0 {
			break
		}
		for i := range socios {
			revisados++
			if w.reconciliar(ctx, socios[i].ID, payload.Fix) {
				desviados++
			}
		}
		if len(socios) < pageSize {
			break
		}
	}
	log.Info().Int("revisados", revisados).Int("desviados", desviados).Msg("reconciliacion_worker: barrido completado")
}

// reconciliar returns true when the socio's saldo had drifted from the ledger.
func (w *ReconciliacionWorker) reconciliar(ctx context.Context, socioID uuid.UUID, fix bool) bool {
	socio, err := w.socioRepo.FindByID(ctx, socioID)
	if err != nil {
		log.Error().Err(err).Str("socio_id", socioID.String()).Msg("reconciliacion_worker: socio no encontrado")
		return false
	}

	calculado, err := w.monederoRepo.SumBySocio(ctx, socioID)
	if err != nil {
		log.Error().Err(err).Str("socio_id", socioID.String()).Msg("reconciliacion_worker: error sumando ledger")
		return false
	}

	if socio.Saldo.Equal(calculado) {
		return false
	}

	evt := log.Warn().
		Str("socio_id", socioID.String()).
		Str("codigo", socio.Codigo).
		Str("saldo_columna", socio.Saldo.StringFixed(2)).
		Str("saldo_ledger", calculado.StringFixed(2))

	if !fix {
		evt.Msg("reconciliacion_worker: desvío detectado")
		return true
	}

	socio.Saldo = calculado
	if err := w.socioRepo.Update(ctx, socio); err != nil {
		evt.Msg("reconciliacion_worker: desvío detectado, corrección fallida")
		log.Error().Err(err).Str("socio_id", socioID.String()).Msg("reconciliacion_worker: error corrigiendo saldo")
		return true
	}
	evt.Msg("reconciliacion_worker: desvío corregido al valor del ledger")
	return true
}
