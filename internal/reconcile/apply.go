package reconcile

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/tracker"
)

// ApplyOptions controla a aplicação do plano.
type ApplyOptions struct {
	// Pace é a pausa entre chamadas externas consecutivas (rate limit).
	// Pacing consultivo, não mecanismo de correção.
	Pace   time.Duration
	DryRun bool
}

// Apply executa as mutações do plano, sequencialmente, uma em voo por vez.
// Falha individual de mutação é logada e não aborta o lote; cancelamento de
// contexto aborta o restante.
func Apply(ctx context.Context, log *zap.SugaredLogger, t tracker.Tracker, plan Plan, opts ApplyOptions) error {
	for _, f := range plan.Creates {
		if opts.DryRun {
			log.Infof("[dry-run] create: %s (%s)", IssueTitle(f), f.Fingerprint)
			continue
		}
		body := IssueBody(f, plan.Run, 0)
		id, err := t.Create(ctx, IssueTitle(f), body, f.Labels)
		if err != nil {
			log.Warnw("falha ao criar registro", "fingerprint", f.Fingerprint, "erro", err)
		} else {
			log.Infow("registro criado", "issue", id, "fingerprint", f.Fingerprint)
		}
		if err := pace(ctx, opts.Pace); err != nil {
			return err
		}
	}

	for _, u := range plan.Updates {
		if opts.DryRun {
			log.Infof("[dry-run] update: #%d (%s, misses=%d)", u.Record.Identity, u.Record.Fingerprint, u.Misses)
			continue
		}
		var body string
		var labels []string
		if u.Finding != nil {
			// Presente neste run: corpo reescrito, misses zerado.
			body = IssueBody(*u.Finding, plan.Run, 0)
			labels = u.Finding.Labels
		} else {
			// Miss tolerado: só o contador avança no marcador.
			body = ReplaceMarker(u.Record.Body, u.Record.Fingerprint, u.Record.LastSeenRun, u.Misses)
		}
		if err := t.Update(ctx, u.Record.Identity, &body, labels, nil); err != nil {
			log.Warnw("falha ao atualizar registro", "issue", u.Record.Identity, "erro", err)
		}
		if err := pace(ctx, opts.Pace); err != nil {
			return err
		}
	}

	for _, u := range plan.Reopens {
		if opts.DryRun {
			log.Infof("[dry-run] reopen: #%d (%s)", u.Record.Identity, u.Record.Fingerprint)
			continue
		}
		body := IssueBody(*u.Finding, plan.Run, 0)
		state := tracker.StateOpen
		if err := t.Update(ctx, u.Record.Identity, &body, u.Finding.Labels, &state); err != nil {
			log.Warnw("falha ao reabrir registro", "issue", u.Record.Identity, "erro", err)
		} else if err := t.Comment(ctx, u.Record.Identity, "Finding reapareceu; registro reaberto pelo vibecop."); err != nil {
			log.Warnw("falha ao comentar registro", "issue", u.Record.Identity, "erro", err)
		}
		if err := pace(ctx, opts.Pace); err != nil {
			return err
		}
	}

	for _, r := range plan.Closes {
		if opts.DryRun {
			log.Infof("[dry-run] close: #%d (%s)", r.Identity, r.Fingerprint)
			continue
		}
		state := tracker.StateClosed
		if err := t.Update(ctx, r.Identity, nil, nil, &state); err != nil {
			log.Warnw("falha ao fechar registro", "issue", r.Identity, "erro", err)
		} else if err := t.Comment(ctx, r.Identity, "Finding ausente nos últimos runs; registro fechado pelo vibecop."); err != nil {
			log.Warnw("falha ao comentar registro", "issue", r.Identity, "erro", err)
		}
		if err := pace(ctx, opts.Pace); err != nil {
			return err
		}
	}

	return nil
}

func pace(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
