// Package reconcile compara o conjunto de findings do run atual com os
// registros persistidos no tracker e calcula o conjunto mínimo de mutações
// (create/update/close) para mantê-los em sincronia.
package reconcile

import (
	"sort"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/tracker"
)

// Record é um registro rastreado já decodificado (marcador extraído do corpo).
type Record struct {
	Identity    int
	Fingerprint string
	LastSeenRun int
	Misses      int // runs consecutivos em que o fingerprint esteve ausente
	State       string
	Title       string
	Body        string
}

// Options controla thresholds e políticas da reconciliação.
type Options struct {
	SeverityThreshold   model.Severity
	ConfidenceThreshold model.Confidence
	MaxNewPerRun        int  // 0 = sem limite
	CloseResolved       bool // fecha no primeiro miss
	MissTolerance       int  // misses tolerados antes de fechar
	ReopenClosed        bool // default false: registro fechado é terminal
}

// Update refere um registro a refrescar. Finding nil indica miss tolerado:
// só o contador de misses avança, lastSeenRun fica como está.
type Update struct {
	Record  Record
	Finding *model.Finding
	Misses  int
}

// Plan é o diff calculado para um run. Aplicação é responsabilidade de Apply.
type Plan struct {
	Run      int
	Creates  []model.Finding
	Updates  []Update
	Reopens  []Update
	Closes   []Record
	Deferred []model.Finding // elegíveis cortados pelo budget; re-elegíveis no próximo run
	Skipped  []model.Finding // abaixo dos thresholds; só saem no report
}

// FromTracker decodifica registros crus do tracker. Issues sem marcador são
// ignoradas: não pertencem a este sistema.
func FromTracker(raw []tracker.Record) []Record {
	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		fp, run, misses, ok := ParseMarker(r.Body)
		if !ok {
			continue
		}
		out = append(out, Record{
			Identity:    r.Identity,
			Fingerprint: fp,
			LastSeenRun: run,
			Misses:      misses,
			State:       r.State,
			Title:       r.Title,
			Body:        r.Body,
		})
	}
	return out
}

// NextRun deriva o contador do run atual do estado persistido: o maior run
// visto nos marcadores + 1. Sem estado local em disco.
func NextRun(records []Record) int {
	max := 0
	for _, r := range records {
		if r.LastSeenRun > max {
			max = r.LastSeenRun
		}
	}
	return max + 1
}

// Diff roda a máquina de estados por fingerprint. Matching é feito por mapa
// exato fingerprint→registro construído uma vez (O(1) por lookup), nunca por
// comparação par a par.
func Diff(findings []model.Finding, records []Record, run int, opts Options) Plan {
	open := make(map[string]Record)
	closed := make(map[string]Record)
	for _, r := range records {
		switch r.State {
		case tracker.StateClosed:
			if _, ok := closed[r.Fingerprint]; !ok {
				closed[r.Fingerprint] = r
			}
		default:
			if _, ok := open[r.Fingerprint]; !ok {
				open[r.Fingerprint] = r
			}
		}
	}

	plan := Plan{Run: run}
	matched := make(map[string]bool)
	var eligible []model.Finding

	for _, f := range findings {
		if r, ok := open[f.Fingerprint]; ok {
			// Tracked+Present: refresca, zera misses.
			matched[f.Fingerprint] = true
			plan.Updates = append(plan.Updates, Update{Record: r, Finding: ptr(f)})
			continue
		}
		if r, ok := closed[f.Fingerprint]; ok && opts.ReopenClosed {
			plan.Reopens = append(plan.Reopens, Update{Record: r, Finding: ptr(f)})
			continue
		}
		// Absent→New (fechado é terminal por default: reaparecimento vira
		// registro novo).
		if model.SeverityRank(f.Severity) < model.SeverityRank(opts.SeverityThreshold) ||
			model.ConfidenceRank(f.Confidence) < model.ConfidenceRank(opts.ConfidenceThreshold) {
			plan.Skipped = append(plan.Skipped, f)
			continue
		}
		eligible = append(eligible, f)
	}

	// Budget de criação: corte determinístico por severidade desc,
	// confiança desc, fingerprint lexicográfico.
	sort.SliceStable(eligible, func(i, j int) bool {
		si, sj := model.SeverityRank(eligible[i].Severity), model.SeverityRank(eligible[j].Severity)
		if si != sj {
			return si > sj
		}
		ci, cj := model.ConfidenceRank(eligible[i].Confidence), model.ConfidenceRank(eligible[j].Confidence)
		if ci != cj {
			return ci > cj
		}
		return eligible[i].Fingerprint < eligible[j].Fingerprint
	})
	if opts.MaxNewPerRun > 0 && len(eligible) > opts.MaxNewPerRun {
		plan.Creates = eligible[:opts.MaxNewPerRun]
		plan.Deferred = eligible[opts.MaxNewPerRun:]
	} else {
		plan.Creates = eligible
	}

	// Tracked+Absent: incrementa misses; fecha conforme a política.
	for _, r := range records {
		if r.State == tracker.StateClosed || matched[r.Fingerprint] {
			continue
		}
		misses := r.Misses + 1
		if opts.CloseResolved || misses > opts.MissTolerance {
			plan.Closes = append(plan.Closes, r)
			continue
		}
		plan.Updates = append(plan.Updates, Update{Record: r, Misses: misses})
	}

	return plan
}

func ptr(f model.Finding) *model.Finding { return &f }
