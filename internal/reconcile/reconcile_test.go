package reconcile

import (
	"testing"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/tracker"
)

func testFinding(fp string, sev model.Severity, conf model.Confidence) model.Finding {
	return model.Finding{
		Fingerprint: fp,
		Tool:        "ruff",
		RuleID:      "E501",
		Layer:       model.LayerCode,
		Severity:    sev,
		Confidence:  conf,
		Title:       "finding " + fp,
		Message:     "mensagem",
		Labels:      []string{"vibecop"},
		Locations:   []model.Location{{Path: "a.py", StartLine: 1}},
	}
}

func openRecord(id int, fp string, lastRun, misses int) Record {
	return Record{
		Identity:    id,
		Fingerprint: fp,
		LastSeenRun: lastRun,
		Misses:      misses,
		State:       tracker.StateOpen,
	}
}

var defaultOpts = Options{
	SeverityThreshold:   model.SevLow,
	ConfidenceThreshold: model.ConfLow,
	MissTolerance:       2,
}

func TestDiffNovoFindingViraCreate(t *testing.T) {
	findings := []model.Finding{testFinding("fp-novo", model.SevHigh, model.ConfHigh)}

	plan := Diff(findings, nil, 1, defaultOpts)

	if len(plan.Creates) != 1 {
		t.Fatalf("esperado 1 create, obtido %d", len(plan.Creates))
	}
	if len(plan.Updates)+len(plan.Closes)+len(plan.Deferred) != 0 {
		t.Errorf("esperado plano só com create, obtido %+v", plan)
	}
}

func TestDiffPresenteViraUpdateComMissesZerado(t *testing.T) {
	findings := []model.Finding{testFinding("fp-1", model.SevHigh, model.ConfHigh)}
	records := []Record{openRecord(10, "fp-1", 4, 2)}

	plan := Diff(findings, records, 5, defaultOpts)

	if len(plan.Creates) != 0 || len(plan.Closes) != 0 {
		t.Fatalf("esperado só update, obtido %+v", plan)
	}
	if len(plan.Updates) != 1 {
		t.Fatalf("esperado 1 update, obtido %d", len(plan.Updates))
	}
	u := plan.Updates[0]
	if u.Finding == nil {
		t.Fatal("esperado finding anexado ao update")
	}
	if u.Misses != 0 {
		t.Errorf("esperado misses zerado, obtido %d", u.Misses)
	}
}

func TestDiffFechamentoPorMisses(t *testing.T) {
	// missTolerance = 2: aberto nos 2 primeiros misses, fecha no 3º
	r := openRecord(10, "fp-sumiu", 1, 0)

	for run := 2; run <= 3; run++ {
		plan := Diff(nil, []Record{r}, run, defaultOpts)
		if len(plan.Closes) != 0 {
			t.Fatalf("run %d: esperado registro ainda aberto, obtido close", run)
		}
		if len(plan.Updates) != 1 || plan.Updates[0].Finding != nil {
			t.Fatalf("run %d: esperado update de miss, obtido %+v", run, plan)
		}
		r.Misses = plan.Updates[0].Misses
	}
	if r.Misses != 2 {
		t.Fatalf("esperado 2 misses acumulados, obtido %d", r.Misses)
	}

	plan := Diff(nil, []Record{r}, 4, defaultOpts)
	if len(plan.Closes) != 1 {
		t.Fatalf("3ª ausência consecutiva: esperado close, obtido %+v", plan)
	}
}

func TestDiffCloseResolvedFechaNoPrimeiroMiss(t *testing.T) {
	opts := defaultOpts
	opts.CloseResolved = true

	plan := Diff(nil, []Record{openRecord(10, "fp-1", 1, 0)}, 2, opts)
	if len(plan.Closes) != 1 {
		t.Fatalf("esperado close imediato, obtido %+v", plan)
	}
}

func TestDiffBudgetDeCreacao(t *testing.T) {
	opts := defaultOpts
	opts.MaxNewPerRun = 1

	findings := []model.Finding{
		testFinding("fp-baixo", model.SevLow, model.ConfLow),
		testFinding("fp-critico", model.SevCritical, model.ConfHigh),
	}

	plan := Diff(findings, nil, 1, opts)

	if len(plan.Creates) != 1 {
		t.Fatalf("esperado exatamente 1 create, obtido %d", len(plan.Creates))
	}
	if plan.Creates[0].Fingerprint != "fp-critico" {
		t.Errorf("esperado promoção do crítico, obtido %q", plan.Creates[0].Fingerprint)
	}
	if len(plan.Deferred) != 1 || plan.Deferred[0].Fingerprint != "fp-baixo" {
		t.Errorf("esperado fp-baixo deferido, obtido %+v", plan.Deferred)
	}
}

func TestDiffBudgetDesempateDeterministico(t *testing.T) {
	opts := defaultOpts
	opts.MaxNewPerRun = 1

	findings := []model.Finding{
		testFinding("fp-bbb", model.SevHigh, model.ConfHigh),
		testFinding("fp-aaa", model.SevHigh, model.ConfHigh),
	}

	plan := Diff(findings, nil, 1, opts)
	if plan.Creates[0].Fingerprint != "fp-aaa" {
		t.Errorf("esperado desempate lexicográfico (fp-aaa), obtido %q", plan.Creates[0].Fingerprint)
	}
}

func TestDiffThresholdsExcluemDoTracking(t *testing.T) {
	opts := defaultOpts
	opts.SeverityThreshold = model.SevMedium
	opts.ConfidenceThreshold = model.ConfMedium

	findings := []model.Finding{
		testFinding("fp-fraco", model.SevLow, model.ConfHigh),
		testFinding("fp-incerto", model.SevHigh, model.ConfLow),
		testFinding("fp-ok", model.SevHigh, model.ConfHigh),
	}

	plan := Diff(findings, nil, 1, opts)

	if len(plan.Creates) != 1 || plan.Creates[0].Fingerprint != "fp-ok" {
		t.Errorf("esperado só fp-ok criado, obtido %+v", plan.Creates)
	}
	if len(plan.Skipped) != 2 {
		t.Errorf("esperado 2 skipped (ainda elegíveis pro report), obtido %d", len(plan.Skipped))
	}
}

func TestDiffIdempotente(t *testing.T) {
	// store já sincronizado: reconciliar de novo não cria nem fecha nada
	findings := []model.Finding{testFinding("fp-1", model.SevHigh, model.ConfHigh)}
	records := []Record{openRecord(10, "fp-1", 5, 0)}

	plan := Diff(findings, records, 6, defaultOpts)

	if len(plan.Creates) != 0 || len(plan.Closes) != 0 || len(plan.Reopens) != 0 {
		t.Errorf("esperado só refresh, obtido %+v", plan)
	}
	if len(plan.Updates) != 1 {
		t.Errorf("esperado 1 update de refresh, obtido %d", len(plan.Updates))
	}
}

func TestDiffFechadoETerminalPorDefault(t *testing.T) {
	findings := []model.Finding{testFinding("fp-voltou", model.SevHigh, model.ConfHigh)}
	records := []Record{{
		Identity:    10,
		Fingerprint: "fp-voltou",
		LastSeenRun: 3,
		State:       tracker.StateClosed,
	}}

	plan := Diff(findings, records, 7, defaultOpts)

	if len(plan.Reopens) != 0 {
		t.Fatalf("default: fechado é terminal; esperado 0 reopens, obtido %d", len(plan.Reopens))
	}
	if len(plan.Creates) != 1 {
		t.Errorf("esperado registro novo para fingerprint reaparecido, obtido %+v", plan)
	}
}

func TestDiffReopenClosedHabilitado(t *testing.T) {
	opts := defaultOpts
	opts.ReopenClosed = true

	findings := []model.Finding{testFinding("fp-voltou", model.SevHigh, model.ConfHigh)}
	records := []Record{{
		Identity:    10,
		Fingerprint: "fp-voltou",
		LastSeenRun: 3,
		State:       tracker.StateClosed,
	}}

	plan := Diff(findings, records, 7, opts)

	if len(plan.Reopens) != 1 {
		t.Fatalf("esperado 1 reopen, obtido %+v", plan)
	}
	if len(plan.Creates) != 0 {
		t.Errorf("esperado 0 creates com reopen habilitado, obtido %d", len(plan.Creates))
	}
}

func TestDiffRegistroFechadoNaoContaMiss(t *testing.T) {
	records := []Record{{
		Identity:    10,
		Fingerprint: "fp-antigo",
		LastSeenRun: 1,
		State:       tracker.StateClosed,
	}}

	plan := Diff(nil, records, 5, defaultOpts)
	if len(plan.Closes)+len(plan.Updates) != 0 {
		t.Errorf("registro fechado não participa de miss-counting, obtido %+v", plan)
	}
}

func TestFromTrackerIgnoraIssuesSemMarcador(t *testing.T) {
	raw := []tracker.Record{
		{Identity: 1, Body: "issue manual, sem marcador", State: tracker.StateOpen},
		{Identity: 2, Body: "corpo\n\n" + Marker("ab12cd34ef56ab78", 3, 1), State: tracker.StateOpen},
	}

	records := FromTracker(raw)
	if len(records) != 1 {
		t.Fatalf("esperado 1 registro gerenciado, obtido %d", len(records))
	}
	r := records[0]
	if r.Identity != 2 || r.Fingerprint != "ab12cd34ef56ab78" || r.LastSeenRun != 3 || r.Misses != 1 {
		t.Errorf("registro decodificado incorreto: %+v", r)
	}
}

func TestNextRun(t *testing.T) {
	if got := NextRun(nil); got != 1 {
		t.Errorf("sem registros: esperado run 1, obtido %d", got)
	}
	records := []Record{
		openRecord(1, "a", 3, 0),
		openRecord(2, "b", 7, 0),
	}
	if got := NextRun(records); got != 8 {
		t.Errorf("esperado run 8, obtido %d", got)
	}
}
