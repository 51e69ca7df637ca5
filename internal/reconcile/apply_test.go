package reconcile

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/tracker"
)

// fakeTracker grava as mutações recebidas; failCreate simula erro recuperável.
type fakeTracker struct {
	nextID     int
	failCreate map[string]bool // título -> falha

	created   []string // títulos
	updated   []int
	closed    []int
	comments  []int
	lastBody  map[int]string
	lastState map[int]string
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		nextID:     100,
		failCreate: map[string]bool{},
		lastBody:   map[int]string{},
		lastState:  map[int]string{},
	}
}

func (f *fakeTracker) List(_ context.Context, _ []string, _ string) ([]tracker.Record, error) {
	return nil, nil
}

func (f *fakeTracker) Create(_ context.Context, title, body string, _ []string) (int, error) {
	if f.failCreate[title] {
		return 0, errors.New("erro simulado")
	}
	f.nextID++
	f.created = append(f.created, title)
	f.lastBody[f.nextID] = body
	return f.nextID, nil
}

func (f *fakeTracker) Update(_ context.Context, identity int, body *string, _ []string, state *string) error {
	f.updated = append(f.updated, identity)
	if body != nil {
		f.lastBody[identity] = *body
	}
	if state != nil {
		f.lastState[identity] = *state
		if *state == tracker.StateClosed {
			f.closed = append(f.closed, identity)
		}
	}
	return nil
}

func (f *fakeTracker) Comment(_ context.Context, identity int, _ string) error {
	f.comments = append(f.comments, identity)
	return nil
}

func nop() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func TestApplyExecutaPlanoCompleto(t *testing.T) {
	ft := newFakeTracker()
	novo := testFinding("fp-novo", model.SevHigh, model.ConfHigh)
	presente := testFinding("fp-presente", model.SevHigh, model.ConfHigh)

	plan := Plan{
		Run:     3,
		Creates: []model.Finding{novo},
		Updates: []Update{
			{Record: openRecord(10, "fp-presente", 2, 1), Finding: &presente},
			{Record: openRecord(11, "fp-miss", 2, 0), Misses: 1},
		},
		Closes: []Record{openRecord(12, "fp-sumiu", 1, 2)},
	}

	if err := Apply(context.Background(), nop(), ft, plan, ApplyOptions{}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if len(ft.created) != 1 {
		t.Errorf("esperado 1 create, obtido %d", len(ft.created))
	}
	if len(ft.updated) != 3 { // refresh + miss + close
		t.Errorf("esperado 3 updates, obtido %d", len(ft.updated))
	}
	if len(ft.closed) != 1 || ft.closed[0] != 12 {
		t.Errorf("esperado issue 12 fechada, obtido %v", ft.closed)
	}
	if len(ft.comments) != 1 || ft.comments[0] != 12 {
		t.Errorf("esperado comentário no fechamento, obtido %v", ft.comments)
	}

	// o update de refresh regrava o marcador com o run atual e misses zerado
	fp, run, misses, ok := ParseMarker(ft.lastBody[10])
	if !ok || fp != "fp-presente" || run != 3 || misses != 0 {
		t.Errorf("marcador do refresh incorreto: (%s, %d, %d, ok=%v)", fp, run, misses, ok)
	}
}

func TestApplyMissToleradoSoAvancaContador(t *testing.T) {
	ft := newFakeTracker()
	r := openRecord(11, "ab12cd34ef56ab78", 2, 0)
	r.Body = "corpo\n\n" + Marker("ab12cd34ef56ab78", 2, 0)

	plan := Plan{
		Run:     3,
		Updates: []Update{{Record: r, Misses: 1}},
	}
	if err := Apply(context.Background(), nop(), ft, plan, ApplyOptions{}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	fp, run, misses, ok := ParseMarker(ft.lastBody[11])
	if !ok || fp != "ab12cd34ef56ab78" {
		t.Fatalf("marcador perdido no update de miss")
	}
	// lastSeenRun não avança: o finding não foi visto neste run
	if run != 2 || misses != 1 {
		t.Errorf("esperado (run=2, misses=1), obtido (%d, %d)", run, misses)
	}
}

func TestApplyFalhaIndividualNaoAbortaLote(t *testing.T) {
	ft := newFakeTracker()
	a := testFinding("fp-a", model.SevHigh, model.ConfHigh)
	b := testFinding("fp-b", model.SevHigh, model.ConfHigh)
	ft.failCreate[IssueTitle(a)] = true

	plan := Plan{Run: 1, Creates: []model.Finding{a, b}}
	if err := Apply(context.Background(), nop(), ft, plan, ApplyOptions{}); err != nil {
		t.Fatalf("falha individual deveria ser recuperável, obtido %v", err)
	}
	if len(ft.created) != 1 || ft.created[0] != IssueTitle(b) {
		t.Errorf("esperado só fp-b criado, obtido %v", ft.created)
	}
}

func TestApplyDryRunNaoMuta(t *testing.T) {
	ft := newFakeTracker()
	plan := Plan{
		Run:     1,
		Creates: []model.Finding{testFinding("fp-a", model.SevHigh, model.ConfHigh)},
		Closes:  []Record{openRecord(12, "fp-b", 1, 2)},
	}
	if err := Apply(context.Background(), nop(), ft, plan, ApplyOptions{DryRun: true}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(ft.created)+len(ft.updated)+len(ft.closed) != 0 {
		t.Errorf("dry-run não deveria mutar o tracker: %+v", ft)
	}
}

func TestApplyReopen(t *testing.T) {
	ft := newFakeTracker()
	f := testFinding("fp-voltou", model.SevHigh, model.ConfHigh)
	r := Record{Identity: 20, Fingerprint: "fp-voltou", State: tracker.StateClosed}

	plan := Plan{Run: 5, Reopens: []Update{{Record: r, Finding: &f}}}
	if err := Apply(context.Background(), nop(), ft, plan, ApplyOptions{}); err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if ft.lastState[20] != tracker.StateOpen {
		t.Errorf("esperado issue 20 reaberta, obtido %q", ft.lastState[20])
	}
	if len(ft.comments) != 1 || ft.comments[0] != 20 {
		t.Errorf("esperado comentário de reabertura, obtido %v", ft.comments)
	}
}
