// Package tracker define o protocolo do armazenamento externo de registros
// (issue tracker) e a implementação GitHub.
package tracker

import "context"

const (
	StateOpen   = "open"
	StateClosed = "closed"
	StateAll    = "all"
)

// Record é a visão crua de um registro persistido no tracker.
type Record struct {
	Identity int // número da issue
	Title    string
	Body     string
	Labels   []string
	State    string // "open" | "closed"
}

// Tracker é o protocolo mínimo do armazenamento de registros rastreados.
// O cliente é construído explicitamente e injetado no engine de
// reconciliação; nada de singleton de processo.
type Tracker interface {
	// List retorna TODOS os registros com as labels dadas e no estado dado,
	// paginando até o fim. Erro aqui aborta a reconciliação do run.
	List(ctx context.Context, labels []string, state string) ([]Record, error)
	Create(ctx context.Context, title, body string, labels []string) (int, error)
	Update(ctx context.Context, identity int, body *string, labels []string, state *string) error
	Comment(ctx context.Context, identity int, body string) error
}
