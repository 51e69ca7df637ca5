package tracker

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// GitHub implementa Tracker sobre issues de um repositório.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

func NewGitHub(token, owner, repo string) *GitHub {
	c := github.NewClient(nil)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return &GitHub{client: c, owner: owner, repo: repo}
}

// List pagina Issues.ListByRepo até o fim antes de retornar. Pull requests
// são filtrados (a API de issues os inclui).
func (g *GitHub) List(ctx context.Context, labels []string, state string) ([]Record, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		Labels:      labels,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []Record
	for {
		issues, resp, err := g.client.Issues.ListByRepo(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listar issues de %s/%s: %w", g.owner, g.repo, err)
		}
		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			out = append(out, Record{
				Identity: is.GetNumber(),
				Title:    is.GetTitle(),
				Body:     is.GetBody(),
				Labels:   labelNames(is.Labels),
				State:    is.GetState(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (g *GitHub) Create(ctx context.Context, title, body string, labels []string) (int, error) {
	req := &github.IssueRequest{
		Title:  github.Ptr(title),
		Body:   github.Ptr(body),
		Labels: &labels,
	}
	is, _, err := g.client.Issues.Create(ctx, g.owner, g.repo, req)
	if err != nil {
		return 0, fmt.Errorf("criar issue: %w", err)
	}
	return is.GetNumber(), nil
}

func (g *GitHub) Update(ctx context.Context, identity int, body *string, labels []string, state *string) error {
	req := &github.IssueRequest{Body: body, State: state}
	if labels != nil {
		req.Labels = &labels
	}
	if _, _, err := g.client.Issues.Edit(ctx, g.owner, g.repo, identity, req); err != nil {
		return fmt.Errorf("atualizar issue #%d: %w", identity, err)
	}
	return nil
}

func (g *GitHub) Comment(ctx context.Context, identity int, body string) error {
	c := &github.IssueComment{Body: github.Ptr(body)}
	if _, _, err := g.client.Issues.CreateComment(ctx, g.owner, g.repo, identity, c); err != nil {
		return fmt.Errorf("comentar issue #%d: %w", identity, err)
	}
	return nil
}

func labelNames(labels []*github.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.GetName())
	}
	return out
}
