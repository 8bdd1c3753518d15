package infra

import (
	"github.com/m-mizutani/octosync/pkg/domain/interfaces"
)

type Clients struct {
	github        interfaces.GitHub
	bqClient      interfaces.BigQuery
	selectionRepo interfaces.SelectionRepository
	gateRepo      interfaces.RunGateRepository
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) GitHub() interfaces.GitHub {
	return x.github
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) SelectionRepository() interfaces.SelectionRepository {
	return x.selectionRepo
}
func (x *Clients) RunGateRepository() interfaces.RunGateRepository {
	return x.gateRepo
}

func WithGitHub(client interfaces.GitHub) Option {
	return func(x *Clients) {
		x.github = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithSelectionRepository(repo interfaces.SelectionRepository) Option {
	return func(x *Clients) {
		x.selectionRepo = repo
	}
}

func WithRunGateRepository(repo interfaces.RunGateRepository) Option {
	return func(x *Clients) {
		x.gateRepo = repo
	}
}
