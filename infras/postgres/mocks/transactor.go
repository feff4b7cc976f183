package mocks

import (
	"context"

	"trattoria/infras/postgres"

	"github.com/jmoiron/sqlx"
)

type transactorImpl struct {
}

// WithinTransaction implements postgres.Transactor. The callback runs with
// a nil transaction, so repositories under test must be mocked as well.
func (t *transactorImpl) WithinTransaction(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func NewTransactor() postgres.Transactor {
	return &transactorImpl{}
}
