package repo

import (
	"context"
	"database/sql"

	"itemsapi/src/infra/db"
)

// stubSource hands out a fixed handle or error and counts calls.
type stubSource[H any] struct {
	handle H
	err    error
	calls  int
}

func (s *stubSource[H]) Acquire(_ context.Context) (H, error) {
	s.calls++
	if s.err != nil {
		var zero H
		return zero, s.err
	}
	return s.handle, nil
}

var (
	_ db.Source[db.PgxPool] = (*stubSource[db.PgxPool])(nil)
	_ db.Source[*sql.DB]    = (*stubSource[*sql.DB])(nil)
)
