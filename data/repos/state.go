package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kova98/lueur/data"
)

// StateRepo keeps the last scheduled email id in a single-row table.
type StateRepo struct {
	db *sqlx.DB
}

func NewStateRepo(db *sqlx.DB) *StateRepo {
	return &StateRepo{db}
}

func (r *StateRepo) LastEmailID() (string, error) {
	var state data.EmailState
	err := r.db.Get(&state, `SELECT id, last_email_id, updated_at FROM email_state WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get last email id: %w", err)
	}
	return state.LastEmailID, nil
}

func (r *StateRepo) SaveLastEmailID(id string) error {
	query := `
		INSERT INTO email_state (id, last_email_id, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET last_email_id = EXCLUDED.last_email_id, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("save last email id: %w", err)
	}
	return nil
}
