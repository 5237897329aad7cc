package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Recorder appends run events for a task. A nil Recorder is valid and
// records nothing, so callers never have to branch on whether journaling
// is configured.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a recorder on an open journal database.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Event is one journaled run event. Data carries an optional JSON
// snapshot of the phase's payload, such as the diagnostics list.
type Event struct {
	TaskID  string
	Seq     int
	TS      string
	Type    string
	Message string
	Data    string
}

// RunStarted records the start of a workflow run.
func (r *Recorder) RunStarted(ctx context.Context, taskID, text string) {
	r.record(ctx, taskID, "run_started", text, nil)
}

// Phase records a workflow phase transition. data, if non-nil, is stored
// as a JSON snapshot alongside the event.
func (r *Recorder) Phase(ctx context.Context, taskID, phase, message string, data any) {
	r.record(ctx, taskID, "phase_"+phase, message, data)
}

// RunFinished records the terminal outcome of a run.
func (r *Recorder) RunFinished(ctx context.Context, taskID, status string, attempts int) {
	r.record(ctx, taskID, "run_finished", fmt.Sprintf("status=%s attempts=%d", status, attempts), nil)
}

func (r *Recorder) record(ctx context.Context, taskID, typ, message string, data any) {
	if r == nil || r.db == nil {
		return
	}
	if err := r.insert(ctx, taskID, typ, message, data); err != nil {
		log.Warn().Err(err).Str("task_id", taskID).Str("type", typ).Msg("journal write failed")
	}
}

func (r *Recorder) insert(ctx context.Context, taskID, typ, message string, data any) error {
	var dataJSON sql.NullString
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("encode event data: %w", err)
		}
		dataJSON = sql.NullString{String: string(encoded), Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin journal insert: %w", err)
	}

	var seq int
	row := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM events WHERE task_id=?`, taskID)
	if err := row.Scan(&seq); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("read event seq: %w", err)
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `INSERT INTO events(task_id, seq, ts, type, message, data_json) VALUES(?, ?, ?, ?, ?, ?)`,
		taskID, seq+1, ts, typ, message, dataJSON); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal insert: %w", err)
	}
	return nil
}

// Events returns all journaled events for a task in sequence order.
func (r *Recorder) Events(ctx context.Context, taskID string) ([]Event, error) {
	if r == nil || r.db == nil {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT task_id, seq, ts, type, message, COALESCE(data_json, '') FROM events WHERE task_id=? ORDER BY seq`, taskID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.TaskID, &ev.Seq, &ev.TS, &ev.Type, &ev.Message, &ev.Data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
