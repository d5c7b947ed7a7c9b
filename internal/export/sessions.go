package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/usestring/saz-mcp/pkg/saz"
)

// ErrCaptureNotExported is returned when a capture has no rows in the database.
var ErrCaptureNotExported = errors.New("capture not exported")

// ExportedCapture is one exported capture row.
type ExportedCapture struct {
	ID           int64  `json:"id"`
	Path         string `json:"path"`
	ExportedAt   int64  `json:"exported_at"`
	SessionCount int    `json:"session_count"`
}

// ExportCapture writes the sessions of one capture in a single transaction.
// Exporting the same capture path again replaces its previous rows.
func ExportCapture(ctx context.Context, d *sql.DB, capturePath string, sessions []saz.Session) (int64, error) {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades to the capture's sessions.
	if _, err := tx.ExecContext(ctx, "DELETE FROM captures WHERE path = ?", capturePath); err != nil {
		return 0, fmt.Errorf("clear previous export: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO captures (path, exported_at, session_count) VALUES (?, ?, ?)",
		capturePath, time.Now().Unix(), len(sessions),
	)
	if err != nil {
		return 0, fmt.Errorf("insert capture: %w", err)
	}
	captureID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO sessions (capture_id, idx, status, url, body_length, request_path, response_path, request, response) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("prepare session insert: %w", err)
	}
	defer stmt.Close()

	for i := range sessions {
		s := &sessions[i]
		if _, err := stmt.ExecContext(ctx,
			captureID, s.Index, s.Status, s.URL, int64(s.BodyLength),
			s.RequestPath, s.ResponsePath, s.Request, s.Response,
		); err != nil {
			return 0, fmt.Errorf("insert session %d: %w", s.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit export: %w", err)
	}
	return captureID, nil
}

// ListSessions reads back the exported sessions of a capture in index order.
func ListSessions(ctx context.Context, d *sql.DB, capturePath string) ([]saz.Session, error) {
	var captureID int64
	err := d.QueryRowContext(ctx, "SELECT id FROM captures WHERE path = ?", capturePath).Scan(&captureID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCaptureNotExported, capturePath)
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.QueryContext(ctx,
		"SELECT idx, status, url, body_length, request_path, response_path, request, response FROM sessions WHERE capture_id = ? ORDER BY idx",
		captureID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]saz.Session, 0)
	for rows.Next() {
		var s saz.Session
		var bodyLength int64
		if err := rows.Scan(&s.Index, &s.Status, &s.URL, &bodyLength,
			&s.RequestPath, &s.ResponsePath, &s.Request, &s.Response); err != nil {
			return nil, err
		}
		s.BodyLength = uint64(bodyLength)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ListCaptures returns every exported capture, most recent first.
func ListCaptures(ctx context.Context, d *sql.DB) ([]ExportedCapture, error) {
	rows, err := d.QueryContext(ctx,
		"SELECT id, path, exported_at, session_count FROM captures ORDER BY exported_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []ExportedCapture
	for rows.Next() {
		var c ExportedCapture
		if err := rows.Scan(&c.ID, &c.Path, &c.ExportedAt, &c.SessionCount); err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}
