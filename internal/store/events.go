package store

import (
	"database/sql"
	"errors"
	"time"
)

// Event represents one recognized gesture recorded in the event log.
type Event struct {
	ID             string
	Type           string
	Handedness     string
	Confidence     float64
	PositionX      float64
	PositionY      float64
	Direction      string
	Distance       float64
	DistanceChange float64
	TimestampMs    int64
	CreatedAt      time.Time
}

// EventRepository provides access to the gesture event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends an event to the log.
func (r *EventRepository) Insert(e *Event) error {
	e.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO events (id, type, handedness, confidence, position_x, position_y,
		                     direction, distance, distance_change, timestamp_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Type, e.Handedness, e.Confidence, e.PositionX, e.PositionY,
		e.Direction, e.Distance, e.DistanceChange, e.TimestampMs, e.CreatedAt,
	)
	return err
}

// GetByID retrieves a logged event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}

	err := r.db.QueryRow(
		`SELECT id, type, handedness, confidence, position_x, position_y,
		        direction, distance, distance_change, timestamp_ms, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Type, &e.Handedness, &e.Confidence, &e.PositionX, &e.PositionY,
		&e.Direction, &e.Distance, &e.DistanceChange, &e.TimestampMs, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return e, nil
}

// ListRecent retrieves up to limit events, most recent first. A gestureType
// of "" matches all types.
func (r *EventRepository) ListRecent(gestureType string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, type, handedness, confidence, position_x, position_y,
	                 direction, distance, distance_change, timestamp_ms, created_at
	          FROM events`
	args := []any{}
	if gestureType != "" {
		query += ` WHERE type = ?`
		args = append(args, gestureType)
	}
	query += ` ORDER BY timestamp_ms DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		err := rows.Scan(&e.ID, &e.Type, &e.Handedness, &e.Confidence, &e.PositionX, &e.PositionY,
			&e.Direction, &e.Distance, &e.DistanceChange, &e.TimestampMs, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Count returns the number of logged events.
func (r *EventRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteBefore removes events with a timestamp earlier than cutoffMs and
// returns how many were deleted.
func (r *EventRepository) DeleteBefore(cutoffMs int64) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM events WHERE timestamp_ms < ?`, cutoffMs)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
