package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// HandednessAny is the wildcard handedness for a binding: it matches events
// from any hand when no exact binding exists.
const HandednessAny = "*"

// Binding maps a gesture key to a plugin action.
type Binding struct {
	ID          string
	GestureType string
	Handedness  string // "Left", "Right", "Both" or HandednessAny
	PluginName  string
	ActionName  string
	Config      json.RawMessage
	Enabled     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BindingRepository provides CRUD operations for bindings.
type BindingRepository struct {
	db *sql.DB
}

// Bindings returns the binding repository for this store.
func (s *Store) Bindings() *BindingRepository {
	return &BindingRepository{db: s.db}
}

// Create inserts a new binding into the database.
func (r *BindingRepository) Create(b *Binding) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if b.Handedness == "" {
		b.Handedness = HandednessAny
	}
	config := b.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	_, err := r.db.Exec(
		`INSERT INTO bindings (id, gesture_type, handedness, plugin_name, action_name,
		                       config, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.GestureType, b.Handedness, b.PluginName, b.ActionName,
		string(config), b.Enabled, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

// GetByID retrieves a binding by its ID.
func (r *BindingRepository) GetByID(id string) (*Binding, error) {
	return r.getOne(
		`SELECT id, gesture_type, handedness, plugin_name, action_name,
		        config, enabled, created_at, updated_at
		 FROM bindings WHERE id = ?`,
		id,
	)
}

// GetForGesture resolves the binding for a gesture type and handedness. An
// exact handedness match wins over a wildcard binding.
// Returns nil, nil if the gesture is unbound.
func (r *BindingRepository) GetForGesture(gestureType, handedness string) (*Binding, error) {
	b, err := r.getOne(
		`SELECT id, gesture_type, handedness, plugin_name, action_name,
		        config, enabled, created_at, updated_at
		 FROM bindings WHERE gesture_type = ? AND handedness = ?`,
		gestureType, handedness,
	)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	b, err = r.getOne(
		`SELECT id, gesture_type, handedness, plugin_name, action_name,
		        config, enabled, created_at, updated_at
		 FROM bindings WHERE gesture_type = ? AND handedness = ?`,
		gestureType, HandednessAny,
	)
	if errors.Is(err, ErrNotFound) {
		return nil, nil // Silent skip - gesture unbound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// List retrieves all bindings from the database.
func (r *BindingRepository) List() ([]*Binding, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture_type, handedness, plugin_name, action_name,
		        config, enabled, created_at, updated_at
		 FROM bindings ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bindings []*Binding
	for rows.Next() {
		b, err := scanBinding(rows.Scan)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bindings, nil
}

// Update updates an existing binding in the database.
func (r *BindingRepository) Update(b *Binding) error {
	b.UpdatedAt = time.Now()

	if b.Handedness == "" {
		b.Handedness = HandednessAny
	}
	config := b.Config
	if config == nil {
		config = json.RawMessage("{}")
	}

	enabled := 0
	if b.Enabled {
		enabled = 1
	}

	result, err := r.db.Exec(
		`UPDATE bindings SET gesture_type = ?, handedness = ?, plugin_name = ?,
		        action_name = ?, config = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		b.GestureType, b.Handedness, b.PluginName, b.ActionName,
		string(config), enabled, b.UpdatedAt, b.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a binding from the database by its ID.
func (r *BindingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bindings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *BindingRepository) getOne(query string, args ...any) (*Binding, error) {
	row := r.db.QueryRow(query, args...)
	b, err := scanBinding(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func scanBinding(scan func(dest ...any) error) (*Binding, error) {
	b := &Binding{}
	var config string
	var enabled int

	err := scan(&b.ID, &b.GestureType, &b.Handedness, &b.PluginName, &b.ActionName,
		&config, &enabled, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}

	b.Config = json.RawMessage(config)
	b.Enabled = enabled != 0
	return b, nil
}
