package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Upsert records a course, updating its directory and state file when the
// name is already cataloged.
func (s *Store) Upsert(ctx context.Context, name, directory, stateFile string) (*Course, error) {
	if name == "" {
		return nil, errors.New("registry: course name required")
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO courses (name, directory, state_file, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			directory = excluded.directory,
			state_file = excluded.state_file,
			updated_at = excluded.updated_at
	`, name, directory, stateFile, now, now)
	if err != nil {
		return nil, fmt.Errorf("registry: upsert course %q: %w", name, err)
	}
	return s.Get(ctx, name)
}

// Get fetches one catalog entry by course name.
func (s *Store) Get(ctx context.Context, name string) (*Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, directory, state_file, created_at, updated_at
		FROM courses WHERE name = ?
	`, name)
	course, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return course, err
}

// List returns every cataloged course ordered by name.
func (s *Store) List(ctx context.Context) ([]*Course, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, directory, state_file, created_at, updated_at
		FROM courses ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("registry: list courses: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// Remove drops a course from the catalog. The course's state file and files
// on disk are untouched.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("registry: remove course %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCourse(row rowScanner) (*Course, error) {
	var course Course
	var created, updated string
	if err := row.Scan(&course.ID, &course.Name, &course.Directory, &course.StateFile, &created, &updated); err != nil {
		return nil, err
	}
	course.CreatedAt, _ = time.Parse(time.RFC3339, created)
	course.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &course, nil
}
