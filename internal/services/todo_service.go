package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/models"
)

// TodoPatch holds a partial update. Nil fields are left untouched; a
// non-nil pointer to the zero value ("" or false) is applied.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodoServiceProvider defines the interface for todo services. Every
// operation takes the resolved owner's id as an implicit filter; a todo
// owned by a different user behaves exactly like one that does not exist.
type TodoServiceProvider interface {
	Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (models.Todo, error)
	List(ctx context.Context, ownerID int64) ([]models.Todo, error)
	Get(ctx context.Context, ownerID, todoID int64) (models.Todo, error)
	Update(ctx context.Context, ownerID, todoID int64, patch TodoPatch) (models.Todo, error)
	Delete(ctx context.Context, ownerID, todoID int64) (bool, error)
}

// TodoService provides ownership-scoped CRUD over todo records.
type TodoService struct {
	db *sql.DB
}

// NewTodoService creates a new TodoService.
func NewTodoService(db *sql.DB) *TodoService {
	return &TodoService{db: db}
}

// Create inserts a new todo owned by ownerID.
func (s *TodoService) Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (models.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO todos(title, description, completed, user_id) VALUES(?, ?, ?, ?)",
		title, description, completed, ownerID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to read todo id: %w", err)
	}
	return s.Get(ctx, ownerID, id)
}

// List returns all todos owned by ownerID. Order is not guaranteed.
func (s *TodoService) List(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, description, completed, user_id, created_at FROM todos WHERE user_id = ?", ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

// Get retrieves a single todo by id, scoped to ownerID. ErrTodoNotFound
// covers both an absent row and one owned by someone else.
func (s *TodoService) Get(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	var todo models.Todo
	row := s.db.QueryRowContext(ctx,
		"SELECT id, title, description, completed, user_id, created_at FROM todos WHERE id = ? AND user_id = ?",
		todoID, ownerID)
	err := row.Scan(&todo.ID, &todo.Title, &todo.Description, &todo.Completed, &todo.UserID, &todo.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}
		return models.Todo{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return todo, nil
}

// Update applies the non-nil fields of patch to the todo, scoped to
// ownerID, and returns the updated record.
func (s *TodoService) Update(ctx context.Context, ownerID, todoID int64, patch TodoPatch) (models.Todo, error) {
	todo, err := s.Get(ctx, ownerID, todoID)
	if err != nil {
		return models.Todo{}, err
	}

	if patch.Title != nil {
		todo.Title = *patch.Title
	}
	if patch.Description != nil {
		todo.Description = patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE todos SET title = ?, description = ?, completed = ? WHERE id = ? AND user_id = ?",
		todo.Title, todo.Description, todo.Completed, todoID, ownerID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}

// Delete removes a todo scoped to ownerID and reports whether a row was
// actually deleted.
func (s *TodoService) Delete(ctx context.Context, ownerID, todoID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM todos WHERE id = ? AND user_id = ?", todoID, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to delete todo: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
