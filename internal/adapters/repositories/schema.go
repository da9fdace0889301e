package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the database schema for the given dialect.
func InitSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range d.schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type UserSeed struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"user_name"`
	Email  string `json:"user_email"`
	Role   string `json:"role"`
}

// Populate user_table from a JSON file. Existing ids are updated in place.
func SeedUsersFromJSON(ctx context.Context, db *sql.DB, d Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed users: read %q: %w", jsonPath, err)
	}

	var data []UserSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed users: parse json: %w", err)
	}

	return SeedUsers(ctx, db, d, data)
}

func SeedUsers(ctx context.Context, db *sql.DB, d Dialect, data []UserSeed) error {
	rows := make([]UserSeed, 0, len(data))
	for i, item := range data {
		if item.UserID <= 0 {
			return fmt.Errorf("seed users: invalid user_id at index %d: %d", i+1, item.UserID)
		}

		role, ok := domain.ParseRole(item.Role)
		if !ok {
			return fmt.Errorf("seed users: invalid role at index %d: %q", i+1, item.Role)
		}

		name := strings.TrimSpace(item.Name)
		email := strings.TrimSpace(item.Email)
		if name == "" || email == "" {
			return fmt.Errorf("seed users: item at index %d: name and email cannot be empty", i+1)
		}
		rows = append(rows, UserSeed{UserID: item.UserID, Name: name, Email: email, Role: string(role)})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed users: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO user_table (
		user_id,
		user_name,
		user_email,
		role
	)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (user_id) DO UPDATE
	SET user_name = EXCLUDED.user_name,
		user_email = EXCLUDED.user_email,
		role = EXCLUDED.role;
	`
	stmt, err := tx.PrepareContext(ctx, d.rebind(query))
	if err != nil {
		return fmt.Errorf("seed users: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, u := range rows {
		if _, err := stmt.ExecContext(ctx, u.UserID, u.Name, u.Email, u.Role); err != nil {
			return fmt.Errorf("seed users: insert user_id=%d: %w", u.UserID, err)
		}
	}

	if d.afterSeed != "" {
		if _, err := tx.ExecContext(ctx, d.afterSeed); err != nil {
			return fmt.Errorf("seed users: reset sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed users: commit tx: %w", err)
	}

	return nil
}
