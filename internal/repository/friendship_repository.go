package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FriendshipRepository чтение связей дружбы.
type FriendshipRepository struct {
	db *sqlx.DB
}

// NewFriendshipRepository создаёт экземпляр репозитория.
func NewFriendshipRepository(db *sqlx.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// GetStatus возвращает статус записи requester -> addressee или пустую строку.
// Направление важно: обратная запись ищется отдельным вызовом.
func (r *FriendshipRepository) GetStatus(ctx context.Context, requesterID, addresseeID uuid.UUID) (string, error) {
	var status string
	query := `SELECT status FROM friendships WHERE requester_id = $1 AND addressee_id = $2`
	if err := r.db.GetContext(ctx, &status, query, requesterID, addresseeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("friendship repository: get status %w", err)
	}

	return status, nil
}
