package repository

import (
	"database/sql"
	"fmt"
	"time"

	"campusclubs/internal/db"

	"github.com/google/uuid"
)

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(database *sql.DB) *CommentRepository {
	return &CommentRepository{DB: database}
}

func (r *CommentRepository) CreateComment(comment *db.Comment) error {
	comment.UID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO comments (uid, event_uid, user_uid, parent_uid, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.Exec(query,
		comment.UID, comment.EventUID, comment.UserUID, comment.ParentUID, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting comment: %w", err)
	}
	return nil
}

// CommentWithAuthor pairs a comment row with its author's display name.
type CommentWithAuthor struct {
	db.Comment
	UserName string
}

// ListByEvent returns the event's comments oldest first, with author names.
func (r *CommentRepository) ListByEvent(eventUID string) ([]CommentWithAuthor, error) {
	query := `
		SELECT c.uid, c.event_uid, c.user_uid, c.parent_uid, c.content, c.created_at, u.name
		FROM comments c
		JOIN users u ON u.uid = c.user_uid
		WHERE c.event_uid = $1
		ORDER BY c.created_at`
	rows, err := r.DB.Query(query, eventUID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(&c.UID, &c.EventUID, &c.UserUID, &c.ParentUID, &c.Content, &c.CreatedAt, &c.UserName); err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating comments: %w", err)
	}
	return comments, nil
}
