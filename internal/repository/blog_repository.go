package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/snipstash-backend/internal/models"
)

// ErrBlogNotFound возвращается, когда закладка не найдена.
var ErrBlogNotFound = errors.New("blog not found")

const blogColumns = "id, user_id, title, url, description, category, tags, notes, is_read, created_at, updated_at"

// BlogFilter описывает необязательные фильтры листинга закладок.
type BlogFilter struct {
	Category string // точное совпадение
	IsRead   *bool  // nil — без фильтра
	Search   string // подстрока в заголовке, описании или любом теге
}

// BlogRepository отвечает за работу с таблицей blogs.
type BlogRepository struct {
	db *sqlx.DB
}

// NewBlogRepository создаёт экземпляр репозитория.
func NewBlogRepository(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// Create сохраняет новую закладку и заполняет серверные поля.
func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) error {
	query := `
		INSERT INTO blogs (user_id, title, url, description, category, tags, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_read, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		b.UserID, b.Title, b.URL, b.Description, b.Category, pq.Array(b.Tags), b.Notes,
	).Scan(&b.ID, &b.IsRead, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("blog repository: create: %w", err)
	}

	return nil
}

// GetByID возвращает закладку по идентификатору без проверки владельца.
func (r *BlogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	b, err := scanBlog(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("blog repository: get by id: %w", err)
	}

	return b, nil
}

// List возвращает закладки владельца по фильтру, новые записи первыми.
func (r *BlogRepository) List(ctx context.Context, userID uuid.UUID, filter BlogFilter) ([]models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		query += fmt.Sprintf(" AND is_read = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (title ILIKE $%d OR description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE $%d))",
			n, n, n,
		)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("blog repository: list: %w", err)
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("blog repository: scan: %w", err)
		}
		blogs = append(blogs, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("blog repository: rows: %w", err)
	}

	return blogs, nil
}

// Update заменяет значения только переданных полей. nil означает "оставить как есть".
func (r *BlogRepository) Update(ctx context.Context, id uuid.UUID, title, url, description, category, notes *string, tags []string, isRead *bool) (*models.Blog, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if title != nil {
		appendSet("title", *title)
	}
	if url != nil {
		appendSet("url", *url)
	}
	if description != nil {
		appendSet("description", *description)
	}
	if category != nil {
		appendSet("category", *category)
	}
	if notes != nil {
		appendSet("notes", *notes)
	}
	if tags != nil {
		appendSet("tags", pq.Array(tags))
	}
	if isRead != nil {
		appendSet("is_read", *isRead)
	}

	query := `UPDATE blogs SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + blogColumns

	b, err := scanBlog(r.db.QueryRowxContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, fmt.Errorf("blog repository: update: %w", err)
	}

	return b, nil
}

// Delete безвозвратно удаляет закладку.
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("blog repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBlogNotFound
	}
	return nil
}

// scanBlog читает строку результата, разворачивая text[] в срез тегов.
func scanBlog(row rowScanner) (*models.Blog, error) {
	var b models.Blog
	var tags pq.StringArray

	if err := row.Scan(
		&b.ID, &b.UserID, &b.Title, &b.URL, &b.Description, &b.Category,
		&tags, &b.Notes, &b.IsRead, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Tags = []string(tags)
	return &b, nil
}
