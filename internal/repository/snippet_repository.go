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

// ErrSnippetNotFound возвращается, когда сниппет не найден.
var ErrSnippetNotFound = errors.New("snippet not found")

const snippetColumns = "id, user_id, title, code, description, language, tags, created_at, updated_at"

// SnippetFilter описывает необязательные фильтры листинга сниппетов.
// Все заданные условия объединяются через AND.
type SnippetFilter struct {
	Title    string   // подстрока в заголовке, без учёта регистра
	Language string   // точное совпадение
	Tags     []string // запись должна содержать все перечисленные теги
}

// SnippetSearch описывает параметры поиска по сниппетам.
type SnippetSearch struct {
	Query    string // подстрока в заголовке, коде или описании
	Language string // точное совпадение
	Tag      string // запись должна содержать тег
}

// SnippetRepository отвечает за работу с таблицей snippets.
type SnippetRepository struct {
	db *sqlx.DB
}

// NewSnippetRepository создаёт экземпляр репозитория.
func NewSnippetRepository(db *sqlx.DB) *SnippetRepository {
	return &SnippetRepository{db: db}
}

// Create сохраняет новый сниппет и заполняет серверные поля.
func (r *SnippetRepository) Create(ctx context.Context, s *models.Snippet) error {
	query := `
		INSERT INTO snippets (user_id, title, code, description, language, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		s.UserID, s.Title, s.Code, s.Description, s.Language, pq.Array(s.Tags),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("snippet repository: create: %w", err)
	}

	return nil
}

// GetByID возвращает сниппет по идентификатору без проверки владельца:
// проверка принадлежности выполняется на уровне сервиса.
func (r *SnippetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Snippet, error) {
	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE id = $1`

	s, err := scanSnippet(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnippetNotFound
		}
		return nil, fmt.Errorf("snippet repository: get by id: %w", err)
	}

	return s, nil
}

// List возвращает сниппеты владельца по фильтру, новые записи первыми.
func (r *SnippetRepository) List(ctx context.Context, userID uuid.UUID, filter SnippetFilter) ([]models.Snippet, error) {
	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Language != "" {
		args = append(args, filter.Language)
		query += fmt.Sprintf(" AND language = $%d", len(args))
	}
	if len(filter.Tags) > 0 {
		args = append(args, pq.Array(filter.Tags))
		query += fmt.Sprintf(" AND tags @> $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	return r.selectSnippets(ctx, query, args...)
}

// Search возвращает сниппеты владельца по поисковому запросу,
// недавно обновлённые первыми.
func (r *SnippetRepository) Search(ctx context.Context, userID uuid.UUID, search SnippetSearch) ([]models.Snippet, error) {
	query := `SELECT ` + snippetColumns + ` FROM snippets WHERE user_id = $1`
	args := []interface{}{userID}

	if search.Query != "" {
		args = append(args, "%"+search.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR code ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}
	if search.Language != "" {
		args = append(args, search.Language)
		query += fmt.Sprintf(" AND language = $%d", len(args))
	}
	if search.Tag != "" {
		args = append(args, pq.Array([]string{search.Tag}))
		query += fmt.Sprintf(" AND tags @> $%d", len(args))
	}

	query += " ORDER BY updated_at DESC"

	return r.selectSnippets(ctx, query, args...)
}

// DistinctLanguages возвращает список языков сниппетов владельца для фильтров UI.
func (r *SnippetRepository) DistinctLanguages(ctx context.Context, userID uuid.UUID) ([]string, error) {
	languages := []string{}
	query := `SELECT DISTINCT language FROM snippets WHERE user_id = $1 ORDER BY language`
	if err := r.db.SelectContext(ctx, &languages, query, userID); err != nil {
		return nil, fmt.Errorf("snippet repository: distinct languages: %w", err)
	}
	return languages, nil
}

// Update заменяет значения только переданных полей. nil означает "оставить как есть".
func (r *SnippetRepository) Update(ctx context.Context, id uuid.UUID, title, code, description, language *string, tags []string) (*models.Snippet, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if title != nil {
		appendSet("title", *title)
	}
	if code != nil {
		appendSet("code", *code)
	}
	if description != nil {
		appendSet("description", *description)
	}
	if language != nil {
		appendSet("language", *language)
	}
	if tags != nil {
		appendSet("tags", pq.Array(tags))
	}

	query := `UPDATE snippets SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + snippetColumns

	s, err := scanSnippet(r.db.QueryRowxContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnippetNotFound
		}
		return nil, fmt.Errorf("snippet repository: update: %w", err)
	}

	return s, nil
}

// Delete безвозвратно удаляет сниппет.
func (r *SnippetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("snippet repository: delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSnippetNotFound
	}
	return nil
}

// rowScanner покрывает и *sqlx.Row, и *sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSnippet читает строку результата, разворачивая text[] в срез тегов.
func scanSnippet(row rowScanner) (*models.Snippet, error) {
	var s models.Snippet
	var tags pq.StringArray

	if err := row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Code, &s.Description,
		&s.Language, &tags, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}

	s.Tags = []string(tags)
	return &s, nil
}

func (r *SnippetRepository) selectSnippets(ctx context.Context, query string, args ...interface{}) ([]models.Snippet, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("snippet repository: select: %w", err)
	}
	defer rows.Close()

	snippets := []models.Snippet{}
	for rows.Next() {
		s, err := scanSnippet(rows)
		if err != nil {
			return nil, fmt.Errorf("snippet repository: scan: %w", err)
		}
		snippets = append(snippets, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snippet repository: rows: %w", err)
	}

	return snippets, nil
}
