package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"aidiary/internal/diary/domain/entities"
	"aidiary/internal/diary/ports/repositories"
	"aidiary/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrFindDiaryByDate = "failed to find diary by date"
	ErrGetDiaryByID    = "failed to get diary by id"
	ErrListDays        = "failed to list diary days in month"
	ErrListDiaries     = "failed to list diaries"
	ErrCreateDiary     = "failed to create diary"
	ErrUpdateDiary     = "failed to update diary"
	ErrDeleteDiary     = "failed to delete diary"
	ErrScanDiary       = "failed to scan diary"
	ErrIterateRows     = "error iterating rows"
)

const diaryColumns = `id, title, original_content, ai_content, created_at, updated_at`

// DiaryRepository реализует интерфейс repositories.DiaryRepository.
type DiaryRepository struct {
	pool DB
}

// NewDiaryRepository создает новый репозиторий дневника.
func NewDiaryRepository(pool DB) repositories.DiaryRepository {
	return &DiaryRepository{pool: pool}
}

// FindByDate возвращает запись за UTC-сутки, в которые попадает day.
// При нескольких записях за день берется самая поздняя.
func (r *DiaryRepository) FindByDate(ctx context.Context, day time.Time) (*entities.Diary, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.FindByDate"))

	start, end := entities.DayRange(day)
	log.Debug(ctx, "finding diary by date", zap.Time("day", start))

	var diary entities.Diary
	err := r.pool.QueryRow(ctx,
		`SELECT `+diaryColumns+`
         FROM diaries
         WHERE created_at >= $1 AND created_at < $2
         ORDER BY created_at DESC
         LIMIT 1`,
		start, end,
	).Scan(&diary.ID, &diary.Title, &diary.OriginalContent, &diary.AIContent, &diary.CreatedAt, &diary.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "no diary for date", zap.Time("day", start))
			return nil, nil
		}
		log.Error(ctx, ErrFindDiaryByDate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFindDiaryByDate, err)
	}

	return &diary, nil
}

// GetByID получает запись по идентификатору.
func (r *DiaryRepository) GetByID(ctx context.Context, id int64) (*entities.Diary, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.GetByID"))
	log.Debug(ctx, "getting diary", zap.Int64("diaryID", id))

	var diary entities.Diary
	err := r.pool.QueryRow(ctx,
		`SELECT `+diaryColumns+` FROM diaries WHERE id = $1`,
		id,
	).Scan(&diary.ID, &diary.Title, &diary.OriginalContent, &diary.AIContent, &diary.CreatedAt, &diary.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "diary not found", zap.Int64("diaryID", id))
			return nil, nil
		}
		log.Error(ctx, ErrGetDiaryByID, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetDiaryByID, err)
	}

	return &diary, nil
}

// ListDaysInMonth возвращает уникальные номера дней месяца, за которые есть записи.
func (r *DiaryRepository) ListDaysInMonth(ctx context.Context, year int, month time.Month) ([]int, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.ListDaysInMonth"))
	log.Debug(ctx, "listing diary days", zap.Int("year", year), zap.Int("month", int(month)))

	start, end := entities.MonthRange(year, month)

	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT EXTRACT(DAY FROM created_at AT TIME ZONE 'UTC')::int AS day
         FROM diaries
         WHERE created_at >= $1 AND created_at < $2
         ORDER BY day`,
		start, end,
	)
	if err != nil {
		log.Error(ctx, ErrListDays, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDays, err)
	}
	defer rows.Close()

	days := make([]int, 0)
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			log.Error(ctx, ErrScanDiary, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanDiary, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return days, nil
}

// ListAll возвращает все записи, отсортированные по created_at по убыванию.
func (r *DiaryRepository) ListAll(ctx context.Context) ([]*entities.Diary, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.ListAll"))
	log.Debug(ctx, "listing diaries")

	rows, err := r.pool.Query(ctx,
		`SELECT `+diaryColumns+` FROM diaries ORDER BY created_at DESC`,
	)
	if err != nil {
		log.Error(ctx, ErrListDiaries, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDiaries, err)
	}
	defer rows.Close()

	diaries := make([]*entities.Diary, 0)
	for rows.Next() {
		var diary entities.Diary
		err := rows.Scan(&diary.ID, &diary.Title, &diary.OriginalContent, &diary.AIContent, &diary.CreatedAt, &diary.UpdatedAt)
		if err != nil {
			log.Error(ctx, ErrScanDiary, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanDiary, err)
		}
		diaries = append(diaries, &diary)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return diaries, nil
}

// Create сохраняет новую запись; created_at и updated_at задает вызывающий.
func (r *DiaryRepository) Create(ctx context.Context, diary *entities.Diary) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.Create"))
	log.Debug(ctx, "creating diary", zap.Time("day", diary.CreatedAt))

	var diaryID int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO diaries (title, original_content, ai_content, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id`,
		diary.Title, diary.OriginalContent, diary.AIContent, diary.CreatedAt, diary.UpdatedAt,
	).Scan(&diaryID)

	if err != nil {
		log.Error(ctx, ErrCreateDiary, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateDiary, err)
	}

	log.Debug(ctx, "diary created", zap.Int64("diaryID", diaryID))
	return diaryID, nil
}

// Update вливает непустые поля patch в запись по id.
// Совпадение нуля строк не считается ошибкой: успех означает лишь,
// что база приняла запрос.
func (r *DiaryRepository) Update(ctx context.Context, id int64, patch entities.DiaryPatch) error {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.Update"))
	log.Debug(ctx, "updating diary", zap.Int64("diaryID", id))

	result, err := r.pool.Exec(ctx,
		`UPDATE diaries
         SET title = COALESCE($2, title),
             original_content = COALESCE($3, original_content),
             ai_content = COALESCE($4, ai_content),
             updated_at = COALESCE($5, updated_at)
         WHERE id = $1`,
		id, patch.Title, patch.OriginalContent, patch.AIContent, patch.UpdatedAt,
	)
	if err != nil {
		log.Error(ctx, ErrUpdateDiary, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateDiary, err)
	}

	log.Debug(ctx, "diary updated", zap.Int64("rowsAffected", result.RowsAffected()))
	return nil
}

// Delete удаляет запись по идентификатору.
func (r *DiaryRepository) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "DiaryRepository.Delete"))
	log.Debug(ctx, "deleting diary", zap.Int64("diaryID", id))

	result, err := r.pool.Exec(ctx, `DELETE FROM diaries WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, ErrDeleteDiary, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDiary, err)
	}

	log.Debug(ctx, "diary deleted", zap.Int64("rowsAffected", result.RowsAffected()))
	return nil
}
