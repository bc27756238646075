package salon

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SC-BookingService/pkg/psqlbuilder"
)

const pqUniqueViolation = "23505"

// ownerIndex имя уникального индекса "один салон на владельца"
const ownerIndex = "uniq_salons_owner"

var salonColumns = []string{
	"id",
	"owner_id",
	"name",
	"address",
	"landmark",
	"city",
	"state",
	"description",
	"services",
	"is_authorized",
	"is_paid",
	"last_payment_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с салонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый салон
// Салон создаётся невидимым: is_authorized=false, is_paid=false
func (r *Repository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	salon.ID = uuid.New().String()

	servicesJSON, err := json.Marshal(salon.Services)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal services: %v", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Insert("salons").
		Columns(
			"id",
			"owner_id",
			"name",
			"address",
			"landmark",
			"city",
			"state",
			"description",
			"services",
		).
		Values(
			salon.ID,
			salon.OwnerID,
			salon.Name,
			salon.Address,
			salon.Landmark,
			salon.City,
			salon.State,
			salon.Description,
			servicesJSON,
		).
		Suffix("RETURNING is_authorized, is_paid, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&salon.IsAuthorized,
		&salon.IsPaid,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isOwnerViolation(err) {
			return nil, ErrOwnerHasSalon
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return salon, nil
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Salon, error) {
	return r.getByColumn(ctx, "id", id, "GetByID")
}

// GetByOwnerID получает салон владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID string) (*domain.Salon, error) {
	return r.getByColumn(ctx, "owner_id", ownerID, "GetByOwnerID")
}

func (r *Repository) getByColumn(ctx context.Context, column, value, method string) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(salonColumns...).
		From("salons").
		Where(squirrel.Eq{column: value}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	salon, err := scanSalonRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan salon: %v", ErrScanRow, method, err)
	}

	return salon, nil
}

// List получает список салонов
// visibleOnly=true ограничивает выборку публично видимыми (is_authorized AND is_paid)
func (r *Repository) List(ctx context.Context, filter domain.SalonFilter, visibleOnly bool) ([]*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(salonColumns...).
		From("salons").
		OrderBy("name ASC")

	if visibleOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_authorized": true, "is_paid": true})
	}
	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city": *filter.City})
	}
	if filter.State != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"state": *filter.State})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSalons(rows)
}

// UpdateProfile обновляет поля профиля салона
// Флаги is_authorized и is_paid здесь не трогаются - ими управляет только администратор
func (r *Repository) UpdateProfile(ctx context.Context, salon *domain.Salon) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	servicesJSON, err := json.Marshal(salon.Services)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - marshal services: %v", ErrEncodeServices, err)
	}

	query, args, err := psqlbuilder.Update("salons").
		Set("name", salon.Name).
		Set("address", salon.Address).
		Set("landmark", salon.Landmark).
		Set("city", salon.City).
		Set("state", salon.State).
		Set("description", salon.Description).
		Set("services", servicesJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": salon.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

// SetAuthorization выставляет флаг проверки салона (только администратор)
func (r *Repository) SetAuthorization(ctx context.Context, id string, authorized bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salons").
		Set("is_authorized", authorized).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAuthorization - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetAuthorization")
}

// SetPaid выставляет флаг оплаты (только администратор)
// При включении фиксируется время подтверждения платежа
func (r *Repository) SetPaid(ctx context.Context, id string, paid bool, paidAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("salons").
		Set("is_paid", paid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if paidAt != nil {
		updateBuilder = updateBuilder.Set("last_payment_at", *paidAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaid - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetPaid")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrSalonNotFound
	}

	return nil
}

// scanSalonRow сканирует одну строку результата в салон
func scanSalonRow(row *sql.Row) (*domain.Salon, error) {
	var salon domain.Salon
	var servicesJSON []byte
	var lastPaymentAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&salon.ID,
		&salon.OwnerID,
		&salon.Name,
		&salon.Address,
		&salon.Landmark,
		&salon.City,
		&salon.State,
		&salon.Description,
		&servicesJSON,
		&salon.IsAuthorized,
		&salon.IsPaid,
		&lastPaymentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeSalon(&salon, servicesJSON, lastPaymentAt, createdAt, updatedAt); err != nil {
		return nil, err
	}

	return &salon, nil
}

// scanSalons сканирует результаты запроса в слайс салонов
func scanSalons(rows *sql.Rows) ([]*domain.Salon, error) {
	salons := make([]*domain.Salon, 0)

	for rows.Next() {
		var salon domain.Salon
		var servicesJSON []byte
		var lastPaymentAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&salon.ID,
			&salon.OwnerID,
			&salon.Name,
			&salon.Address,
			&salon.Landmark,
			&salon.City,
			&salon.State,
			&salon.Description,
			&servicesJSON,
			&salon.IsAuthorized,
			&salon.IsPaid,
			&lastPaymentAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSalons - scan row: %v", ErrScanRow, err)
		}

		if err := decodeSalon(&salon, servicesJSON, lastPaymentAt, createdAt, updatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanSalons - decode salon: %v", ErrScanRow, err)
		}

		salons = append(salons, &salon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSalons - rows error: %v", ErrScanRow, err)
	}

	return salons, nil
}

// decodeSalon заполняет поля салона из сырых значений БД
func decodeSalon(salon *domain.Salon, servicesJSON []byte, lastPaymentAt, createdAt, updatedAt sql.NullTime) error {
	if len(servicesJSON) > 0 {
		if err := json.Unmarshal(servicesJSON, &salon.Services); err != nil {
			return err
		}
	}
	if salon.Services == nil {
		salon.Services = []domain.Service{}
	}

	if lastPaymentAt.Valid {
		salon.LastPaymentAt = &lastPaymentAt.Time
	}
	salon.CreatedAt = createdAt.Time
	salon.UpdatedAt = updatedAt.Time

	return nil
}

// isOwnerViolation проверяет нарушение уникальности владельца
func isOwnerViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == ownerIndex
	}
	return false
}
