package billing

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingDesk/internal/domain"
	"github.com/m04kA/SMC-ParkingDesk/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingDesk/pkg/psqlbuilder"
)

const tableName = "billing_journal"

var columns = []string{
	"id",
	"transaction_id",
	"vehicle_id",
	"registration",
	"vehicle_type",
	"time_in",
	"time_out",
	"backend_bill_amt",
	"total_amount",
	"multiplier",
	"base_charge",
	"adjusted_charge",
	"billable_minutes",
	"fallback",
	"requoted",
	"bill_update",
	"bill_update_error",
	"created_at",
}

// Repository журнал выездов в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись о выезде
func (r *Repository) Create(ctx context.Context, entry *domain.BillingJournalEntry) (*domain.BillingJournalEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := insertQuery(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// List возвращает последние limit записей, новые первыми
func (r *Repository) List(ctx context.Context, limit uint64) ([]*domain.BillingJournalEntry, error) {
	query, args, err := listQuery("", limit)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "List", query, args)
}

// ListByRegistration возвращает записи по госномеру, новые первыми
func (r *Repository) ListByRegistration(ctx context.Context, registration string, limit uint64) ([]*domain.BillingJournalEntry, error) {
	query, args, err := listQuery(registration, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRegistration - build select query: %v", ErrBuildQuery, err)
	}
	return r.query(ctx, "ListByRegistration", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.BillingJournalEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	entries := make([]*domain.BillingJournalEntry, 0)
	for rows.Next() {
		var (
			e               domain.BillingJournalEntry
			vehicleType     string
			billUpdate      string
			billUpdateError sql.NullString
			createdAt       sql.NullTime
		)
		if err := rows.Scan(
			&e.ID,
			&e.TransactionID,
			&e.VehicleID,
			&e.Registration,
			&vehicleType,
			&e.TimeIn,
			&e.TimeOut,
			&e.BackendBillAmt,
			&e.TotalAmount,
			&e.Multiplier,
			&e.BaseCharge,
			&e.AdjustedCharge,
			&e.BillableMinutes,
			&e.Fallback,
			&e.Requoted,
			&billUpdate,
			&billUpdateError,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan entry: %v", ErrScanRow, op, err)
		}

		e.VehicleType = domain.VehicleType(vehicleType)
		e.BillUpdate = domain.BillUpdateStatus(billUpdate)
		if billUpdateError.Valid {
			e.BillUpdateError = &billUpdateError.String
		}
		e.CreatedAt = createdAt.Time
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return entries, nil
}

func insertQuery(e *domain.BillingJournalEntry) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns(columns[1 : len(columns)-1]...).
		Values(
			e.TransactionID,
			e.VehicleID,
			e.Registration,
			string(e.VehicleType),
			e.TimeIn,
			e.TimeOut,
			e.BackendBillAmt,
			e.TotalAmount,
			e.Multiplier,
			e.BaseCharge,
			e.AdjustedCharge,
			e.BillableMinutes,
			e.Fallback,
			e.Requoted,
			string(e.BillUpdate),
			e.BillUpdateError,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func listQuery(registration string, limit uint64) (string, []interface{}, error) {
	builder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	if registration != "" {
		builder = builder.Where(squirrel.Eq{"registration": registration})
	}
	return builder.ToSql()
}
