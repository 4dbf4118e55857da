package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/leave"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `
	id, employee_id, start_date, end_date, leave_type, reason, attachment_url,
	status, approved_by, approved_at, created_at, updated_at
`

func scanLeave(row pgx.Row) (leave.LeaveApplication, error) {
	var app leave.LeaveApplication
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.StartDate, &app.EndDate, &app.LeaveType,
		&app.Reason, &app.AttachmentURL, &app.Status, &app.ApprovedBy, &app.ApprovedAt,
		&app.CreatedAt, &app.UpdatedAt,
	)
	return app, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, app leave.LeaveApplication) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_applications (
			employee_id, start_date, end_date, leave_type, reason, attachment_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		app.EmployeeID,
		app.StartDate,
		app.EndDate,
		app.LeaveType,
		app.Reason,
		app.AttachmentURL,
		app.Status,
	).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		return leave.LeaveApplication{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return app, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_applications WHERE id = $1`

	app, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveApplication{}, leave.ErrLeaveNotFound
		}
		return leave.LeaveApplication{}, fmt.Errorf("failed to get leave application by id: %w", err)
	}

	return app, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepository) Update(ctx context.Context, app leave.LeaveApplication) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET start_date = $1, end_date = $2, leave_type = $3, reason = $4,
			attachment_url = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		app.StartDate, app.EndDate, app.LeaveType, app.Reason, app.AttachmentURL, app.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// SetStatus implements leave.LeaveRepository.
func (r *leaveRepository) SetStatus(ctx context.Context, id string, status leave.LeaveStatus, approvedBy string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE leave_applications
		 SET status = $1, approved_by = $2, approved_at = NOW(), updated_at = NOW()
		 WHERE id = $3`,
		status, approvedBy, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}

	return nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_applications
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR start_date >= $2)
		  AND ($3::date IS NULL OR end_date <= $3)
		ORDER BY start_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications by employee: %w", err)
	}
	defer rows.Close()

	apps := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		app, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}

// ListAll implements leave.LeaveRepository.
func (r *leaveRepository) ListAll(ctx context.Context, status *leave.LeaveStatus, dr validator.DateRange) ([]leave.LeaveApplication, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT l.id, l.employee_id, l.start_date, l.end_date, l.leave_type, l.reason,
			   l.attachment_url, l.status, l.approved_by, l.approved_at,
			   l.created_at, l.updated_at,
			   e.full_name
		FROM leave_applications l
		JOIN employees e ON l.employee_id = e.id
		WHERE ($1::text IS NULL OR l.status = $1)
		  AND ($2::date IS NULL OR l.start_date >= $2)
		  AND ($3::date IS NULL OR l.end_date <= $3)
		ORDER BY l.start_date ASC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, status, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	apps := make([]leave.LeaveApplication, 0)
	for rows.Next() {
		var app leave.LeaveApplication
		err := rows.Scan(
			&app.ID, &app.EmployeeID, &app.StartDate, &app.EndDate, &app.LeaveType,
			&app.Reason, &app.AttachmentURL, &app.Status, &app.ApprovedBy, &app.ApprovedAt,
			&app.CreatedAt, &app.UpdatedAt,
			&app.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, app)
	}

	return apps, rows.Err()
}
