package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/activity"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepository{db: db}
}

const activityColumns = `
	id, employee_id, customer_name, remarks, activity_datetime,
	location, latitude, longitude, created_at, updated_at
`

func scanActivity(row pgx.Row) (activity.Activity, error) {
	var act activity.Activity
	err := row.Scan(
		&act.ID, &act.EmployeeID, &act.CustomerName, &act.Remarks, &act.ActivityDatetime,
		&act.Location, &act.Latitude, &act.Longitude, &act.CreatedAt, &act.UpdatedAt,
	)
	return act, err
}

// Create implements activity.ActivityRepository.
func (r *activityRepository) Create(ctx context.Context, act activity.Activity) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activities (
			employee_id, customer_name, remarks, activity_datetime, location, latitude, longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		act.EmployeeID,
		act.CustomerName,
		act.Remarks,
		act.ActivityDatetime,
		act.Location,
		act.Latitude,
		act.Longitude,
	).Scan(&act.ID, &act.CreatedAt, &act.UpdatedAt)

	if err != nil {
		return activity.Activity{}, fmt.Errorf("failed to create activity: %w", err)
	}

	return act, nil
}

// GetByID implements activity.ActivityRepository.
func (r *activityRepository) GetByID(ctx context.Context, id string) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`

	act, err := scanActivity(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return activity.Activity{}, activity.ErrActivityNotFound
		}
		return activity.Activity{}, fmt.Errorf("failed to get activity by id: %w", err)
	}

	return act, nil
}

// Update implements activity.ActivityRepository.
func (r *activityRepository) Update(ctx context.Context, act activity.Activity) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE activities
		SET customer_name = $1, remarks = $2, location = $3, latitude = $4,
			longitude = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		act.CustomerName, act.Remarks, act.Location, act.Latitude, act.Longitude, act.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return activity.ErrActivityNotFound
	}

	return nil
}

// Delete implements activity.ActivityRepository.
func (r *activityRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return activity.ErrActivityNotFound
	}

	return nil
}

// ListByEmployee implements activity.ActivityRepository.
func (r *activityRepository) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR activity_datetime::date >= $2)
		  AND ($3::date IS NULL OR activity_datetime::date <= $3)
		ORDER BY activity_datetime ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities by employee: %w", err)
	}
	defer rows.Close()

	activities := make([]activity.Activity, 0)
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, act)
	}

	return activities, rows.Err()
}

// ListAll implements activity.ActivityRepository.
func (r *activityRepository) ListAll(ctx context.Context, date *time.Time) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.customer_name, a.remarks, a.activity_datetime,
			   a.location, a.latitude, a.longitude, a.created_at, a.updated_at,
			   e.full_name
		FROM activities a
		JOIN employees e ON a.employee_id = e.id
		WHERE ($1::date IS NULL OR a.activity_datetime::date = $1)
		ORDER BY a.activity_datetime ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]activity.Activity, 0)
	for rows.Next() {
		var act activity.Activity
		err := rows.Scan(
			&act.ID, &act.EmployeeID, &act.CustomerName, &act.Remarks, &act.ActivityDatetime,
			&act.Location, &act.Latitude, &act.Longitude, &act.CreatedAt, &act.UpdatedAt,
			&act.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, act)
	}

	return activities, rows.Err()
}
