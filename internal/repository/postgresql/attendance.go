package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/domain/attendance"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_id, date, in_time, in_location, in_latitude, in_longitude, in_photo_url,
	out_time, out_location, out_latitude, out_longitude, out_photo_url,
	status, remarks, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.InTime, &att.InLocation, &att.InLatitude, &att.InLongitude, &att.InPhotoURL,
		&att.OutTime, &att.OutLocation, &att.OutLatitude, &att.OutLongitude, &att.OutPhotoURL,
		&att.Status, &att.Remarks, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func scanAttendanceWithName(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.InTime, &att.InLocation, &att.InLatitude, &att.InLongitude, &att.InPhotoURL,
		&att.OutTime, &att.OutLocation, &att.OutLatitude, &att.OutLongitude, &att.OutPhotoURL,
		&att.Status, &att.Remarks, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The unique index on
// (employee_id, date) is the authoritative duplicate-check-in guard; a
// unique violation surfaces as ErrAlreadyCheckedIn.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (
			employee_id, date, in_time, in_location, in_latitude, in_longitude,
			in_photo_url, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.InTime,
		att.InLocation,
		att.InLatitude,
		att.InLongitude,
		att.InPhotoURL,
		att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// SetOutTime implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetOutTime(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET out_time = $1, out_location = $2, out_latitude = $3, out_longitude = $4,
			out_photo_url = $5, updated_at = NOW()
		WHERE id = $6
	`

	tag, err := q.Exec(ctx, query,
		att.OutTime, att.OutLocation, att.OutLatitude, att.OutLongitude,
		att.OutPhotoURL, att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to set out-time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// SetStatus implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetStatus(ctx context.Context, id string, status attendance.Status, remarks *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendance SET status = $1, remarks = $2, updated_at = NOW() WHERE id = $3`,
		status, remarks, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set attendance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, dr validator.DateRange) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListAll implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListAll(ctx context.Context, dr validator.DateRange) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date,
			   a.in_time, a.in_location, a.in_latitude, a.in_longitude, a.in_photo_url,
			   a.out_time, a.out_location, a.out_latitude, a.out_longitude, a.out_photo_url,
			   a.status, a.remarks, a.created_at, a.updated_at,
			   e.full_name
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE ($1::date IS NULL OR a.date >= $1)
		  AND ($2::date IS NULL OR a.date <= $2)
		ORDER BY a.date ASC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, dr.Start, dr.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendanceWithName(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// ListMonth implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListMonth(ctx context.Context, month time.Month, year int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.date,
			   a.in_time, a.in_location, a.in_latitude, a.in_longitude, a.in_photo_url,
			   a.out_time, a.out_location, a.out_latitude, a.out_longitude, a.out_photo_url,
			   a.status, a.remarks, a.created_at, a.updated_at,
			   e.full_name
		FROM attendance a
		JOIN employees e ON a.employee_id = e.id
		WHERE EXTRACT(MONTH FROM a.date) = $1 AND EXTRACT(YEAR FROM a.date) = $2
		ORDER BY a.date ASC, e.full_name ASC
	`

	rows, err := q.Query(ctx, query, int(month), year)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendanceWithName(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}
