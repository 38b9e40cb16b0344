package attendancerepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/village-coders/attendance-api/internal/adapters/postgres"
	"github.com/village-coders/attendance-api/internal/domain"
	"github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
)

// Repo is a Postgres implementation of attendancerepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const attendanceColumns = `
	id,
	player_id,
	date,
	session,
	status,
	recorded_by,
	recorded_at
`

// sessionOrder sorts sessions chronologically rather than alphabetically.
const sessionOrder = `
	CASE session
		WHEN 'morning' THEN 0
		WHEN 'afternoon' THEN 1
		ELSE 2
	END
`

func (r *Repo) Create(ctx context.Context, a attendancerepo.Attendance) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid attendance id: %w", err)
	}
	playerID, err := uuid.Parse(string(a.PlayerID))
	if err != nil {
		return fmt.Errorf("invalid player id: %w", err)
	}
	recordedBy, err := parseOptionalUserID(a.RecordedBy)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO attendance (`+attendanceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		id,
		playerID,
		domain.NormalizeDate(a.Date),
		string(a.Session),
		string(a.Status),
		recordedBy,
		a.RecordedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return attendancerepo.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, a attendancerepo.Attendance) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(a.ID))
	if err != nil {
		return fmt.Errorf("invalid attendance id: %w", err)
	}
	recordedBy, err := parseOptionalUserID(a.RecordedBy)
	if err != nil {
		return err
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE attendance
		SET status = $2,
		    recorded_by = $3,
		    recorded_at = $4
		WHERE id = $1
	`,
		id,
		string(a.Status),
		recordedBy,
		a.RecordedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return attendancerepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByKey(ctx context.Context, playerID domain.PlayerID, date time.Time, session domain.Session) (attendancerepo.Attendance, error) {
	if r.pool == nil {
		return attendancerepo.Attendance{}, errors.New("nil postgres pool")
	}
	pid, err := uuid.Parse(string(playerID))
	if err != nil {
		return attendancerepo.Attendance{}, attendancerepo.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE player_id = $1 AND date = $2 AND session = $3
	`, pid, domain.NormalizeDate(date), string(session))
	return scanAttendance(row)
}

func (r *Repo) List(ctx context.Context, f attendancerepo.Filter) ([]attendancerepo.Attendance, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}

	where := ""
	args := []any{}
	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		cond = fmt.Sprintf(cond, len(args))
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if f.Date != nil {
		appendCond("date = $%d", domain.NormalizeDate(*f.Date))
	}
	if f.Session != nil {
		appendCond("session = $%d", string(*f.Session))
	}
	if f.PlayerID != nil {
		pid, err := uuid.Parse(string(*f.PlayerID))
		if err != nil {
			return []attendancerepo.Attendance{}, nil
		}
		appendCond("player_id = $%d", pid)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		`+where+`
		ORDER BY date DESC, `+sessionOrder+` ASC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *Repo) ListRange(ctx context.Context, from, to time.Time) ([]attendancerepo.Attendance, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC, `+sessionOrder+` ASC, id ASC
	`, domain.NormalizeDate(from), domain.NormalizeDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *Repo) ListByPlayer(ctx context.Context, playerID domain.PlayerID, from, to *time.Time) ([]attendancerepo.Attendance, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	pid, err := uuid.Parse(string(playerID))
	if err != nil {
		return []attendancerepo.Attendance{}, nil
	}

	where := "WHERE player_id = $1"
	args := []any{pid}
	if from != nil {
		args = append(args, domain.NormalizeDate(*from))
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, domain.NormalizeDate(*to))
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		`+where+`
		ORDER BY date DESC, `+sessionOrder+` ASC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func (r *Repo) DeleteByPlayer(ctx context.Context, playerID domain.PlayerID) (int, error) {
	if r.pool == nil {
		return 0, errors.New("nil postgres pool")
	}
	pid, err := uuid.Parse(string(playerID))
	if err != nil {
		return 0, nil
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM attendance WHERE player_id = $1`, pid)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

func parseOptionalUserID(id *domain.UserID) (*uuid.UUID, error) {
	if id == nil {
		return nil, nil
	}
	uid, err := uuid.Parse(string(*id))
	if err != nil {
		return nil, fmt.Errorf("invalid recorded_by id: %w", err)
	}
	return &uid, nil
}

func collectAttendance(rows pgx.Rows) ([]attendancerepo.Attendance, error) {
	out := make([]attendancerepo.Attendance, 0)
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanAttendance(row interface {
	Scan(dest ...any) error
}) (attendancerepo.Attendance, error) {
	var (
		id         uuid.UUID
		playerID   uuid.UUID
		date       time.Time
		session    string
		status     string
		recordedBy *uuid.UUID
		recordedAt time.Time
	)
	if err := row.Scan(
		&id,
		&playerID,
		&date,
		&session,
		&status,
		&recordedBy,
		&recordedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendancerepo.Attendance{}, attendancerepo.ErrNotFound
		}
		return attendancerepo.Attendance{}, err
	}

	a := attendancerepo.Attendance{
		ID:         domain.AttendanceID(id.String()),
		PlayerID:   domain.PlayerID(playerID.String()),
		Date:       domain.NormalizeDate(date),
		Session:    domain.Session(session),
		Status:     domain.Status(status),
		RecordedAt: recordedAt.UTC(),
	}
	if recordedBy != nil {
		uid := domain.UserID(recordedBy.String())
		a.RecordedBy = &uid
	}
	return a, nil
}
