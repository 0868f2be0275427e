package schedule

import (
	"context"
	"database/sql"

	"foothill-backend/lib/scrapers/foothill"

	_ "modernc.org/sqlite"
)

// Store persists class rows keyed by CRN. A CRN showing up again with
// different fields is not a conflict worth reporting, the new values
// simply win and the row's updated_at is refreshed.
type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

const upsertClass = `
INSERT INTO classes (
    crn, quarter, subject, course, title,
    section, instructor, days_time, room, modality, updated_at
)
VALUES (?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
ON CONFLICT(crn) DO UPDATE SET
    quarter=excluded.quarter,
    subject=excluded.subject,
    course=excluded.course,
    title=excluded.title,
    section=excluded.section,
    instructor=excluded.instructor,
    days_time=excluded.days_time,
    room=excluded.room,
    modality=excluded.modality,
    updated_at=CURRENT_TIMESTAMP
`

func (s Store) Put(ctx context.Context, row foothill.ClassRow) error {
	_, err := s.db.ExecContext(
		ctx, upsertClass,
		row.Crn, row.Quarter, row.Subject, row.Course, row.Title,
		row.Section, nullable(row.Instructor), nullable(row.DaysTime),
		nullable(row.Room), nullable(row.Modality),
	)
	return err
}

// PutAll upserts every row in one transaction; either the whole batch
// lands or none of it does.
func (s Store) PutAll(ctx context.Context, rows []foothill.ClassRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertClass)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(
			ctx,
			row.Crn, row.Quarter, row.Subject, row.Course, row.Title,
			row.Section, nullable(row.Instructor), nullable(row.DaysTime),
			nullable(row.Room), nullable(row.Modality),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Count returns the number of stored classes.
func (s Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM classes`).Scan(&n)
	return n, err
}

// optional fields are stored as NULL rather than "", so substring
// filters never match a field the page simply didn't have
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
