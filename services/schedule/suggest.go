package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"foothill-backend/lib/scrapers/foothill"
)

// SuggestRequest carries optional exact filters (Subject, Course),
// optional substring filters (the rest), and an optional free-text Query
// scored across every column.
type SuggestRequest struct {
	Query      string
	Subject    string
	Course     string
	Title      string
	Instructor string
	DaysTime   string
	Room       string
	Modality   string
	// clamped to [1,100]; zero means 10
	Limit int
}

// Suggestion is a stored class plus its additive relevance score.
type Suggestion struct {
	foothill.ClassRow
	Score int64
}

func clampLimit(limit int) int {
	if limit == 0 {
		return 10
	}
	if limit < 1 {
		return 1
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func like(val string) string {
	return fmt.Sprintf("%%%s%%", val)
}

// Suggest returns at most limit stored classes ordered by relevance:
// exact subject match scores 5, exact course 4, title or instructor
// substring 3, days/time, room or section substring 2, modality
// substring 1. Ties break by title, subject, course, section ascending,
// so identical inputs always give identical output order.
func (s Store) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	limit := clampLimit(req.Limit)

	var where []string
	var params []any

	exact := func(column, val string) {
		where = append(where, fmt.Sprintf("UPPER(%s) = UPPER(?)", column))
		params = append(params, val)
	}
	substring := func(column, val string) {
		where = append(where, fmt.Sprintf("%s LIKE ?", column))
		params = append(params, like(val))
	}

	if req.Subject != "" {
		exact("subject", req.Subject)
	}
	if req.Course != "" {
		exact("course", req.Course)
	}
	if req.Title != "" {
		substring("title", req.Title)
	}
	if req.Instructor != "" {
		substring("instructor", req.Instructor)
	}
	if req.DaysTime != "" {
		substring("days_time", req.DaysTime)
	}
	if req.Room != "" {
		substring("room", req.Room)
	}
	if req.Modality != "" {
		substring("modality", req.Modality)
	}

	scoreExprs := []string{"0"}
	var scoreParams []any

	if req.Query != "" {
		queryLike := like(req.Query)
		scoreExprs = append(scoreExprs,
			"CASE WHEN UPPER(subject) = UPPER(?) THEN 5 ELSE 0 END",
			"CASE WHEN UPPER(course) = UPPER(?) THEN 4 ELSE 0 END",
			"CASE WHEN title LIKE ? THEN 3 ELSE 0 END",
			"CASE WHEN instructor LIKE ? THEN 3 ELSE 0 END",
			"CASE WHEN days_time LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN room LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN section LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN modality LIKE ? THEN 1 ELSE 0 END",
		)
		scoreParams = append(scoreParams,
			req.Query, req.Query,
			queryLike, queryLike, queryLike, queryLike, queryLike, queryLike,
		)

		where = append(where,
			"(subject LIKE ? OR course LIKE ? OR title LIKE ? OR instructor LIKE ?"+
				" OR days_time LIKE ? OR room LIKE ? OR section LIKE ? OR modality LIKE ?)")
		params = append(params,
			queryLike, queryLike, queryLike, queryLike,
			queryLike, queryLike, queryLike, queryLike)
	}

	whereSql := "1=1"
	if len(where) > 0 {
		whereSql = strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
SELECT
    crn, quarter, subject, course, title, section,
    instructor, days_time, room, modality,
    %s AS score
FROM classes
WHERE %s
ORDER BY score DESC, title ASC, subject ASC, course ASC, section ASC
LIMIT ?`,
		strings.Join(scoreExprs, " + "),
		whereSql,
	)

	args := append(append(scoreParams, params...), limit)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		var sug Suggestion
		var instructor, daysTime, room, modality sql.NullString
		err := rows.Scan(
			&sug.Crn, &sug.Quarter, &sug.Subject, &sug.Course,
			&sug.Title, &sug.Section,
			&instructor, &daysTime, &room, &modality,
			&sug.Score,
		)
		if err != nil {
			return nil, err
		}
		sug.Instructor = instructor.String
		sug.DaysTime = daysTime.String
		sug.Room = room.String
		sug.Modality = modality.String
		out = append(out, sug)
	}
	return out, rows.Err()
}
