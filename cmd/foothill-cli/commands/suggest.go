package commands

import (
	"os"
	"strings"

	"foothill-backend/lib/serviceutil"
	"foothill-backend/lib/sqliteutil"
	"foothill-backend/services/schedule"
	"foothill-backend/services/schedule/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	suggestDb         *string
	suggestLimit      *int
	suggestSubject    *string
	suggestCourse     *string
	suggestTitle      *string
	suggestInstructor *string
	suggestDaysTime   *string
	suggestRoom       *string
	suggestModality   *string
)

func init() {
	suggestDb = suggestCmd.Flags().String("db", "foothill.db", "The database to query.")
	suggestLimit = suggestCmd.Flags().Int("limit", 10, "Max rows to return (1..100).")
	suggestSubject = suggestCmd.Flags().String("subject", "", "Exact subject code filter, e.g. MATH.")
	suggestCourse = suggestCmd.Flags().String("course", "", "Exact course number filter, e.g. 1A.")
	suggestTitle = suggestCmd.Flags().String("title", "", "Substring match on title.")
	suggestInstructor = suggestCmd.Flags().String("instructor", "", "Substring match on instructor.")
	suggestDaysTime = suggestCmd.Flags().String("time", "", "Substring match on days/time, e.g. MW.")
	suggestRoom = suggestCmd.Flags().String("room", "", "Substring match on room.")
	suggestModality = suggestCmd.Flags().String("modality", "", "Substring match on modality.")
	rootCmd.AddCommand(suggestCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [filters] [free text query...]",
	Short: "Suggests classes from a synced database, most relevant first.",
	Run: func(cmd *cobra.Command, args []string) {
		database, err := sqliteutil.OpenDB(db.Schema, *suggestDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		store := schedule.NewStore(database)
		suggestions, err := store.Suggest(cmd.Context(), schedule.SuggestRequest{
			Query:      strings.Join(args, " "),
			Subject:    *suggestSubject,
			Course:     *suggestCourse,
			Title:      *suggestTitle,
			Instructor: *suggestInstructor,
			DaysTime:   *suggestDaysTime,
			Room:       *suggestRoom,
			Modality:   *suggestModality,
			Limit:      *suggestLimit,
		})
		if err != nil {
			serviceutil.Fatal("suggest query failed", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{
			"crn", "subject", "course", "title", "section",
			"instructor", "days/time", "room", "modality", "score",
		})
		for _, s := range suggestions {
			t.AppendRow(table.Row{
				s.Crn, s.Subject, s.Course, s.Title, s.Section,
				s.Instructor, s.DaysTime, s.Room, s.Modality, s.Score,
			})
		}
		t.Render()
	},
}
