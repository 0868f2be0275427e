package commands

import (
	"log/slog"
	"time"

	"foothill-backend/lib/restyutil"
	"foothill-backend/lib/scrapers/foothill"
	"foothill-backend/lib/serviceutil"
	"foothill-backend/lib/sqliteutil"
	"foothill-backend/services/schedule"
	"foothill-backend/services/schedule/db"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

var (
	syncDb      *string
	syncQuarter *string
	syncDept    *string
	syncBaseUrl *string
)

func init() {
	syncDb = syncCmd.Flags().String("db", "foothill.db", "The database to write scraped classes to.")
	syncQuarter = syncCmd.Flags().String("quarter", "", "The quarter to scrape, e.g. 2026W.")
	syncDept = syncCmd.Flags().String("dept", "CS", "The department to scrape, \"every\" means all of them.")
	syncBaseUrl = syncCmd.Flags().String("base-url", foothill.DefaultBaseUrl, "The schedule page url.")
	syncCmd.MarkFlagRequired("quarter")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync --quarter <quarter> [--dept <dept>] [--db <path/to/output.db>]",
	Short: "Scrapes one quarter of the schedule and upserts it into a database.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := foothill.NewClient(foothill.ClientOptions{
			BaseUrl: *syncBaseUrl,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize schedule client", err)
		}
		client.SetDebugOutput(restyutil.NewFilesystemOutput(".dev/foothill/raw"))

		database, err := sqliteutil.OpenDB(db.Schema, *syncDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		service := schedule.NewService(client, schedule.NewStore(database))

		t1 := time.Now()
		count, err := service.Sync(cmd.Context(), foothill.FetchOptions{
			Quarter: *syncQuarter,
			Dept:    *syncDept,
		})
		if err != nil {
			serviceutil.Fatal("sync failed", err)
		}
		t2 := time.Now()

		slog.Info("loaded classes", "count", count, "seconds", t2.Sub(t1).Seconds())
	},
}
