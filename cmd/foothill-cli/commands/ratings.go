package commands

import (
	"fmt"
	"os"

	"foothill-backend/lib/configutil"
	"foothill-backend/lib/serviceutil"
	"foothill-backend/services/rmp"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type ratingsConfig struct {
	SchoolId string `json:"school_id"`
}

var ratingsSchoolId *string

func init() {
	ratingsSchoolId = ratingsCmd.Flags().String("school-id", "", "The RateMyProfessors school id; falls back to rmp.json5.")
	rootCmd.AddCommand(ratingsCmd)
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings <instructor>",
	Short: "Looks up RateMyProfessors ratings for an instructor.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		schoolId := *ratingsSchoolId
		if schoolId == "" {
			cfg, err := configutil.ReadConfig[ratingsConfig]("rmp.json5")
			if err != nil {
				fmt.Fprintln(os.Stderr, "no --school-id given and no rmp.json5 found")
				os.Exit(1)
			}
			schoolId = cfg.SchoolId
		}

		client, err := rmp.NewClient(rmp.ClientOptions{SchoolId: schoolId})
		if err != nil {
			serviceutil.Fatal("failed to initialize ratings client", err)
		}

		teachers, err := client.SearchTeachers(cmd.Context(), rmp.NormalizeInstructor(args[0]))
		if err != nil {
			serviceutil.Fatal("ratings lookup failed", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{
			"name", "department", "rating", "ratings", "would take again", "difficulty", "profile",
		})
		for _, teacher := range teachers {
			t.AppendRow(table.Row{
				teacher.FullName(), teacher.Department,
				teacher.AvgRating, teacher.NumRatings,
				teacher.WouldTakeAgainPercent, teacher.AvgDifficulty,
				teacher.ProfileUrl(),
			})
		}
		t.Render()
	},
}
