package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/stampede-dev/stampede/internal/output"
)

var profileCmd = &cobra.Command{
	Use:   "profile [NAME]",
	Short: "Show a load profile's schedule, or list the available profiles",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}

		noColor, _ := cmd.Flags().GetBool("no-color")

		if len(args) == 0 {
			names := cfg.ProfileNames()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return
		}

		name := args[0]
		profile, err := cfg.Profile(name)
		if err != nil {
			fail(err)
		}

		if at, _ := cmd.Flags().GetDuration("at"); cmd.Flags().Changed("at") {
			users, err := profile.UsersAt(at)
			if err != nil {
				fail(err)
			}
			rate, err := profile.SpawnRateAt(at)
			if err != nil {
				fail(err)
			}
			fmt.Printf("%s @ %s: %d users (spawn rate %.2f/s)\n", name, at, users, rate)
			return
		}

		if interval, _ := cmd.Flags().GetDuration("interval"); cmd.Flags().Changed("interval") {
			if interval <= 0 {
				fail(fmt.Errorf("--interval must be positive"))
			}
			for elapsed := time.Duration(0); elapsed <= profile.TotalDuration(); elapsed += interval {
				users, err := profile.UsersAt(elapsed)
				if err != nil {
					fail(err)
				}
				rate, _ := profile.SpawnRateAt(elapsed)
				fmt.Printf("%10s  %6d users  %8.2f/s\n", elapsed, users, rate)
			}
			return
		}

		formatName, _ := cmd.Flags().GetString("format")
		format, err := output.ParseFormat(formatName)
		if err != nil {
			fail(err)
		}

		rendered, err := output.NewScheduleFormatter(noColor).Format(name, profile, format)
		if err != nil {
			fail(err)
		}
		fmt.Print(rendered)
	},
}

func init() {
	profileCmd.Flags().StringP("format", "f", "text", "Output format (text, json, yaml)")
	profileCmd.Flags().Duration("at", 0, "Sample the user count at an elapsed time")
	profileCmd.Flags().Duration("interval", 0, "Print the sampled schedule at this interval")
}
