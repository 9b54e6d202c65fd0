package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/mergington/activities/pkg/rosterclient"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities and their participants",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		activities, err := rosterclient.NewClient(serverURL).ListActivities()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(activities))
		for name := range activities {
			names = append(names, name)
		}
		sort.Strings(names)

		out := cmd.OutOrStdout()
		for _, name := range names {
			a := activities[name]
			_, _ = fmt.Fprintf(out, "%s (%d/%d) - %s\n", name, len(a.Participants), a.MaxParticipants, a.Schedule)
			for _, p := range a.Participants {
				_, _ = fmt.Fprintf(out, "    %s\n", p)
			}
		}

		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup <activity> <email>",
	Short: "Sign a student up for an activity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := rosterclient.NewClient(serverURL).Signup(args[0], args[1])
		if err != nil {
			return explainSignupError(args[0], err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <activity> <email>",
	Short: "Cancel a student's signup for an activity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := rosterclient.NewClient(serverURL).CancelSignup(args[0], args[1])
		if err != nil {
			return explainSignupError(args[0], err)
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

// explainSignupError points the user at the list command when the activity
// doesn't exist.
func explainSignupError(activityName string, err error) error {
	var apiErr *rosterclient.APIError
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		return errors.Errorf("no activity named '%s', run 'mhsactd list' to see the activities", activityName)
	}

	return err
}

func init() {
	rootCmd.AddCommand(listCmd, signupCmd, cancelCmd)
	rootCmd.SetErr(os.Stderr)
}
