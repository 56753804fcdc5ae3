package main

import (
	"fmt"
	"strings"

	"github.com/mark3labs/taskr/internal/task"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			sess.store.SetDraft(strings.Join(args, " "))
			t, err := sess.store.AddTask()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", t.ShortID())
			return nil
		},
	}
}

func newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			t, err := sess.store.Find(args[0])
			if err != nil {
				return err
			}
			sess.store.ToggleTaskCompletion(t.ID)

			verb := "completed"
			if t.Completed {
				verb = "reopened"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, t.ShortID())
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			t, err := sess.store.Find(args[0])
			if err != nil {
				return err
			}
			sess.store.DeleteTask(t.ID)

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", t.ShortID())
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	var active bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks in stored order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if active {
				sess.store.SetFilter(task.FilterActive)
			}

			out := cmd.OutOrStdout()
			tasks := sess.store.VisibleTasks()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks")
				return nil
			}
			for _, t := range tasks {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				fmt.Fprintf(out, "[%s] %s  %s\n", mark, t.ShortID(), t.Text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&active, "active", "a", false, "Hide completed tasks")
	return cmd
}
