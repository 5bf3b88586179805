package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/agentflow/internal/driver"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyOwner string
	clearYes     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the agent history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded tasks, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded task",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyOwner, "session", "", "Browser session id (default: the CLI history)")
	historyClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
}

func openHistory(ctx context.Context) (*history.Store, driver.KV, error) {
	kv, err := driver.Open(ctx, cfg.History, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history backend: %w", err)
	}
	mgr := history.NewManager(kv, cfg.History.Key, logger)
	return mgr.For(ctx, historyOwner), kv, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, kv, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer kv.Close(ctx)

	items := store.Items()
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No history yet.")
		return nil
	}
	for i, rec := range items {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "> %s\n", rec.Input)
		printRecord(out, rec)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	store, kv, err := openHistory(ctx)
	if err != nil {
		return err
	}
	defer kv.Close(ctx)

	confirm := history.Answer(true)
	if !clearYes {
		confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	cleared, err := store.ClearAll(ctx, confirm)
	if err != nil {
		return err
	}
	if cleared {
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Kept history.")
	}
	return nil
}

// promptConfirmer asks on out and accepts "y" or "yes" from in.
func promptConfirmer(in io.Reader, out io.Writer) history.Confirmer {
	return history.ConfirmFunc(func(ctx context.Context, prompt string) (bool, error) {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	})
}
