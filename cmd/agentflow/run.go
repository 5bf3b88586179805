package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/agenthands/agentflow/internal/agent"
	"github.com/agenthands/agentflow/internal/history"
	"github.com/agenthands/agentflow/internal/workflow"
	"github.com/spf13/cobra"
)

var runMode string

var runCmd = &cobra.Command{
	Use:   "run [input...]",
	Short: "Run one task through an agent",
	Long: `Run one task through the selected agent and record it in history.
The input is taken from the arguments, or from stdin when none are given.`,
	Example: `  agentflow run --mode Debugger "why does this loop never end?"
  cat main.go | agentflow run --mode Reviewer`,
	RunE: runTask,
}

func init() {
	runCmd.Flags().StringVarP(&runMode, "mode", "m", agent.DefaultMode.String(), "Agent mode")
}

func runTask(cmd *cobra.Command, args []string) error {
	mode, err := agent.ParseMode(runMode)
	if err != nil {
		return err
	}

	input := strings.Join(args, " ")
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		input = string(data)
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close(ctx, logger)

	store := history.Open(ctx, a.kv, cfg.History.Key, logger)
	ctrl := workflow.NewController(a.gen, store,
		workflow.WithSupervisorTemperature(cfg.LLM.SupervisorTemperature),
		workflow.WithLogger(logger))

	rec, err := ctrl.RunTask(ctx, mode, input)
	if err != nil {
		return err
	}
	printRecord(cmd.OutOrStdout(), rec)
	return nil
}
