package cmd

import (
	"fmt"

	"github.com/habiliai/memorybank"
	"github.com/habiliai/memorybank/evaluation"
	"github.com/habiliai/memorybank/internal/mylog"
	"github.com/spf13/cobra"
)

func newEvalCmd(rootParams *rootParams) *cobra.Command {
	params := &struct {
		ReportPath string
	}{}

	cmd := &cobra.Command{
		Use:   "eval <dataset.json>",
		Short: "Replay a labeled dataset and report retrieval quality",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := rootParams.loadConfig()
			if err != nil {
				return err
			}

			logger := mylog.NewLogger(conf.Log.LogLevel, conf.Log.LogHandler)

			cases, err := evaluation.LoadDataset(args[0])
			if err != nil {
				return err
			}

			bank, err := memorybank.New(cmd.Context(),
				memorybank.WithLogger(logger),
				memorybank.WithMemoryConfig(conf.Memory),
				memorybank.WithModelConfig(conf.Model),
			)
			if err != nil {
				return err
			}
			defer func() {
				if err := bank.Close(); err != nil {
					logger.Warn("failed to close memory bank", "error", err)
				}
			}()

			report, err := bank.Evaluate(cmd.Context(), cases)
			if err != nil {
				return err
			}

			fmt.Println(report.Summary())

			if err := report.WriteFile(params.ReportPath); err != nil {
				return err
			}
			logger.Info("evaluation report saved", "path", params.ReportPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&params.ReportPath, "report", "r", "evaluation_report.txt", "Path for the plain-text report artifact")

	return cmd
}
