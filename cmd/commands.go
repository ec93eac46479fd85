package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	amqpAdapter "github.com/YelzhanWeb/waste-tracker/internal/adapter/amqp"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/console"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/waste-tracker/internal/adapter/tabular"
	"github.com/YelzhanWeb/waste-tracker/internal/app/export"
	"github.com/YelzhanWeb/waste-tracker/internal/app/report"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "waste-tracker",
		Short:         "Record and report kitchen waste",
		Long:          "Logs waste by station, reason and unit to an append-only log, prints summaries and exports spreadsheets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			c := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), a.wasteLog, a.exporter, a.logger)
			return c.Run(cmd.Context())
		}),
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Config file path (.yaml or .toml)")

	root.AddCommand(
		newSummaryCmd(),
		newExportCmd(),
		newRepairCmd(),
		newSubscribeCmd(),
	)
	return root
}

func withApp(run func(cmd *cobra.Command, a *app) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), cfgFile)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return err
		}
		defer a.Close()

		if err := run(cmd, a); err != nil {
			a.logger.Error("command_failed", "Command failed", cmd.CommandPath(), nil, err)
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			return err
		}
		return nil
	}
}

func newSummaryCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the waste summary report",
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			entries, err := a.wasteLog.Entries(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No entries logged yet.")
				return nil
			}
			if raw {
				report.RenderRaw(out, report.Summarize(entries))
				return nil
			}
			report.Render(out, report.SummarizeByUnitClass(entries))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Sum quantities regardless of unit")
	return cmd
}

func newExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to CSV or XLSX",
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			exporter := a.exporter
			if output != "" {
				exporter = export.NewService(a.repo, tabular.ForPath(output), output, a.logger)
			}

			result, err := exporter.Export(cmd.Context())
			if errors.Is(err, interfaces.ErrNothingToExport) {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries available to export.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s (%d rows).\n", result.Path, result.Rows)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Export file path; .xlsx writes a workbook")
	return cmd
}

func newRepairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Drop unreadable records from the log",
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			result, err := a.wasteLog.Repair(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(result.Skipped) == 0 {
				fmt.Fprintf(out, "Log is clean: %d entries.\n", len(result.Entries))
				return nil
			}
			for _, s := range result.Skipped {
				fmt.Fprintf(out, "  dropped line %d: %s\n", s.Line, s.Reason)
			}
			fmt.Fprintf(out, "Dropped %d unreadable records, kept %d entries.\n", len(result.Skipped), len(result.Entries))
			return nil
		}),
	}
}

func newSubscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe",
		Short: "Print waste events as other terminals log them",
		RunE: withApp(func(cmd *cobra.Command, a *app) error {
			if a.mqConn == nil {
				return errors.New("rabbitmq is not enabled or not reachable")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer := rabbitmq.NewConsumer(a.mqConn, a.cfg.RabbitMQ.Exchange, a.logger)
			handler := amqpAdapter.NewNotificationHandler(cmd.OutOrStdout(), a.logger)

			a.logger.Info("service_started", "Notification subscriber started", "startup", map[string]interface{}{
				"exchange": a.cfg.RabbitMQ.Exchange,
			})

			err := consumer.ConsumeWasteEvents(ctx, handler.HandleNotification)
			a.logger.Info("shutdown_initiated", "Shutting down notification subscriber", "shutdown", nil)
			if ctx.Err() != nil {
				return nil
			}
			return err
		}),
	}
}
