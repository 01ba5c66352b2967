/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "errors"
    "fmt"
    "os"

    "github.com/HamedShams/jira-digest/internal/adapters/jira"
    "github.com/HamedShams/jira-digest/internal/adapters/mail"
    "github.com/HamedShams/jira-digest/internal/config"
    "github.com/HamedShams/jira-digest/internal/logger"
    "github.com/HamedShams/jira-digest/internal/report"
    "github.com/HamedShams/jira-digest/internal/services"
    "github.com/spf13/cobra"
)

var (
    days    int
    filters string
    dryRun  bool
)

var rootCmd = &cobra.Command{
    Use:          "jira-digest",
    Short:        "Generate and email a weekly Jira project report",
    Long:         `jira-digest queries Jira for issues created, resolved and currently open over a trailing window, renders an HTML summary with issue links, and emails it via SMTP.`,
    SilenceUsage:  true,
    SilenceErrors: true,
    RunE:          runReport,
}

func init() {
    rootCmd.Flags().IntVar(&days, "days", 0, "Number of days to look back (default from REPORT_DAYS)")
    rootCmd.Flags().StringVar(&filters, "filters", "", "Additional JQL filters (e.g. priority = High)")
    rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the report without sending email")
}

func main() {
    if err := rootCmd.Execute(); err != nil {
        os.Exit(exitCode(err))
    }
}

func runReport(cmd *cobra.Command, args []string) error {
    cfg := config.Load()
    log := logger.New(cfg)

    rend, err := report.NewRenderer()
    if err != nil {
        log.Error().Err(err).Msg("renderer init failed")
        return err
    }
    tracker := jira.NewClient(cfg, log)
    sender := mail.NewClient(cfg, log)
    agg := report.NewAggregator(tracker, log)
    svc := services.New(cfg, log, agg, rend, sender)

    sum, err := svc.Run(context.Background(), services.Overrides{Days: days, Filters: filters, DryRun: dryRun})
    if err != nil {
        log.Error().Err(err).Msg("report run failed")
        return err
    }
    if dryRun {
        fmt.Println(sum.Document)
    }
    log.Info().
        Int("created", sum.Created).
        Int("resolved", sum.Resolved).
        Int("open", sum.Open).
        Msg("report complete")
    return nil
}

// exitCode keeps the original contract: 1 config, 2 aggregation, 3 delivery.
func exitCode(err error) int {
    var me *config.MissingKeysError
    if errors.As(err, &me) { return 1 }
    var de *mail.DeliveryError
    if errors.As(err, &de) { return 3 }
    return 2
}
