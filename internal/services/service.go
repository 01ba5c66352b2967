/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "fmt"
    "time"

    "github.com/HamedShams/jira-digest/internal/config"
    "github.com/HamedShams/jira-digest/internal/domain"
    "github.com/rs/zerolog"
)

type aggregator interface {
    Aggregate(ctx context.Context, projectKey string, w domain.Window, extraFilter string) (domain.Report, error)
}

type renderer interface {
    Render(rep domain.Report) (string, error)
}

type notifier interface {
    Send(ctx context.Context, subject, htmlBody string) error
}

// Overrides are the per-invocation knobs layered over Config.
type Overrides struct {
    Days    int
    Filters string
    DryRun  bool
}

type Summary struct {
    Created  int
    Resolved int
    Open     int
    Document string
}

type Service struct {
    cfg    config.Config
    log    zerolog.Logger
    agg    aggregator
    render renderer
    mail   notifier
}

func New(cfg config.Config, log zerolog.Logger, agg aggregator, render renderer, mail notifier) *Service {
    return &Service{cfg: cfg, log: log, agg: agg, render: render, mail: mail}
}

// Run executes one report: validate config, aggregate the three categories,
// render, then send unless DryRun. SMTP settings are validated up front even
// on dry runs so a broken mail config surfaces before the scheduled send.
func (s *Service) Run(ctx context.Context, ov Overrides) (Summary, error) {
    if err := s.cfg.Validate(); err != nil {
        return Summary{}, fmt.Errorf("config: %w", err)
    }
    days := ov.Days
    if days == 0 { days = s.cfg.ReportDays }
    w := domain.Window{Days: days}

    rep, err := s.agg.Aggregate(ctx, s.cfg.JiraProjectKey, w, ov.Filters)
    if err != nil {
        return Summary{}, fmt.Errorf("aggregate: %w", err)
    }
    doc, err := s.render.Render(rep)
    if err != nil {
        return Summary{}, fmt.Errorf("render: %w", err)
    }
    sum := Summary{
        Created:  rep.Counts.Created,
        Resolved: rep.Counts.Resolved,
        Open:     rep.Counts.Open,
        Document: doc,
    }
    if ov.DryRun {
        s.log.Info().Msg("dry run enabled; not sending email")
        return sum, nil
    }
    if err := s.mail.Send(ctx, s.subject(w), doc); err != nil {
        return Summary{}, fmt.Errorf("send: %w", err)
    }
    s.log.Info().
        Int("created", sum.Created).
        Int("resolved", sum.Resolved).
        Int("open", sum.Open).
        Msg("weekly report delivered")
    return sum, nil
}

func (s *Service) subject(w domain.Window) string {
    end := time.Now().UTC()
    start := end.AddDate(0, 0, -w.Days)
    return fmt.Sprintf("Weekly Jira Report for %s (%s - %s)",
        s.cfg.JiraProjectKey, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
