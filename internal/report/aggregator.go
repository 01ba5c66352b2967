package report

import (
    "context"
    "fmt"

    "github.com/HamedShams/jira-digest/internal/domain"
    "github.com/HamedShams/jira-digest/internal/jql"
    "github.com/rs/zerolog"
)

type Searcher interface {
    SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error)
}

type Aggregator struct {
    tracker Searcher
    log     zerolog.Logger
}

func NewAggregator(tracker Searcher, log zerolog.Logger) *Aggregator {
    return &Aggregator{tracker: tracker, log: log}
}

// Aggregate runs the created, resolved and open queries in that order and
// assembles a Report. Any failing query aborts the whole aggregation; a
// partial report is never returned.
func (a *Aggregator) Aggregate(ctx context.Context, projectKey string, w domain.Window, extraFilter string) (domain.Report, error) {
    lists := map[domain.Category][]domain.Issue{}
    for _, cat := range domain.Categories() {
        q, err := jql.Build(projectKey, w, cat, extraFilter)
        if err != nil { return domain.Report{}, err }
        issues, err := a.tracker.SearchIssues(ctx, q)
        if err != nil { return domain.Report{}, fmt.Errorf("%s query: %w", cat, err) }
        a.log.Info().Str("category", string(cat)).Int("count", len(issues)).Msg("jira query done")
        lists[cat] = issues
    }
    return domain.NewReport(lists[domain.CategoryCreated], lists[domain.CategoryResolved], lists[domain.CategoryOpen]), nil
}
