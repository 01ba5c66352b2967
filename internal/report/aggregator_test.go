package report

import (
    "context"
    "errors"
    "strings"
    "testing"

    "github.com/HamedShams/jira-digest/internal/domain"
    "github.com/rs/zerolog"
)

type fakeSearcher struct {
    results map[string][]domain.Issue // matched by substring of the JQL
    failOn  string
    failErr error
    queries []string
}

func (f *fakeSearcher) SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error) {
    f.queries = append(f.queries, jql)
    if f.failOn != "" && strings.Contains(jql, f.failOn) {
        return nil, f.failErr
    }
    for marker, issues := range f.results {
        if strings.Contains(jql, marker) { return issues, nil }
    }
    return nil, nil
}

func TestAggregate_BuildsReportInCategoryOrder(t *testing.T) {
    tracker := &fakeSearcher{results: map[string][]domain.Issue{
        "created >=":            {{Key: "SCAL-1"}, {Key: "SCAL-2"}},
        "resolved >=":           {{Key: "SCAL-3"}},
        "statusCategory != Done": {{Key: "SCAL-4"}, {Key: "SCAL-5"}, {Key: "SCAL-6"}},
    }}
    agg := NewAggregator(tracker, zerolog.Nop())
    rep, err := agg.Aggregate(context.Background(), "SCAL", domain.Window{Days: 7}, "")
    if err != nil { t.Fatalf("aggregate: %v", err) }
    if rep.Counts.Created != 2 || rep.Counts.Resolved != 1 || rep.Counts.Open != 3 {
        t.Fatalf("unexpected counts: %+v", rep.Counts)
    }
    if len(rep.Created) != rep.Counts.Created || len(rep.Resolved) != rep.Counts.Resolved || len(rep.Open) != rep.Counts.Open {
        t.Fatalf("counts do not match lists: %+v", rep)
    }
    if len(tracker.queries) != 3 {
        t.Fatalf("expected 3 queries, got %d", len(tracker.queries))
    }
    if !strings.Contains(tracker.queries[0], "created >=") ||
        !strings.Contains(tracker.queries[1], "resolved >=") ||
        !strings.Contains(tracker.queries[2], "statusCategory != Done") {
        t.Fatalf("queries out of category order: %v", tracker.queries)
    }
}

func TestAggregate_FailFastOnResolvedQuery(t *testing.T) {
    trackerErr := errors.New("jira api status=500 body=boom")
    tracker := &fakeSearcher{
        results: map[string][]domain.Issue{"created >=": {{Key: "SCAL-1"}}},
        failOn:  "resolved >=",
        failErr: trackerErr,
    }
    agg := NewAggregator(tracker, zerolog.Nop())
    _, err := agg.Aggregate(context.Background(), "SCAL", domain.Window{Days: 7}, "")
    if !errors.Is(err, trackerErr) {
        t.Fatalf("expected tracker error propagated, got %v", err)
    }
    if !strings.Contains(err.Error(), "resolved") {
        t.Fatalf("error should name failing category: %v", err)
    }
    if len(tracker.queries) != 2 {
        t.Fatalf("open query must not run after resolved failure, got %d queries", len(tracker.queries))
    }
}

func TestAggregate_PropagatesBuilderErrors(t *testing.T) {
    agg := NewAggregator(&fakeSearcher{}, zerolog.Nop())
    if _, err := agg.Aggregate(context.Background(), "SCAL", domain.Window{Days: 0}, ""); err == nil {
        t.Fatal("expected error for zero-day window")
    }
    if _, err := agg.Aggregate(context.Background(), "", domain.Window{Days: 7}, ""); err == nil {
        t.Fatal("expected error for empty project key")
    }
}

func TestAggregate_ExtraFilterAppliedToAllQueries(t *testing.T) {
    tracker := &fakeSearcher{}
    agg := NewAggregator(tracker, zerolog.Nop())
    if _, err := agg.Aggregate(context.Background(), "SCAL", domain.Window{Days: 7}, "issuetype = Bug"); err != nil {
        t.Fatalf("aggregate: %v", err)
    }
    for _, q := range tracker.queries {
        if !strings.Contains(q, "AND (issuetype = Bug)") {
            t.Fatalf("query missing extra filter: %q", q)
        }
    }
}
