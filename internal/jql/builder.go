package jql

import (
    "errors"
    "fmt"
    "strings"

    "github.com/HamedShams/jira-digest/internal/domain"
)

var (
    ErrInvalidWindow     = errors.New("jql: window must be at least one day")
    ErrInvalidProjectKey = errors.New("jql: empty project key")
)

// Build composes the JQL for one report category. The created and resolved
// queries look back exactly window.Days days; the open query deliberately has
// no time predicate, "open" means open right now, not opened in the window.
func Build(projectKey string, w domain.Window, c domain.Category, extraFilter string) (string, error) {
    if strings.TrimSpace(projectKey) == "" { return "", ErrInvalidProjectKey }
    if w.Days < 1 { return "", ErrInvalidWindow }
    var b strings.Builder
    fmt.Fprintf(&b, "project = %s", projectKey)
    switch c {
    case domain.CategoryCreated:
        fmt.Fprintf(&b, " AND created >= -%dd", w.Days)
    case domain.CategoryResolved:
        fmt.Fprintf(&b, " AND resolved >= -%dd", w.Days)
    case domain.CategoryOpen:
        b.WriteString(" AND statusCategory != Done")
    default:
        return "", fmt.Errorf("jql: unknown category %q", c)
    }
    if f := strings.TrimSpace(extraFilter); f != "" {
        fmt.Fprintf(&b, " AND (%s)", f)
    }
    b.WriteString(" ORDER BY created DESC")
    return b.String(), nil
}
