package domain

type Category string

const (
    CategoryCreated  Category = "created"
    CategoryResolved Category = "resolved"
    CategoryOpen     Category = "open"
)

// Categories returns the report sections in query and render order.
func Categories() []Category {
    return []Category{CategoryCreated, CategoryResolved, CategoryOpen}
}

// Window is the trailing lookback period for created/resolved issues.
type Window struct {
    Days int
}

type Issue struct {
    Key string
    URL string
}

type Counts struct {
    Created  int
    Resolved int
    Open     int
}

// Report holds one run's issue lists. Counts always match list lengths.
type Report struct {
    Created  []Issue
    Resolved []Issue
    Open     []Issue
    Counts   Counts
}

func NewReport(created, resolved, open []Issue) Report {
    return Report{
        Created:  created,
        Resolved: resolved,
        Open:     open,
        Counts:   Counts{Created: len(created), Resolved: len(resolved), Open: len(open)},
    }
}
