/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "bytes"
    "context"
    "crypto/tls"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"

    "github.com/HamedShams/jira-digest/internal/config"
    "github.com/HamedShams/jira-digest/internal/domain"
    "github.com/rs/zerolog"
)

const pageSize = 100

// ErrTimeout marks a search that exceeded the configured HTTP timeout.
var ErrTimeout = errors.New("jira: request timed out")

// RequestError is any non-success answer from the Jira API. The run aborts on
// it: a partial report with wrong counts is worse than no report.
type RequestError struct {
    Status int
    Body   string
}

func (e *RequestError) Error() string {
    return fmt.Sprintf("jira api status=%d body=%s", e.Status, e.Body)
}

type Client struct {
    baseURL string
    token   string
    user    string
    pass    string
    http    *http.Client
    log     zerolog.Logger
    apiVer  string
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    transport := http.DefaultTransport
    if !cfg.JiraVerifySSL {
        t := http.DefaultTransport.(*http.Transport).Clone()
        t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
        transport = t
    }
    return &Client{
        baseURL: strings.TrimRight(cfg.JiraBaseURL, "/"),
        token:   cfg.JiraPAT,
        user:    cfg.JiraAuthEmail,
        pass:    cfg.JiraAPIToken,
        http:    &http.Client{Timeout: cfg.HTTPTimeout, Transport: transport},
        log:     log,
        apiVer:  cfg.JiraAPIVersion,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

type searchPage struct {
    StartAt    int `json:"startAt"`
    MaxResults int `json:"maxResults"`
    Total      int `json:"total"`
    Issues     []struct {
        Key string `json:"key"`
    } `json:"issues"`
}

// SearchIssues runs one JQL query and drains pagination until the tracker has
// nothing left. Issues keep the tracker's ordering.
func (c *Client) SearchIssues(ctx context.Context, jql string) ([]domain.Issue, error) {
    if c.baseURL == "" { return nil, errors.New("jira: empty baseURL") }
    if jql == "" { return nil, errors.New("jira: empty jql") }
    var out []domain.Issue
    startAt := 0
    for {
        page, err := c.searchPage(ctx, jql, startAt)
        if err != nil { return nil, err }
        for _, it := range page.Issues {
            out = append(out, domain.Issue{Key: it.Key, URL: c.baseURL + "/browse/" + it.Key})
        }
        if len(page.Issues) == 0 || startAt+len(page.Issues) >= page.Total { break }
        startAt += len(page.Issues)
    }
    c.log.Debug().Str("jql", jql).Int("issues", len(out)).Msg("jira search drained")
    return out, nil
}

func (c *Client) searchPage(ctx context.Context, jql string, startAt int) (*searchPage, error) {
    var req *http.Request
    var err error
    if c.apiVer == "2" {
        q := url.Values{}
        q.Set("jql", jql)
        q.Set("startAt", fmt.Sprint(startAt))
        q.Set("maxResults", fmt.Sprint(pageSize))
        q.Set("fields", "key")
        req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL("/rest/api/2/search", q), nil)
    } else {
        // default to v3
        body := map[string]any{"jql": jql, "startAt": startAt, "maxResults": pageSize, "fields": []string{"key"}}
        b, merr := json.Marshal(body)
        if merr != nil { return nil, merr }
        req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/rest/api/3/search", nil), bytes.NewReader(b))
        if err == nil { req.Header.Set("Content-Type", "application/json") }
    }
    if err != nil { return nil, err }
    req.Header.Set("Accept", "application/json")
    if c.token != "" {
        req.Header.Set("Authorization", "Bearer "+c.token)
    } else if c.user != "" && c.pass != "" {
        req.SetBasicAuth(c.user, c.pass)
    }
    resp, err := c.http.Do(req)
    if err != nil {
        var ue *url.Error
        if errors.As(err, &ue) && ue.Timeout() { return nil, ErrTimeout }
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode >= 300 {
        b, _ := io.ReadAll(resp.Body)
        return nil, &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
    }
    var page searchPage
    if err := json.NewDecoder(resp.Body).Decode(&page); err != nil { return nil, err }
    return &page, nil
}
