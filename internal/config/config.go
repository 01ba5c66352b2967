/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

type Config struct {
    AppEnv string

    JiraBaseURL    string
    JiraProjectKey string
    JiraAuthEmail  string
    JiraAPIToken   string
    JiraPAT        string
    JiraAPIVersion string
    JiraVerifySSL  bool

    SMTPHost      string
    SMTPPort      int
    SMTPUsername  string
    SMTPPassword  string
    SMTPSender    string
    SMTPRecipient string
    SMTPUseTLS    bool

    ReportDays  int
    HTTPTimeout time.Duration
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func atoi(key string, def int) int {
    v := os.Getenv(key)
    if v == "" { return def }
    i, err := strconv.Atoi(v)
    if err != nil { return def }
    return i
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func boolean(key string, def bool) bool {
    v := strings.TrimSpace(os.Getenv(key))
    if v == "" { return def }
    return strings.EqualFold(v, "true")
}

func Load() Config {
    return Config{
        AppEnv: getenv("APP_ENV", "dev"),

        JiraBaseURL:    strings.TrimRight(getenv("JIRA_BASE_URL", ""), "/"),
        JiraProjectKey: getenv("JIRA_PROJECT_KEY", ""),
        JiraAuthEmail:  getenv("JIRA_AUTH_EMAIL", ""),
        JiraAPIToken:   getenv("JIRA_API_TOKEN", ""),
        JiraPAT:        getenv("JIRA_PAT", ""),
        JiraAPIVersion: getenv("JIRA_API_VERSION", "3"),
        JiraVerifySSL:  boolean("JIRA_VERIFY_SSL", true),

        SMTPHost:      getenv("SMTP_HOST", ""),
        SMTPPort:      atoi("SMTP_PORT", 0),
        SMTPUsername:  getenv("SMTP_USERNAME", ""),
        SMTPPassword:  getenv("SMTP_PASSWORD", ""),
        SMTPSender:    getenv("SMTP_SENDER", ""),
        SMTPRecipient: getenv("SMTP_RECIPIENT", ""),
        SMTPUseTLS:    boolean("SMTP_USE_TLS", true),

        ReportDays:  atoi("REPORT_DAYS", 7),
        HTTPTimeout: dur("HTTP_TIMEOUT", 30*time.Second),
    }
}

// MissingKeysError carries every required setting absent from the environment,
// not just the first one found.
type MissingKeysError struct {
    Keys []string
}

func (e *MissingKeysError) Error() string {
    return "missing required settings: " + strings.Join(e.Keys, ", ")
}

// Validate checks required settings for a full run. Jira basic credentials are
// not required when a PAT is configured.
func (c Config) Validate() error {
    var missing []string
    add := func(key, val string) {
        if strings.TrimSpace(val) == "" { missing = append(missing, key) }
    }
    add("JIRA_BASE_URL", c.JiraBaseURL)
    add("JIRA_PROJECT_KEY", c.JiraProjectKey)
    if c.JiraPAT == "" {
        add("JIRA_AUTH_EMAIL", c.JiraAuthEmail)
        add("JIRA_API_TOKEN", c.JiraAPIToken)
    }
    add("SMTP_HOST", c.SMTPHost)
    if c.SMTPPort == 0 { missing = append(missing, "SMTP_PORT") }
    add("SMTP_USERNAME", c.SMTPUsername)
    add("SMTP_PASSWORD", c.SMTPPassword)
    add("SMTP_SENDER", c.SMTPSender)
    add("SMTP_RECIPIENT", c.SMTPRecipient)
    if len(missing) > 0 {
        return &MissingKeysError{Keys: missing}
    }
    return nil
}
