package review

import (
	"fmt"

	jira "github.com/andygrunwald/go-jira"
	"go.uber.org/zap"
)

// Ticket is the tracker summary shown above a review
type Ticket struct {
	Key      string
	Summary  string
	Status   string
	Assignee string
}

// TicketLookup fetches tickets from an issue tracker
type TicketLookup interface {
	Ticket(key string) (Ticket, error)
}

// JiraLookup reads tickets from Jira
type JiraLookup struct {
	client *jira.Client
	logger *zap.Logger
}

// NewJiraLookup creates a Jira client using basic auth with an API token
func NewJiraLookup(baseURL, username, apiToken string, logger *zap.Logger) (*JiraLookup, error) {
	tp := jira.BasicAuthTransport{
		Username: username,
		Password: apiToken,
	}

	client, err := jira.NewClient(tp.Client(), baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JiraLookup{client: client, logger: logger}, nil
}

// Ticket fetches key
func (j *JiraLookup) Ticket(key string) (Ticket, error) {
	issue, _, err := j.client.Issue.Get(key, nil)
	if err != nil {
		return Ticket{}, fmt.Errorf("failed to get issue %s: %w", key, err)
	}

	t := Ticket{Key: issue.Key}
	if issue.Fields != nil {
		t.Summary = issue.Fields.Summary
		if issue.Fields.Status != nil {
			t.Status = issue.Fields.Status.Name
		}
		if issue.Fields.Assignee != nil {
			t.Assignee = issue.Fields.Assignee.DisplayName
		}
	}
	j.logger.Debug("fetched ticket", zap.String("key", t.Key), zap.String("status", t.Status))
	return t, nil
}
