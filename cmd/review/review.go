package reviewcmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjulian5/fleet/internal/common"
	"github.com/bjulian5/fleet/internal/fleet"
	"github.com/bjulian5/fleet/internal/gh"
	"github.com/bjulian5/fleet/internal/registry"
	"github.com/bjulian5/fleet/internal/review"
	"github.com/bjulian5/fleet/internal/ui"
)

// Command aggregates PRs for a ticket across services
type Command struct {
	Ticket  string
	State   string
	Limit   int
	Analyze bool
	Env     *common.Env
}

func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "review [ticket]",
		Short: "Review pull requests for a ticket across services",
		Long: `Collect the pull requests of every service that mention a ticket, group
them by ticket key and flag tickets that span several services.

With --analyze the result is sent to the configured AI model and the
analysis saved under the config directory. Without an AI key a prompt file
is written instead for manual use.

Example:
  fleet review REN-482
  fleet review REN-482 --analyze
  fleet review --state=all --limit=50`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Env, err = common.InitEnv(cobraCmd)
			return err
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Ticket = args[0]
			}
			return c.Run(cobraCmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.State, "state", "open", "open, closed, merged or all")
	cmd.Flags().IntVar(&c.Limit, "limit", 30, "Maximum PRs per service when no ticket is given")
	cmd.Flags().BoolVar(&c.Analyze, "analyze", false, "Analyze the change set with AI")
	parent.AddCommand(cmd)
}

func (c *Command) Run(ctx context.Context) error {
	ticket := strings.ToUpper(strings.TrimSpace(c.Ticket))
	if ticket != "" {
		if normalized, err := fleet.NormalizeTicket(ticket); err == nil {
			ticket = normalized
		}
		c.showTicket(ticket)
	}

	opts := gh.ListOptions{State: c.State, Search: ticket, Limit: c.Limit}
	entries, results := c.collect(ctx, opts)

	report := review.Aggregate(ticket, entries)
	if report.Totals.PRs == 0 {
		ui.Info("No matching pull requests found")
		common.PrintSummary(results)
		return nil
	}

	ui.Print(ui.RenderReviewTree(report))
	if multi := report.MultiServiceGroups(); len(multi) > 0 {
		ui.Print("")
		ui.Warningf("%d ticket(s) span several services; review them together", len(multi))
	}
	common.PrintSummary(results)

	if !c.Analyze {
		return nil
	}
	return c.analyze(ctx, report)
}

// collect lists matching PRs per service and fetches their details
func (c *Command) collect(ctx context.Context, opts gh.ListOptions) ([]review.Entry, []fleet.Result[[]gh.PullRequest]) {
	var entries []review.Entry
	results := fleet.RunAcross(ctx, c.Env.Registry.All(), func(ctx context.Context, repo registry.Repository) fleet.Result[[]gh.PullRequest] {
		res := c.Env.Fleet.PullRequests(ctx, repo, opts)
		if !res.Success() {
			return res
		}
		for i, p := range res.Value {
			detail := c.Env.Fleet.PullRequest(ctx, repo, p.Number)
			if detail.Success() {
				res.Value[i] = detail.Value
			} else {
				c.Env.Logger.Debug("PR details unavailable",
					zap.String("service", repo.Name),
					zap.Int("number", p.Number),
					zap.Error(detail.Err))
			}
		}
		return res
	}, func(r fleet.Result[[]gh.PullRequest]) {
		if !r.Success() {
			ui.Print(ui.RenderResultLine(r, ""))
			return
		}
		for _, p := range r.Value {
			entries = append(entries, review.Entry{Service: r.Service, PR: p})
		}
	})
	return entries, results
}

func (c *Command) showTicket(key string) {
	lookup := c.Env.TicketLookup()
	if lookup == nil {
		ui.Header(key)
		return
	}
	t, err := lookup.Ticket(key)
	if err != nil {
		c.Env.Logger.Debug("ticket lookup failed", zap.Error(err))
		ui.Header(key)
		return
	}
	ui.Print(ui.RenderBox(t.Key+" "+t.Summary, ui.RenderKeyValueList(
		map[string]string{"Status": t.Status, "Assignee": t.Assignee},
		[]string{"Status", "Assignee"},
	)))
}

func (c *Command) analyze(ctx context.Context, report review.Report) error {
	analyzer := c.Env.Analyzer()
	if analyzer.Available() {
		ui.Info("Analyzing with AI...")
	}

	saved, err := review.Save(ctx, c.Env.Config.ConfigDir, report, analyzer)
	if err != nil {
		ui.Errorf("Analysis failed: %v", err)
		return nil
	}

	if !saved.Analyzed {
		ui.Warning("AI analysis is not configured (run 'fleet setup-ai')")
		ui.Infof("Prompt saved to %s; paste it into your assistant of choice", saved.Path)
		return nil
	}
	ui.Successf("Analysis saved to %s", saved.Path)
	return nil
}
