// Package output renders CLI-facing views of the gateway configuration.
package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/lingogate/lingogate/internal/config"
)

// ConfigTable renders the effective configuration as an ASCII table.
func ConfigTable(cfg *config.Config) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Setting", "Value"})

	t.AppendRow(table.Row{"server.host", cfg.Server.Host})
	t.AppendRow(table.Row{"server.port", strconv.Itoa(cfg.Server.Port)})
	t.AppendSeparator()

	t.AppendRow(table.Row{"rate_limit.enabled", strconv.FormatBool(cfg.RateLimit.Enabled)})
	t.AppendRow(table.Row{"rate_limit.requests_per_minute", strconv.Itoa(cfg.RateLimit.RequestsPerMinute)})
	t.AppendRow(table.Row{"rate_limit.burst", strconv.Itoa(cfg.RateLimit.Burst)})
	t.AppendSeparator()

	t.AppendRow(table.Row{"throttling.enabled", strconv.FormatBool(cfg.Throttling.Enabled)})
	t.AppendRow(table.Row{"throttling.concurrent_requests", strconv.Itoa(cfg.Throttling.ConcurrentRequests)})
	t.AppendSeparator()

	t.AppendRow(table.Row{"translation.max_chars_per_request", strconv.Itoa(cfg.Translation.MaxCharsPerRequest)})
	t.AppendRow(table.Row{"translation.available_packages", strings.Join(cfg.Translation.AvailablePackages, ", ")})
	engineURL := cfg.Translation.EngineURL
	if engineURL == "" {
		engineURL = "(echo engine)"
	}
	t.AppendRow(table.Row{"translation.engine_url", engineURL})
	t.AppendSeparator()

	t.AppendRow(table.Row{"formats.output", strings.Join(cfg.Formats.Output, ", ")})
	t.AppendRow(table.Row{"logging.level", cfg.Logging.Level})
	t.AppendRow(table.Row{"metrics.enabled", strconv.FormatBool(cfg.Metrics.Enabled)})

	return t.Render()
}

// PairsTable renders the configured language pairs as an ASCII table.
func PairsTable(pairs []string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Source", "Target", "Package"})

	for _, pair := range pairs {
		source, target, ok := strings.Cut(pair, "-")
		if !ok {
			continue
		}
		t.AppendRow(table.Row{source, target, pair})
	}

	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d pairs", len(pairs))})
	return t.Render()
}
