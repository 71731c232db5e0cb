package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/formrelay/formrelay/internal/config"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Print the resolved configuration and flag problems",
	Long: `Resolve configuration from defaults, config file, and environment,
then print it with credentials masked. Problems that would reject every
submission (empty allowlist, incomplete mail settings) are called out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Setting", "Value"})
		t.AppendRows([]table.Row{
			{"server.host", cfg.Server.Host},
			{"server.port", cfg.Server.Port},
			{"rate_limit.window", cfg.RateLimit.Window},
			{"rate_limit.quota", cfg.RateLimit.Quota},
			{"allowed_sites", cfg.AllowedSites},
			{"mail.from", cfg.Mail.From},
			{"mail.to", cfg.Mail.To},
			{"mail.api_key", maskSecret(cfg.Mail.APIKey)},
			{"logging.level", cfg.Logging.Level},
			{"metrics.enabled", cfg.Metrics.Enabled},
		})
		t.Render()

		var problems []string
		if cfg.Sites().Len() == 0 {
			problems = append(problems, "allowlist is empty: every submission will get 403")
		}
		if !cfg.Mail.Complete() {
			problems = append(problems, "mail settings incomplete: admitted submissions will get 500")
		}

		if len(problems) == 0 {
			fmt.Println("\nNo problems found.")
			return nil
		}
		fmt.Println("\nProblems:")
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		return nil
	},
}

// maskSecret keeps a short prefix so operators can tell keys apart
// without the value leaking into terminals or logs.
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 6 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
