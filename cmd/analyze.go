package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AshokDevireddy/persistency/internal/analysis"
	"github.com/AshokDevireddy/persistency/internal/carrier"
	"github.com/AshokDevireddy/persistency/internal/fetcher"
	"github.com/AshokDevireddy/persistency/internal/model"
	"github.com/AshokDevireddy/persistency/internal/report"
)

var (
	analyzeFiles  []string
	analyzeAgents []string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze carrier roster exports",
	Long: `Analyze one or more carrier roster exports and print persistency results.

Each --file takes carrier=ref where ref is a local path, an http(s) URL, or
an ftp URL, e.g.:

  persistency analyze --file americo=roster.csv --file aetna=ftp://drop.example/aetna.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if len(analyzeFiles) == 0 {
			return eris.New("at least one --file carrier=ref is required")
		}

		resolver := fetcher.NewResolver(fetcher.HTTPOptions{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		}, fetcher.FTPOptions{
			User:     cfg.Fetch.FTPUser,
			Password: cfg.Fetch.FTPPassword,
			Timeout:  time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		})

		var files []model.CarrierFile
		for _, spec := range analyzeFiles {
			key, ref, ok := strings.Cut(spec, "=")
			if !ok {
				return eris.Errorf("invalid --file %q, expected carrier=ref", spec)
			}
			if _, err := carrier.Get(key); err != nil {
				return err
			}

			data, err := resolver.Fetch(ctx, ref)
			if err != nil {
				return err
			}
			files = append(files, model.CarrierFile{
				CarrierKey: key,
				Name:       filepath.Base(ref),
				Data:       data,
			})
		}

		agentScope := model.AgentScope{Mode: model.ScopeUnrestricted}
		if len(analyzeAgents) > 0 {
			agentScope = model.AgentScope{
				Mode:                model.ScopeScoped,
				AllowedAgentNumbers: analyzeAgents,
			}
		}

		overrides, err := carrier.LoadOverrides(cfg.Analysis.OverridesPath)
		if err != nil {
			return err
		}

		engine, err := analysis.NewEngine(
			analysis.WithOverrides(overrides),
			analysis.WithConcurrency(cfg.Analysis.Concurrency),
		)
		if err != nil {
			return err
		}

		resp, err := engine.Analyze(ctx, files, agentScope)
		if err != nil {
			return err
		}

		zap.L().Info("analyze: complete",
			zap.String("run_id", resp.RunID),
			zap.Int("carriers", len(resp.Results)),
		)
		return report.Print(os.Stdout, resp, analyzeOutput)
	},
}

func init() {
	analyzeCmd.Flags().StringArrayVar(&analyzeFiles, "file", nil, "carrier=ref roster export (repeatable)")
	analyzeCmd.Flags().StringSliceVar(&analyzeAgents, "agents", nil, "restrict to these writing-agent numbers")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "table", "output format: table or json")
	rootCmd.AddCommand(analyzeCmd)
}
