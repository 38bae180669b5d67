package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/logger"
	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

const (
	PromptShowReport = "Show the report"
	PromptDumpJSON   = "Dump the result to a file"
	PromptExit       = "Exit"
)

var errExit = errors.New("exit requested")

var analyzePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptDumpJSON, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a candidate profile against the current job market",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("profile", "f", "", "path to the profile JSON file (required)")
	analyzeCmd.Flags().String("area", "", "hh.ru area id to narrow the search")
	analyzeCmd.Flags().BoolP("report-only", "r", false, "print the report and exit without the interactive menu")

	analyzeCmd.MarkFlagRequired("profile")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-advisor", zap.String("version", version))

	profilePath := cmd.Flag("profile").Value.String()
	p, err := loadProfile(profilePath)
	if err != nil {
		logger.Fatal("loading the profile", zap.Error(err), zap.String("path", profilePath))
	}

	chain, store, _, err := buildAdvisor(ctx, logger, config)
	if err != nil {
		logger.Fatal("building the recommendation chain", zap.Error(err))
	}
	defer store.Stop()

	result, err := chain.Run(ctx, p, market.Options{
		AreaID: cmd.Flag("area").Value.String(),
	})
	if err != nil {
		logger.Fatal("producing a recommendation", zap.Error(err))
	}

	if cmd.Flag("report-only").Value.String() == "true" {
		fmt.Print(renderReport(result))
		return
	}

	for {
		_, action, err := analyzePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAnalyzeAction(action, result, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAnalyzeAction(action string, result *market.Result, logger *zap.Logger) error {
	switch action {
	case PromptShowReport:
		fmt.Print(renderReport(result))
		return nil
	case PromptDumpJSON:
		filename, err := dumpResult(result)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func loadProfile(path string) (*profile.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing profile JSON: %w", err)
	}
	return p, nil
}

func renderReport(result *market.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\nMarket fit score: %d/100 (source: %s)\n", result.MarketFitScore, result.Debug.Source)
	if result.Debug.Fallback {
		b.WriteString("Note: produced by a fallback tier, live market data was unavailable.\n")
	}

	if len(result.Roles) > 0 {
		b.WriteString("\nRoles:\n")
		for _, role := range result.Roles {
			fmt.Fprintf(&b, "  %s: %d vacancies found, %d sampled\n", role.Role, role.Found, role.Sampled)
			if len(role.TopSkills) > 0 {
				fmt.Fprintf(&b, "    in demand: %s\n", strings.Join(role.TopSkills, ", "))
			}
			if role.SearchURL != "" {
				fmt.Fprintf(&b, "    %s\n", role.SearchURL)
			}
		}
	}

	if len(result.GrowSkills) > 0 {
		b.WriteString("\nSkills to grow:\n")
		for _, gap := range result.GrowSkills {
			if gap.Advanced {
				fmt.Fprintf(&b, "  %s (advanced)\n", gap.Skill)
				continue
			}
			fmt.Fprintf(&b, "  %s (seen in %d vacancies)\n", gap.Skill, gap.Demand)
		}
	}

	if len(result.Courses) > 0 {
		b.WriteString("\nCourses:\n")
		for _, course := range result.Courses {
			fmt.Fprintf(&b, "  [%s] %s", course.Provider, course.Title)
			if course.Duration != "" {
				fmt.Fprintf(&b, " (%s)", course.Duration)
			}
			fmt.Fprintf(&b, "\n    %s\n", course.URL)
		}
	}

	return b.String()
}

func dumpResult(result *market.Result) (string, error) {
	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}

	file, err := os.CreateTemp("", app+"-result-*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.Write(pretty); err != nil {
		return "", err
	}

	return file.Name(), nil
}
