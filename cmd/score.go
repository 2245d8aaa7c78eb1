package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/hueshadow/leadscout/internal/logger"
	"github.com/hueshadow/leadscout/internal/pipeline"
	"github.com/hueshadow/leadscout/internal/profile"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type scoreReport struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Client        string   `json:"client"`
	Score         int      `json:"score"`
	PriorityScore int      `json:"priority_score"`
	PriorityLabel string   `json:"priority_label"`
	Reasons       []string `json:"reasons"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score collected leads against the profile and print a report",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func score(_ *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil || config.ProfileFile == "" {
		logger.Fatal("a profile file is required under profile-file to score leads")
	}

	userProfile, err := profile.Load(config.ProfileFile)
	if err != nil {
		logger.Fatal("loading user profile", zap.Error(err), zap.String("path", config.ProfileFile))
	}

	collected, err := getLeads(config, logger)
	if err != nil {
		logger.Fatal("getting collected leads", zap.Error(err))
	}

	pipe, err := pipeline.New(userProfile, nil, logger)
	if err != nil {
		logger.Fatal("building pipeline", zap.Error(err))
	}

	pipe.ScoreAll(collected)

	report := make([]scoreReport, 0, collected.Len())
	for _, lead := range collected.Items {
		report = append(report, scoreReport{
			ID:            lead.ID,
			Title:         lead.Title,
			Client:        lead.Client,
			Score:         lead.Match.Score,
			PriorityScore: lead.Match.PriorityScore,
			PriorityLabel: lead.Match.PriorityLabel,
			Reasons:       lead.Match.Reasons,
		})
	}

	sort.Slice(report, func(i, j int) bool {
		return report[i].Score > report[j].Score
	})

	pretty, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logger.Fatal("rendering report", zap.Error(err))
	}

	fmt.Println(string(pretty))
}
