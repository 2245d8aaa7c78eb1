package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strings"
	"time"

	"github.com/hueshadow/leadscout/internal/ai/gemini"
	"github.com/hueshadow/leadscout/internal/filtering"
	"github.com/hueshadow/leadscout/internal/leads"
	"github.com/hueshadow/leadscout/internal/logger"
	"github.com/hueshadow/leadscout/internal/outbox"
	"github.com/hueshadow/leadscout/internal/outreach"
	"github.com/hueshadow/leadscout/internal/pipeline"
	"github.com/hueshadow/leadscout/internal/profile"
	"github.com/hueshadow/leadscout/internal/secrets"
	"github.com/hueshadow/leadscout/internal/utils"
	"github.com/hueshadow/leadscout/internal/verify"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes            = "Yes"
	PromptNo             = "No"
	PromptReportByClient = "Report by client"
	PromptLeadsToFile    = "Dump leads to file"
	PromptMarkContacted  = "Append all leads to exclude file"

	defaultOutboxDir = "outbox"

	generationPause = 500 * time.Millisecond
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Generate outreach emails for these leads?",
	Items: []string{PromptYes, PromptNo, PromptReportByClient, PromptLeadsToFile, PromptMarkContacted},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score collected leads, filter them and generate outreach emails",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation if suitable leads are found")
	runCmd.Flags().BoolP("deep-contact-check", "m", false, "resolve MX records for contact email domains")
	runCmd.Flags().BoolP("include-contacted", "f", false, "do not exclude leads already recorded in the contacted file")
	runCmd.Flags().StringP("exclude-file", "e", "", "special file with already contacted leads. Default is unset.")

	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting leadscout", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.ProfileFile == "" {
		logger.Fatal("a profile file is required under profile-file to score and pitch leads")
	}

	userProfile, err := profile.Load(config.ProfileFile)
	if err != nil {
		logger.Fatal("loading user profile", zap.Error(err), zap.String("path", config.ProfileFile))
	}

	logger.Info("loaded user profile",
		zap.String("name", userProfile.Name),
		zap.Int("highlight_projects", len(userProfile.HighlightProjects)),
	)

	collected, err := getLeads(config, logger)
	if err != nil {
		logger.Fatal("getting collected leads", zap.Error(err))
	}

	if collected.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no leads found"))
		return
	}

	assembler, err := prepareAssembler(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("preparing email assembler", zap.Error(err))
	}

	pipe, err := pipeline.New(userProfile, assembler, logger)
	if err != nil {
		logger.Fatal("building pipeline", zap.Error(err))
	}

	pipe.ScoreAll(collected)

	filtered, err := runFilters(ctx, cmd, config, collected, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	collected = filtered

	if collected.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no leads left after filters"))
		return
	}

	store, err := outbox.NewStore(outboxDir(config))
	if err != nil {
		logger.Fatal("preparing outbox", zap.Error(err))
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of leads", zap.Int("count", collected.Len()))

		if err := handleAction(ctx, action, pipe, store, logger, collected); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if cmd.Flag("auto-approve").Value.String() == "true" {
			return
		}
	}
}

func handleAction(ctx context.Context, action string, pipe *pipeline.Pipeline, store *outbox.Store, logger *zap.Logger, collected *leads.Leads) error {
	switch action {
	case PromptYes:
		return generateEmails(ctx, pipe, store, logger, collected)
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByClient:
		pretty, _ := json.MarshalIndent(collected.ReportByClient(), "", "  ")
		logger.Info(string(pretty), zap.Int("leads count", collected.Len()))
		return nil
	case PromptLeadsToFile:
		filename, err := collected.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump leads to file: %w", err)
		}
		logger.Info("dumping leads to file", zap.String("filename", filename))
		return nil
	case PromptMarkContacted:
		return markContacted(logger, collected)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func generateEmails(ctx context.Context, pipe *pipeline.Pipeline, store *outbox.Store, logger *zap.Logger, collected *leads.Leads) error {
	for i, lead := range collected.Items {
		// Pace consecutive generations so an AI-backed assembler does not
		// hammer the upstream API.
		if i > 0 {
			if err := utils.WaitFor(ctx, generationPause); err != nil {
				return err
			}
		}

		an, am := pipe.AnalyzeAndMatch(lead)
		draft, err := pipe.AssembleEmail(ctx, lead, an, am)
		if err != nil {
			return err
		}

		record, err := store.Save(lead, draft)
		if err != nil {
			return fmt.Errorf("saving email for lead %s: %w", lead.ID, err)
		}

		logger.Info("generated outreach email",
			zap.String("lead_id", lead.ID),
			zap.String("client", lead.Client),
			zap.String("pitch_angle", draft.PitchAngle),
			zap.String("generator", draft.Generator),
			zap.String("file", record.File),
		)
	}

	logger.Info("successfully generated emails", zap.Int("count", collected.Len()))
	return errExit
}

func markContacted(logger *zap.Logger, collected *leads.Leads) error {
	excludeFile := strings.TrimSpace(viper.GetString("exclude-file"))
	if excludeFile == "" {
		return errors.New("exclude file is not configured")
	}

	contacted, err := leads.ContactedFromFile(excludeFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		contacted = &leads.ContactedLeads{}
	}

	contacted.Append(collected.ToContacted())

	if err := contacted.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	collected.Exclude(leads.LeadIDField, contacted.LeadIDs())
	return nil
}

// getLeads loads the collected leads file configured for this run.
func getLeads(config *Config, logger *zap.Logger) (*leads.Leads, error) {
	if config.LeadsFile == "" {
		return nil, errors.New("a leads file is required under leads-file")
	}

	collected, err := leads.FromFile(config.LeadsFile)
	if err != nil {
		return nil, fmt.Errorf("loading leads: %w", err)
	}

	logger.Info("loaded collected leads", zap.Int("count", collected.Len()))
	return collected, nil
}

func runFilters(ctx context.Context, cmd *cobra.Command, config *Config, collected *leads.Leads, logger *zap.Logger) (*leads.Leads, error) {
	cfg := &filtering.Config{
		ExcludeFile: strings.TrimSpace(viper.GetString("exclude-file")),
	}
	if cfg.ExcludeFile == "" {
		cfg.ExcludeFile = config.ExcludeFile
	}
	if config.Filters != nil {
		cfg.MinMatchScore = config.Filters.MinMatchScore
		cfg.RequireContact = config.Filters.RequireContact
	}

	opts := []verify.Option{}
	if cmd.Flag("deep-contact-check").Value.String() == "true" {
		opts = append(opts, verify.WithMXResolver(&mxResolver{}))
	}

	deps := filtering.Deps{
		Logger:  logger,
		Checker: verify.New(opts...),
	}

	steps := []filtering.Filter{
		filtering.NewDuplicates(),
		filtering.NewContacted(),
		filtering.NewContactCheck(),
		filtering.NewMinScore(),
	}

	if cmd.Flag("include-contacted").Value.String() == "true" {
		filtering.DisableByName(steps, filtering.ContactedFilterName, "include-contacted flag is set")
	}

	return filtering.Run(ctx, cfg, deps, steps, collected)
}

func prepareAssembler(ctx context.Context, config *AIConfig, logger *zap.Logger) (outreach.Assembler, error) {
	template := outreach.NewTemplateAssembler()

	if config == nil || !config.Enabled {
		return template, nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.Provider)
	}

	if config.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai generation is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries, logger)
	if err != nil {
		return nil, err
	}

	assembler := gemini.NewAssembler(generator, logger, config.Gemini.MaxLogLength)

	// A failed AI generation must degrade to the template path, never crash.
	return outreach.NewFallbackAssembler(assembler, template, logger), nil
}

func outboxDir(config *Config) string {
	if config.OutboxDir != "" {
		return config.OutboxDir
	}
	return defaultOutboxDir
}

type mxResolver struct{}

func (*mxResolver) LookupMX(domain string) (bool, error) {
	records, err := net.LookupMX(domain)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}
