package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/ai"
	"github.com/securestarter/role-recommender/internal/ai/gemini"
	"github.com/securestarter/role-recommender/internal/catalog"
	"github.com/securestarter/role-recommender/internal/logger"
	"github.com/securestarter/role-recommender/internal/ranking"
	"github.com/securestarter/role-recommender/internal/recommend"
	"github.com/securestarter/role-recommender/internal/roles"
	"github.com/securestarter/role-recommender/internal/secrets"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend courses and projects for a target role and sector",
	Run: func(cmd *cobra.Command, _ []string) {
		runRecommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("request", "r", "", "path to a request JSON file with the user profile and target")
	recommendCmd.Flags().String("sector", "", "target sector identifier (prompted when unset)")
	recommendCmd.Flags().String("role", "", "target role identifier (prompted when unset)")
	recommendCmd.Flags().String("education-level", "bachelors", "education level used for difficulty matching")
	recommendCmd.Flags().StringP("output", "o", "", "write the result JSON to this file instead of stdout")
}

// runRecommend is the main command for the cli.
func runRecommend(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the role-recommender", zap.String("version", version))

	if config == nil || config.KnowledgeBase == nil {
		logger.Fatal("knowledge-base paths are required in the configuration file")
	}

	snapshot, err := catalog.Load(catalog.Paths{
		Roles:    config.KnowledgeBase.Roles,
		Courses:  config.KnowledgeBase.Courses,
		Projects: config.KnowledgeBase.Projects,
	}, logger)
	if err != nil {
		logger.Fatal("loading knowledge base", zap.Error(err))
	}

	ranker, timeout := prepareRanker(ctx, config.AI, logger)
	coordinator := ranking.New(ranker, timeout, logger)
	service := recommend.NewService(snapshot, coordinator, logger)

	request, err := buildRequest(cmd, snapshot)
	if err != nil {
		logger.Fatal("building the request", zap.Error(err))
	}

	response, err := service.Recommend(ctx, request)
	switch {
	case errors.Is(err, roles.ErrRoleNotFound):
		logger.Fatal("unknown role for the given sector",
			zap.String("role", request.TargetRole),
			zap.String("sector", request.TargetSector),
			zap.Error(err),
		)
	case errors.Is(err, recommend.ErrEmptyShortlist):
		logger.Fatal("no suitable items for this role/sector combination", zap.Error(err))
	case err != nil:
		logger.Fatal("generating recommendations", zap.Error(err))
	}

	if err := writeResponse(cmd, response); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}

	logger.Info("recommendations ready",
		zap.Int("courses", len(response.Courses)),
		zap.Int("projects", len(response.Projects)),
	)
}

// prepareRanker selects the external ranking capability once at startup. A
// nil result means the coordinator runs its deterministic path for every
// request.
func prepareRanker(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Ranker, time.Duration) {
	if cfg == nil || !cfg.Enabled {
		log.Info("external ranking disabled by configuration")
		return nil, 0
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		log.Warn("skipping external ranking", zap.String("reason", "unsupported provider"), zap.String("provider", cfg.Provider))
		return nil, 0
	}

	if cfg.Gemini == nil {
		log.Warn("skipping external ranking", zap.String("reason", "gemini configuration is missing"))
		return nil, 0
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		log.Warn("skipping external ranking",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil, 0
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		log.Warn("skipping external ranking", zap.Error(err))
		return nil, 0
	}

	rankerLogger := logger.WithCommonFields(log, "gemini", generator.Model())
	timeout := time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second

	return gemini.NewRanker(generator, rankerLogger, cfg.Gemini.MaxLogLength), timeout
}

// buildRequest reads the request file when given, otherwise assembles a
// request from flags, prompting for the sector and role when they are not
// supplied.
func buildRequest(cmd *cobra.Command, snapshot *catalog.Snapshot) (*recommend.Request, error) {
	if path := cmd.Flag("request").Value.String(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}

		var request recommend.Request
		if err := json.Unmarshal(data, &request); err != nil {
			return nil, fmt.Errorf("parsing request file %q: %w", path, err)
		}
		return &request, nil
	}

	request := &recommend.Request{
		TargetSector:   cmd.Flag("sector").Value.String(),
		TargetRole:     cmd.Flag("role").Value.String(),
		EducationLevel: cmd.Flag("education-level").Value.String(),
	}

	if request.TargetSector == "" {
		sector, err := promptSector(snapshot.Roles)
		if err != nil {
			return nil, err
		}
		request.TargetSector = sector
	}

	if request.TargetRole == "" {
		role, err := promptRole(snapshot.Roles, request.TargetSector)
		if err != nil {
			return nil, err
		}
		request.TargetRole = role
	}

	return request, nil
}

func promptSector(rc *catalog.RoleCatalog) (string, error) {
	ids := rc.SectorIDs()
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, catalog.SectorDisplayName(id))
	}

	prompt := promptui.Select{
		Label: "Choose a target sector",
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("sector selection: %w", err)
	}

	return ids[idx], nil
}

func promptRole(rc *catalog.RoleCatalog, sectorID string) (string, error) {
	sector := rc.Sector(sectorID)
	if sector == nil {
		return "", fmt.Errorf("unknown sector %q", sectorID)
	}

	ids := sector.RoleIDs()
	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, sector.Roles[id].Name)
	}

	prompt := promptui.Select{
		Label: "Choose a target role",
		Items: labels,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("role selection: %w", err)
	}

	return ids[idx], nil
}

func writeResponse(cmd *cobra.Command, response *recommend.Response) error {
	pretty, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	if path := cmd.Flag("output").Value.String(); path != "" {
		return os.WriteFile(path, append(pretty, '\n'), 0o644)
	}

	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}
