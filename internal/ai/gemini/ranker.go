package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/securestarter/role-recommender/internal/ai"
	"github.com/securestarter/role-recommender/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Ranker asks Gemini to rank and explain shortlisted items. Output that
// violates the JSON contract or references items outside the shortlists is
// reported as an error; the coordinator falls back on any error.
type Ranker struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewRanker(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Ranker {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Ranker{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (r *Ranker) Rank(ctx context.Context, req *ai.RankRequest) (*ai.RankedSelection, error) {
	if req == nil {
		return nil, fmt.Errorf("rank request is required")
	}

	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rank request",
		zap.String("role_id", req.RoleID),
		zap.String("sector", req.Sector),
		zap.Int("shortlisted_courses", len(req.Courses)),
		zap.Int("shortlisted_projects", len(req.Projects)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rank response",
		zap.String("role_id", req.RoleID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	selection, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if err := enforceClosedWorld(req, selection); err != nil {
		return nil, err
	}

	return selection, nil
}

func buildPrompt(req *ai.RankRequest) (string, error) {
	userJSON, err := json.MarshalIndent(req.Profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal user profile: %w", err)
	}

	coursesJSON, err := json.MarshalIndent(req.Courses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal course shortlist: %w", err)
	}

	projectsJSON, err := json.MarshalIndent(req.Projects, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal project shortlist: %w", err)
	}

	replacer := strings.NewReplacer(
		"{{ROLE_ID}}", req.RoleID,
		"{{ROLE_NAME}}", req.RoleName,
		"{{SECTOR}}", req.Sector,
		"{{USER_JSON}}", string(userJSON),
		"{{COURSES_JSON}}", string(coursesJSON),
		"{{PROJECTS_JSON}}", string(projectsJSON),
		"{{NUM_COURSES}}", strconv.Itoa(req.MaxCourses),
		"{{NUM_PROJECTS}}", strconv.Itoa(req.MaxProjects),
	)

	return replacer.Replace(promptTemplate), nil
}

type rankedCourseEntry struct {
	CourseID    string `json:"course_id"`
	Explanation string `json:"explanation"`
}

type rankedProjectEntry struct {
	ProjectID   string `json:"project_id"`
	Explanation string `json:"explanation"`
}

type rankResponse struct {
	RankedCourses  []rankedCourseEntry  `json:"ranked_courses"`
	RankedProjects []rankedProjectEntry `json:"ranked_projects"`
	Reasoning      string               `json:"reasoning"`
}

// parseResponse enforces the generator contract: the cleaned output must be a
// JSON object with the ranked_courses, ranked_projects, and reasoning keys.
// Any deviation is a failure, never a partial success.
func parseResponse(raw string) (*ai.RankedSelection, error) {
	cleaned := extractJSON(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	for _, key := range []string{"ranked_courses", "ranked_projects", "reasoning"} {
		if _, ok := payload[key]; !ok {
			return nil, fmt.Errorf("gemini response missing required key %q", key)
		}
	}

	var resp rankResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &resp,
		TagName: "json",
	})
	if err != nil {
		return nil, fmt.Errorf("build response decoder: %w", err)
	}
	if err := decoder.Decode(payload); err != nil {
		return nil, fmt.Errorf("decode gemini response: %w", err)
	}

	selection := &ai.RankedSelection{Reasoning: strings.TrimSpace(resp.Reasoning)}
	for _, entry := range resp.RankedCourses {
		selection.Courses = append(selection.Courses, ai.RankedItem{
			ID:          strings.TrimSpace(entry.CourseID),
			Explanation: strings.TrimSpace(entry.Explanation),
		})
	}
	for _, entry := range resp.RankedProjects {
		selection.Projects = append(selection.Projects, ai.RankedItem{
			ID:          strings.TrimSpace(entry.ProjectID),
			Explanation: strings.TrimSpace(entry.Explanation),
		})
	}

	return selection, nil
}

// enforceClosedWorld rejects output that names any item absent from the
// shortlists handed to the generator.
func enforceClosedWorld(req *ai.RankRequest, selection *ai.RankedSelection) error {
	courseIDs := make(map[string]struct{}, len(req.Courses))
	for _, course := range req.Courses {
		courseIDs[course.ID] = struct{}{}
	}
	projectIDs := make(map[string]struct{}, len(req.Projects))
	for _, project := range req.Projects {
		projectIDs[project.ID] = struct{}{}
	}

	for _, item := range selection.Courses {
		if _, ok := courseIDs[item.ID]; !ok {
			return fmt.Errorf("gemini response references unknown course %q", item.ID)
		}
	}
	for _, item := range selection.Projects {
		if _, ok := projectIDs[item.ID]; !ok {
			return fmt.Errorf("gemini response references unknown project %q", item.ID)
		}
	}

	return nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
