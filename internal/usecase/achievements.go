package usecase

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/learnovatex/platform/internal/domain"
)

//go:embed achievements.yaml
var achievementsCatalog []byte

// Achievement is one unlockable badge with its earning rule. Category names
// group badges for display; the category itself serializes on the group,
// not on each item.
type Achievement struct {
	ID          string `yaml:"id" json:"id"`
	Category    string `yaml:"category" json:"-"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Metric      string `yaml:"metric" json:"-"`
	Threshold   int    `yaml:"threshold" json:"threshold"`
	Points      int    `yaml:"points" json:"points"`
}

// EarnedAchievement is an achievement with its evaluation outcome.
type EarnedAchievement struct {
	Achievement
	Earned   bool `json:"earned"`
	Progress int  `json:"progress"`
}

// AchievementCategory is one display group of evaluated badges, in catalog
// order.
type AchievementCategory struct {
	Name  string              `json:"category"`
	Items []EarnedAchievement `json:"items"`
}

type catalogFile struct {
	Achievements []Achievement `yaml:"achievements"`
}

// AchievementService evaluates the embedded catalog against a user's
// activity counters. Evaluation is stateless: badges are recomputed from
// history on every read and cannot be lost by a missed write.
type AchievementService struct {
	Stats       StatsService
	Leaderboard domain.CodeEvaluationRepository
	catalog     []Achievement
}

// NewAchievementService constructs an AchievementService from the embedded
// catalog. The catalog is part of the binary; a parse failure is a build
// defect, not a runtime condition.
func NewAchievementService(stats StatsService, lb domain.CodeEvaluationRepository) (AchievementService, error) {
	var f catalogFile
	if err := yaml.Unmarshal(achievementsCatalog, &f); err != nil {
		return AchievementService{}, fmt.Errorf("op=achievements.catalog: %w", err)
	}
	if len(f.Achievements) == 0 {
		return AchievementService{}, fmt.Errorf("op=achievements.catalog: empty catalog")
	}
	return AchievementService{Stats: stats, Leaderboard: lb, catalog: f.Achievements}, nil
}

// Catalog returns the full achievement list in catalog order.
func (s AchievementService) Catalog() []Achievement {
	out := make([]Achievement, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Evaluate computes every achievement's earned state for the user, grouped
// by category in catalog order, plus the total points from earned badges.
func (s AchievementService) Evaluate(ctx domain.Context, userID string) ([]AchievementCategory, int, error) {
	counters, err := s.Stats.Counters(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	metrics := map[string]int{
		"learning_sessions": counters.LearningSessions,
		"code_submissions":  counters.CodeSubmissions,
		"resume_analyses":   counters.ResumeAnalyses,
		"interviews_taken":  counters.InterviewsTaken,
	}

	if n, err := s.Stats.Learning.CountByUserSince(ctx, userID, time.Now().UTC().AddDate(0, 0, -7)); err == nil {
		metrics["learning_last_7_days"] = n
	}

	rank := 0
	if rows, err := s.Leaderboard.Leaderboard(ctx, 100); err == nil {
		for i, row := range rows {
			if row.UserID == userID {
				rank = i + 1
				break
			}
		}
	}

	var out []AchievementCategory
	index := map[string]int{}
	total := 0
	for _, a := range s.catalog {
		ea := EarnedAchievement{Achievement: a}
		if a.Metric == "leaderboard_rank" {
			// Rank rules invert: smaller is better, 0 means unranked.
			ea.Earned = rank > 0 && rank <= a.Threshold
			ea.Progress = rank
		} else {
			v := metrics[a.Metric]
			ea.Earned = v >= a.Threshold
			if v > a.Threshold {
				v = a.Threshold
			}
			ea.Progress = v
		}
		if ea.Earned {
			total += a.Points
		}
		i, ok := index[a.Category]
		if !ok {
			i = len(out)
			index[a.Category] = i
			out = append(out, AchievementCategory{Name: a.Category})
		}
		out[i].Items = append(out[i].Items, ea)
	}
	return out, total, nil
}
