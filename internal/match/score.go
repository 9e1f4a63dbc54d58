// Package match implements the rule-weighted compatibility score between a
// job posting and the user's stated preferences.
//
// The score is additive, not averaged: each rule contributes its points
// independently and the sum is capped at 100. Missing or malformed
// preference fields contribute zero instead of erroring.
package match

import (
	"strings"

	"careerflix/backend/internal/model"
)

// Rule weights. The values are part of the product contract — changing one
// changes every stored digest going forward.
const (
	pointsTitleKeyword = 25
	pointsDescKeyword  = 15
	pointsLocation     = 15
	pointsMode         = 10
	pointsExperience   = 10
	pointsSkillOverlap = 15
	pointsRecency      = 5
	pointsSource       = 5

	maxScore = 100

	// Jobs posted within this many days earn the recency bonus.
	recencyWindowDays = 2

	// Source earning the flat source bonus. Exact, case-sensitive.
	bonusSource = "LinkedIn"
)

// Score computes the 0–100 match score of job against prefs.
// A nil prefs means no preferences are configured and always scores 0.
func Score(job model.Job, prefs *model.Preferences) int {
	if prefs == nil {
		return 0
	}

	score := 0

	keywords := SplitTerms(prefs.RoleKeywords)
	titleLower := strings.ToLower(job.Title)
	descLower := strings.ToLower(job.Description)
	if len(keywords) > 0 {
		if anySubstring(titleLower, keywords) {
			score += pointsTitleKeyword
		}
		// Independent of the title rule — a keyword in both earns both.
		if anySubstring(descLower, keywords) {
			score += pointsDescKeyword
		}
	}

	if len(prefs.PreferredLocations) > 0 && job.Location != "" && contains(prefs.PreferredLocations, job.Location) {
		score += pointsLocation
	}

	if len(prefs.PreferredMode) > 0 && job.Mode != "" && contains(prefs.PreferredMode, job.Mode) {
		score += pointsMode
	}

	if prefs.ExperienceLevel != "" && job.Experience == prefs.ExperienceLevel {
		score += pointsExperience
	}

	userSkills := SplitTerms(prefs.Skills)
	if len(userSkills) > 0 && hasSkillOverlap(job.Skills, userSkills) {
		score += pointsSkillOverlap
	}

	if job.PostedDaysAgo >= 0 && job.PostedDaysAgo <= recencyWindowDays {
		score += pointsRecency
	}

	if job.Source == bonusSource {
		score += pointsSource
	}

	if score > maxScore {
		return maxScore
	}
	return score
}

// SplitTerms splits comma-separated preference text into trimmed, lowercased,
// non-empty terms.
func SplitTerms(text string) []string {
	parts := strings.Split(text, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// hasSkillOverlap reports whether any job skill matches any user skill.
// The test is bidirectional substring containment, so "react" matches
// "react.js" and vice versa.
func hasSkillOverlap(jobSkills, userSkills []string) bool {
	for _, js := range jobSkills {
		jsLower := strings.ToLower(js)
		for _, us := range userSkills {
			if jsLower == us || strings.Contains(jsLower, us) || strings.Contains(us, jsLower) {
				return true
			}
		}
	}
	return false
}

func anySubstring(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
