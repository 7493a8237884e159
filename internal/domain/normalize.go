package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Normalize maps an arbitrary extractor or slot payload to the canonical
// profile shape. It is total and idempotent: defaulting fills only missing
// fields, so a profile that already carries an id or submittedAt keeps them.
func Normalize(raw RawCandidate) CandidateProfile {
	p := CandidateProfile{
		ID:              raw.ID,
		FullName:        raw.FullName,
		Headline:        raw.Headline,
		Location:        raw.Location,
		Email:           raw.Email,
		Phone:           raw.Phone,
		Bio:             raw.Bio,
		ProfilePicture:  raw.ProfilePicture,
		Skills:          cleanSkills(raw.Skills),
		Certifications:  cloneOrEmpty(raw.Certifications),
		WorkExperience:  cloneOrEmpty(raw.WorkExperience),
		Education:       cloneOrEmpty(raw.Education),
		PortfolioLinks:  cloneOrEmpty(raw.PortfolioLinks),
		Recommendations: cloneOrEmpty[json.RawMessage](raw.Recommendations),
		LinkedinURL:     raw.LinkedinURL,
		CVFileName:      raw.CVFileName,
		PrimarySource:   SourceType(raw.PrimarySource),
		SubmittedAt:     raw.SubmittedAt,
		Status:          CandidateStatus(raw.Status),
	}

	if p.ID == "" {
		p.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if p.FullName == "" {
		p.FullName = raw.Name
	}
	if p.PrimarySource == "" {
		p.PrimarySource = SourceLinkedIn
	}
	if p.SubmittedAt == "" {
		p.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if p.Status == "" {
		p.Status = StatusNew
	}
	return p
}

// cleanSkills trims every entry and drops empties, preserving order. Applies
// to both input forms so a canonical profile always carries tidy skills.
func cleanSkills(in SkillList) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	if len(in) == 0 {
		return []T{}
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
