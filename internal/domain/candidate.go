package domain

import (
	"context"
	"encoding/json"
	"strings"
)

// SourceType identifies which input channel seeded a profile field.
type SourceType string

const (
	SourceLinkedIn SourceType = "linkedin"
	SourceCV       SourceType = "cv"
	SourceBoth     SourceType = "both"
)

// CandidateStatus tracks where a candidate is in the pipeline.
type CandidateStatus string

const (
	StatusNew          CandidateStatus = "new"
	StatusReviewed     CandidateStatus = "reviewed"
	StatusInterviewing CandidateStatus = "interviewing"
	StatusHired        CandidateStatus = "hired"
	StatusRejected     CandidateStatus = "rejected"
)

type WorkExperienceEntry struct {
	ID          string     `json:"id"`
	Company     string     `json:"company"`
	Role        string     `json:"role"`
	Duration    string     `json:"duration"`
	Description string     `json:"description"`
	Source      SourceType `json:"source"`
}

type EducationEntry struct {
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	Year        FlexString `json:"year"`
	Source      SourceType `json:"source"`
}

type PortfolioLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CandidateProfile is the canonical candidate record. Consumers treat it as
// immutable: updates replace the whole profile, never patch it in place.
type CandidateProfile struct {
	ID              string                `json:"id"`
	FullName        string                `json:"fullName"`
	Headline        string                `json:"headline"`
	Location        string                `json:"location"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Bio             string                `json:"bio"`
	ProfilePicture  string                `json:"profilePicture"`
	Skills          []string              `json:"skills"`
	Certifications  []string              `json:"certifications"`
	WorkExperience  []WorkExperienceEntry `json:"workExperience"`
	Education       []EducationEntry      `json:"education"`
	PortfolioLinks  []PortfolioLink       `json:"portfolioLinks"`
	Recommendations []json.RawMessage     `json:"recommendations"`
	LinkedinURL     string                `json:"linkedinUrl"`
	CVFileName      string                `json:"cvFileName"`
	PrimarySource   SourceType            `json:"primarySource"`
	SubmittedAt     string                `json:"submittedAt"`
	Status          CandidateStatus       `json:"status"`
}

// RawCandidate is the untrusted payload shape returned by the extraction
// backend and read back from the persisted slot. Every field is optional;
// Normalize fills the gaps. "name" is a legacy alias some extractor versions
// emit instead of "fullName".
type RawCandidate struct {
	ID              string                `json:"id"`
	FullName        string                `json:"fullName"`
	Name            string                `json:"name"`
	Headline        string                `json:"headline"`
	Location        string                `json:"location"`
	Email           string                `json:"email"`
	Phone           string                `json:"phone"`
	Bio             string                `json:"bio"`
	ProfilePicture  string                `json:"profilePicture"`
	Skills          SkillList             `json:"skills"`
	Certifications  []string              `json:"certifications"`
	WorkExperience  []WorkExperienceEntry `json:"workExperience"`
	Education       []EducationEntry      `json:"education"`
	PortfolioLinks  []PortfolioLink       `json:"portfolioLinks"`
	Recommendations []json.RawMessage     `json:"recommendations"`
	LinkedinURL     string                `json:"linkedinUrl"`
	CVFileName      string                `json:"cvFileName"`
	PrimarySource   string                `json:"primarySource"`
	SubmittedAt     string                `json:"submittedAt"`
	Status          string                `json:"status"`
}

// SkillList decodes either a JSON array of strings or a single
// comma-separated string, which older extractor responses use.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*s = nil
		return nil
	}
	if trimmed[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*s = SkillList(strings.Split(joined, ","))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = SkillList(list)
	return nil
}

// FlexString decodes a JSON string or number into a string. Extractor
// responses carry education years both ways.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// SaveOutcome reports whether the candidate list reached the persistent slot.
// Persistence is best-effort: a skipped save is logged, never surfaced to the
// caller as an error.
type SaveOutcome struct {
	Persisted bool
	Reason    string
}

// Skipped builds a non-persisted outcome with the failure reason.
func Skipped(reason string) SaveOutcome {
	return SaveOutcome{Persisted: false, Reason: reason}
}

// CandidateSlot is the persistent slot holding the full candidate list.
type CandidateSlot interface {
	Load() []RawCandidate
	Save(list []CandidateProfile) SaveOutcome
}

// CVUpload carries an uploaded CV file through submission.
type CVUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExtractorClient talks to the external extraction backend.
type ExtractorClient interface {
	SubmitCandidate(ctx context.Context, linkedinURL string, cv *CVUpload) (RawCandidate, error)
	FetchAll(ctx context.Context) ([]RawCandidate, error)
	FetchByID(ctx context.Context, id string) (RawCandidate, error)
}

// SubmitInput is the pre-flight submission payload. At least one of the two
// fields must be present; the URL, when given, must be a LinkedIn profile URL.
type SubmitInput struct {
	LinkedinURL string `validate:"omitempty,startswith=https://www.linkedin.com/in/"`
	CV          *CVUpload
}

// ListQuery filters and paginates the dashboard candidate list.
type ListQuery struct {
	Query    string
	Status   string
	Page     int
	PageSize int
}

// CandidatePage is one page of filtered results.
type CandidatePage struct {
	Items    []CandidateProfile `json:"items"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

type CandidateUsecase interface {
	Submit(ctx context.Context, in SubmitInput) (CandidateProfile, error)
	List(q ListQuery) CandidatePage
	Get(ctx context.Context, id string) (CandidateProfile, error)
	Sync(ctx context.Context) (int, error)
}
