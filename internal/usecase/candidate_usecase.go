package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"talentlens-backend/internal/domain"
	"talentlens-backend/pkg/apperror"
	"talentlens-backend/pkg/extractor"
	"talentlens-backend/pkg/logger"
	"talentlens-backend/pkg/upload"

	"github.com/go-playground/validator/v10"
)

type candidateUsecase struct {
	store    *CandidateStore
	client   domain.ExtractorClient
	validate *validator.Validate
}

func NewCandidateUsecase(store *CandidateStore, client domain.ExtractorClient, validate *validator.Validate) domain.CandidateUsecase {
	return &candidateUsecase{
		store:    store,
		client:   client,
		validate: validate,
	}
}

// Submit runs all pre-flight validation before the extraction call, so a bad
// input never generates network traffic, and upserts the normalized result
// only after the backend succeeded. On any failure the store is untouched.
func (u *candidateUsecase) Submit(ctx context.Context, in domain.SubmitInput) (domain.CandidateProfile, error) {
	in.LinkedinURL = strings.TrimSpace(in.LinkedinURL)

	if in.LinkedinURL == "" && in.CV == nil {
		return domain.CandidateProfile{}, apperror.BadRequest("Please provide either a LinkedIn URL or upload a CV.")
	}
	if err := u.validate.Struct(in); err != nil {
		return domain.CandidateProfile{}, apperror.BadRequest("Please enter a valid LinkedIn profile URL (e.g. linkedin.com/in/username).")
	}
	if in.CV != nil {
		if res := upload.ValidateCV(in.CV.FileName, in.CV.Data, in.CV.ContentType); !res.Valid {
			return domain.CandidateProfile{}, apperror.BadRequest(res.Error)
		}
	}

	raw, err := u.client.SubmitCandidate(ctx, in.LinkedinURL, in.CV)
	if err != nil {
		return domain.CandidateProfile{}, err
	}

	profile, outcome := u.store.AddOrUpdate(raw)
	logSkipped(outcome)
	return profile, nil
}

// List filters the store snapshot the way the dashboard table does: substring
// match on name, headline, or any skill, plus an optional status filter, then
// page slicing.
func (u *candidateUsecase) List(q domain.ListQuery) domain.CandidatePage {
	all := u.store.List()
	needle := strings.ToLower(strings.TrimSpace(q.Query))

	filtered := make([]domain.CandidateProfile, 0, len(all))
	for _, c := range all {
		if needle != "" && !matchesQuery(c, needle) {
			continue
		}
		if q.Status != "" && q.Status != "all" && string(c.Status) != q.Status {
			continue
		}
		filtered = append(filtered, c)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	start := (page - 1) * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	return domain.CandidatePage{
		Items:    filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: size,
	}
}

// Get serves the detail view: local store first, then one fetch against the
// backend for ids this instance has not cached yet. A backend 404 becomes a
// plain not-found for the caller.
func (u *candidateUsecase) Get(ctx context.Context, id string) (domain.CandidateProfile, error) {
	if profile, ok := u.store.GetByID(id); ok {
		return profile, nil
	}

	raw, err := u.client.FetchByID(ctx, id)
	if err != nil {
		var apiErr *extractor.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return domain.CandidateProfile{}, apperror.NotFound("Candidate not found")
		}
		return domain.CandidateProfile{}, err
	}

	profile, outcome := u.store.AddOrUpdate(raw)
	logSkipped(outcome)
	return profile, nil
}

// Sync pulls the backend's full candidate list and upserts every entry,
// returning how many were processed.
func (u *candidateUsecase) Sync(ctx context.Context) (int, error) {
	raws, err := u.client.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	for _, raw := range raws {
		_, outcome := u.store.AddOrUpdate(raw)
		logSkipped(outcome)
	}
	return len(raws), nil
}

func matchesQuery(c domain.CandidateProfile, needle string) bool {
	if strings.Contains(strings.ToLower(c.FullName), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Headline), needle) {
		return true
	}
	for _, skill := range c.Skills {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func logSkipped(outcome domain.SaveOutcome) {
	if !outcome.Persisted {
		logger.Log.Warn("candidate list not persisted", "reason", outcome.Reason)
	}
}
