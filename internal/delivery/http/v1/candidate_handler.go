package v1

import (
	"io"
	"net/http"
	"strconv"

	"talentlens-backend/internal/delivery/http/response"
	"talentlens-backend/internal/domain"
	"talentlens-backend/pkg/apperror"
	"talentlens-backend/pkg/upload"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("/search", handler.Submit)
		candidates.GET("", handler.List)
		candidates.GET("/:id", handler.Get)
		candidates.POST("/sync", handler.Sync)
	}
}

// Submit godoc
// @Summary      Extract and store a candidate profile
// @Description  Submit a LinkedIn URL and/or a CV file; the extraction backend parses them into a profile which is normalized and cached
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        linkedinUrl  formData  string  false  "LinkedIn profile URL"
// @Param        cvFile       formData  file    false  "CV file (PDF, DOC, DOCX, max 5MB)"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/search [post]
func (h *CandidateHandler) Submit(c *gin.Context) {
	in := domain.SubmitInput{LinkedinURL: c.PostForm("linkedinUrl")}

	fileHeader, err := c.FormFile("cvFile")
	if err == nil && fileHeader != nil {
		// Cheap size check before buffering the upload.
		if fileHeader.Size > upload.MaxCVSize {
			c.Error(apperror.BadRequest("File size exceeds 5MB. Please upload a smaller file."))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.Error(apperror.BadRequest("Could not read the uploaded file."))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			c.Error(apperror.BadRequest("Could not read the uploaded file."))
			return
		}

		in.CV = &domain.CVUpload{
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	profile, err := h.candidateUC.Submit(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile extracted", profile)
}

// List godoc
// @Summary      List cached candidates
// @Description  Returns the cached candidate list, filtered and paginated the way the dashboard table consumes it
// @Tags         candidates
// @Produce      json
// @Param        q         query  string  false  "Substring match on name, headline, or skills"
// @Param        status    query  string  false  "Status filter"  Enums(all, new, reviewed, interviewing, hired, rejected)
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        pageSize  query  int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  response.Response{data=domain.CandidatePage}
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	result := h.candidateUC.List(domain.ListQuery{
		Query:    c.Query("q"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	})

	response.Success(c, http.StatusOK, "Candidates", result)
}

// Get godoc
// @Summary      Get one candidate
// @Description  Serves the detail view from the cache, falling back to the extraction backend for unknown ids
// @Tags         candidates
// @Produce      json
// @Param        id  path  string  true  "Candidate id"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	profile, err := h.candidateUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

// Sync godoc
// @Summary      Pull all candidates from the extraction backend
// @Description  Fetches the backend's full candidate list and upserts every entry into the cache
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /candidates/sync [post]
func (h *CandidateHandler) Sync(c *gin.Context) {
	count, err := h.candidateUC.Sync(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidates synced", gin.H{"count": count})
}
