package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/draftforge/draftforge-backend/internal/common"
	"github.com/draftforge/draftforge-backend/internal/domain"
	"github.com/draftforge/draftforge-backend/internal/handler"
	"github.com/draftforge/draftforge-backend/internal/repository"
	"github.com/draftforge/draftforge-backend/internal/routes"
	"github.com/draftforge/draftforge-backend/internal/service"
	"github.com/draftforge/draftforge-backend/pkg/cache"
	"github.com/draftforge/draftforge-backend/pkg/jwt"
)

// APISuite drives the full HTTP stack against SQLite: routing, JWT
// auth, tenant scoping, and the versioning core behind the handlers.
type APISuite struct {
	suite.Suite
	db         *gorm.DB
	router     *gin.Engine
	jwtManager *jwt.Manager

	companyID string
	token     string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&domain.Company{},
		&domain.WriterProfile{},
		&domain.BlogPost{},
		&domain.SocialPost{},
		&domain.Snippet{},
		&domain.ContentVersion{},
		&domain.ContentRevision{},
	))
	s.db = db

	companyRepo := repository.NewCompanyRepository(db)
	writerRepo := repository.NewWriterProfileRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	socialRepo := repository.NewSocialPostRepository(db)
	snippetRepo := repository.NewSnippetRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	revisionRepo := repository.NewRevisionRepository(db)

	locks := common.NewKeyedMutex()
	noCache := cache.NewService(nil)

	versionSvc := service.NewVersionService(versionRepo, revisionRepo, locks, noCache)
	generationSvc := service.NewGenerationService("draftforge-copy-1")

	s.jwtManager = jwt.NewManager("integration-test-secret", time.Hour)

	s.router = gin.New()
	routes.Setup(s.router, &routes.Handlers{
		Company:    handler.NewCompanyHandler(service.NewCompanyService(companyRepo)),
		Writer:     handler.NewWriterProfileHandler(service.NewWriterProfileService(writerRepo)),
		Blog:       handler.NewBlogPostHandler(service.NewBlogPostService(blogRepo, companyRepo, writerRepo, versionSvc, generationSvc)),
		Social:     handler.NewSocialPostHandler(service.NewSocialPostService(socialRepo, companyRepo, writerRepo, versionSvc, generationSvc)),
		Snippet:    handler.NewSnippetHandler(service.NewSnippetService(snippetRepo, versionSvc)),
		History:    handler.NewHistoryHandler(service.NewHistoryService(versionRepo, revisionRepo, noCache), versionSvc, service.NewComparisonService(versionRepo), service.NewRestoreService(db, versionRepo, revisionRepo, blogRepo, socialRepo, snippetRepo, locks, noCache)),
		Compliance: handler.NewComplianceHandler(service.NewComplianceService([]string{"miracle"})),
	}, s.jwtManager)

	company := &domain.Company{Name: "Acme", BrandVoice: "warm"}
	s.Require().NoError(companyRepo.Create(company))
	s.companyID = company.ID.String()

	token, err := s.jwtManager.GenerateToken("user-1", "Casey", s.companyID)
	s.Require().NoError(err)
	s.token = token
}

func (s *APISuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APISuite) decodeData(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func (s *APISuite) createBlogPost(title, body string) string {
	w := s.request(http.MethodPost, "/api/v1/companies/"+s.companyID+"/blog-posts",
		gin.H{"title": title, "body": body}, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return s.decodeData(w)["id"].(string)
}

func (s *APISuite) TestRequiresAuth() {
	w := s.request(http.MethodGet, "/api/v1/companies", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(w.Body.String(), common.ErrUnauthorized.Error())
}

func (s *APISuite) TestTenantIsolation() {
	otherToken, err := s.jwtManager.GenerateToken("user-9", "Riley", "b8f4e6e2-0000-0000-0000-000000000000")
	s.Require().NoError(err)

	w := s.request(http.MethodGet, "/api/v1/companies/"+s.companyID+"/blog-posts", nil, otherToken)
	s.Equal(http.StatusForbidden, w.Code)
	s.Contains(w.Body.String(), common.ErrForbidden.Error())
}

func (s *APISuite) TestBlogPostVersionLifecycle() {
	postID := s.createBlogPost("Launch notes", "first draft\n")

	// Two edits
	for i, body := range []string{"second draft\n", "third draft\n"} {
		w := s.request(http.MethodPut,
			fmt.Sprintf("/api/v1/companies/%s/blog-posts/%s", s.companyID, postID),
			gin.H{"body": body}, s.token)
		s.Require().Equal(http.StatusOK, w.Code, "edit %d: %s", i, w.Body.String())
	}

	// History shows three versions with a summary
	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/blog_post/%s/history", postID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	history := s.decodeData(w)
	s.Len(history["versions"], 3)
	summary := history["summary"].(map[string]interface{})
	s.EqualValues(3, summary["total_changes"])

	// Compare 1 and 3
	w = s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/blog_post/%s/compare?from=1&to=3", postID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	comparison := s.decodeData(w)
	s.EqualValues(3, comparison["summary"].(map[string]interface{})["versions_in_span"])

	// Restore version 1, then the live body is the first draft again
	w = s.request(http.MethodPost,
		fmt.Sprintf("/api/v1/content/blog_post/%s/restore/1", postID), gin.H{}, s.token)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/companies/%s/blog-posts/%s", s.companyID, postID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("first draft\n", s.decodeData(w)["body"])

	// The restore itself is version 4
	w = s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/blog_post/%s/versions/4", postID), nil, s.token)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("restore", s.decodeData(w)["change_type"])
}

func (s *APISuite) TestVersionNotFound() {
	postID := s.createBlogPost("Launch notes", "draft\n")

	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/blog_post/%s/versions/9", postID), nil, s.token)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost,
		fmt.Sprintf("/api/v1/content/blog_post/%s/restore/9", postID), gin.H{}, s.token)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *APISuite) TestInvalidEntityType() {
	w := s.request(http.MethodGet,
		"/api/v1/content/newsletter/b8f4e6e2-0000-0000-0000-000000000000/history", nil, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APISuite) TestHistoryRejectsBadParagraphIndex() {
	postID := s.createBlogPost("Launch notes", "draft\n")

	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/blog_post/%s/history?paragraph_index=abc", postID), nil, s.token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "paragraph_index")
}

func (s *APISuite) TestGenerateSocialPost() {
	writerW := s.request(http.MethodPost, "/api/v1/companies/"+s.companyID+"/writer-profiles",
		gin.H{"name": "Ops voice", "tone": "confident"}, s.token)
	s.Require().Equal(http.StatusCreated, writerW.Code, writerW.Body.String())
	profileID := s.decodeData(writerW)["id"].(string)

	w := s.request(http.MethodPost, "/api/v1/companies/"+s.companyID+"/social-posts/generate",
		gin.H{"writer_profile_id": profileID, "platform": "linkedin", "topic": "brand voice"}, s.token)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	post := s.decodeData(w)
	s.Contains(post["body"], "Acme")

	// Generation is recorded as an AI change
	histW := s.request(http.MethodGet,
		fmt.Sprintf("/api/v1/content/social_post/%s/history", post["id"]), nil, s.token)
	s.Require().Equal(http.StatusOK, histW.Code)
	summary := s.decodeData(histW)["summary"].(map[string]interface{})
	s.EqualValues(1, summary["ai_changes"])
}

func (s *APISuite) TestComplianceScan() {
	w := s.request(http.MethodPost, "/api/v1/compliance/scan",
		gin.H{"content": "A miracle product with guaranteed results."}, s.token)
	s.Require().Equal(http.StatusOK, w.Code)
	data := s.decodeData(w)
	s.Equal(false, data["clean"])
	s.Len(data["findings"], 2)
}
