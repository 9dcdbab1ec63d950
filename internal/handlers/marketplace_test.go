package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/job-marketplace-api/internal/constants"
	"github.com/yukikurage/job-marketplace-api/internal/database"
	"github.com/yukikurage/job-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/job-marketplace-api/internal/errors"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"github.com/yukikurage/job-marketplace-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MarketplaceTestSuite drives the full router over HTTP.
type MarketplaceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestMarketplaceTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceTestSuite))
}

// SetupTest runs before each test
func (suite *MarketplaceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(database.AllModels()...))
	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	jobRepo := repository.NewJobRepository(suite.db)
	appRepo := repository.NewApplicationRepository(suite.db)

	jobService := services.NewJobService(jobRepo, repository.NewCategoryRepository(suite.db), appRepo, nil)
	applicationService := services.NewApplicationService(appRepo, jobRepo)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.RequestID())
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	RegisterRoutes(suite.router, Handlers{
		Auth:        NewAuthHandler(services.NewAuthService(userRepo)),
		Dashboard:   NewDashboardHandler(jobService, applicationService),
		Job:         NewJobHandler(jobService),
		Application: NewApplicationHandler(applicationService),
		Interview:   NewInterviewHandler(services.NewInterviewService(repository.NewInterviewRepository(suite.db), appRepo)),
		Profile:     NewProfileHandler(services.NewProfileService(userRepo, repository.NewProfileRepository(suite.db))),
	})
}

// TearDownTest runs after each test
func (suite *MarketplaceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *MarketplaceTestSuite) request(method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		suite.Require().NoError(json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// register signs a user up and returns the session cookies.
func (suite *MarketplaceTestSuite) register(username string, client, freelancer bool) []*http.Cookie {
	w := suite.request(http.MethodPost, "/register/", map[string]interface{}{
		"username":      username,
		"password":      "supersecret",
		"is_client":     client,
		"is_freelancer": freelancer,
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func (suite *MarketplaceTestSuite) decode(w *httptest.ResponseRecorder, target interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}

func (suite *MarketplaceTestSuite) postJob(session []*http.Cookie) dto.JobDTO {
	w := suite.request(http.MethodPost, "/post-job/", map[string]interface{}{
		"title":       "Python Developer",
		"description": "Need a dev",
		"budget":      1000,
		"deadline":    "2030-12-31",
	}, session)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var job dto.JobDTO
	suite.decode(w, &job)
	return job
}

func (suite *MarketplaceTestSuite) apply(session []*http.Cookie, jobID uint64) dto.ApplicationDTO {
	w := suite.request(http.MethodPost, fmt.Sprintf("/jobs/%d/", jobID), map[string]interface{}{
		"proposal_text":    "I can do this",
		"expected_payment": 500,
	}, session)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var app dto.ApplicationDTO
	suite.decode(w, &app)
	return app
}

func (suite *MarketplaceTestSuite) TestTechCorpScenario() {
	client := suite.register("client1", true, false)
	w := suite.request(http.MethodPost, "/profile/update/", map[string]interface{}{"company_name": "Tech Corp"}, client)
	suite.Require().Equal(http.StatusOK, w.Code)

	freelancer := suite.register("freelancer1", false, true)

	job := suite.postJob(client)
	suite.Equal(1000.0, job.Budget)
	suite.Equal("Tech Corp", job.CompanyName)

	app := suite.apply(freelancer, job.ID)
	suite.Equal(models.ApplicationStatusPending, app.Status)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Approved/", app.ID), nil, client)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.StatusUpdateResponse
	suite.decode(w, &updated)
	suite.Equal(models.ApplicationStatusApproved, updated.Application.Status)
	suite.Equal(fmt.Sprintf("/application/%d/schedule/", app.ID), updated.Next)

	w = suite.request(http.MethodPost, updated.Next, map[string]string{
		"date_time": "2030-05-01T09:00:00Z",
		"platform":  "Zoom",
		"link":      "https://zoom.us/j/123",
	}, client)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var interview dto.InterviewDTO
	suite.decode(w, &interview)
	suite.Equal("https://zoom.us/j/123", interview.LinkOrLocation)
	suite.Equal(models.InterviewStatusScheduled, interview.Status)

	w = suite.request(http.MethodPost, fmt.Sprintf("/interview/%d/reschedule/", interview.ID), map[string]string{
		"date_time": "2030-05-02T11:00:00Z",
		"platform":  "Zoom",
		"link":      "https://zoom.us/j/123",
	}, client)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var rescheduled dto.InterviewDTO
	suite.decode(w, &rescheduled)
	suite.Equal(interview.ID, rescheduled.ID)
	suite.True(rescheduled.DateTime.Equal(time.Date(2030, 5, 2, 11, 0, 0, 0, time.UTC)))

	// The freelancer sees the interview on their dashboard.
	w = suite.request(http.MethodGet, "/dashboard/freelancer/", nil, freelancer)
	suite.Require().Equal(http.StatusOK, w.Code)
	var dashboard struct {
		Applications []dto.ApplicationDTO `json:"applications"`
	}
	suite.decode(w, &dashboard)
	suite.Require().Len(dashboard.Applications, 1)
	suite.Require().NotNil(dashboard.Applications[0].Interview)
	suite.Equal(interview.ID, dashboard.Applications[0].Interview.ID)
}

func (suite *MarketplaceTestSuite) TestUpdateStatus_Errors() {
	owner := suite.register("owner", true, false)
	other := suite.register("other", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	w := suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Approved/", app.ID), nil, other)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Hired/", app.ID), nil, owner)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/application/9999/update/Approved/", nil, owner)
	suite.Equal(http.StatusNotFound, w.Code)

	// Freelancers are not clients.
	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Approved/", app.ID), nil, freelancer)
	suite.Equal(http.StatusForbidden, w.Code)

	var stored models.Application
	suite.Require().NoError(suite.db.First(&stored, app.ID).Error)
	suite.Equal(models.ApplicationStatusPending, stored.Status)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Rejected/", app.ID), nil, owner)
	suite.Require().Equal(http.StatusOK, w.Code)
	var updated dto.StatusUpdateResponse
	suite.decode(w, &updated)
	suite.Equal(fmt.Sprintf("/job/%d/applications/", app.JobID), updated.Next)
}

func (suite *MarketplaceTestSuite) TestApply_DuplicateConflict() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	job := suite.postJob(owner)
	suite.apply(freelancer, job.ID)

	w := suite.request(http.MethodPost, fmt.Sprintf("/jobs/%d/", job.ID), map[string]interface{}{
		"proposal_text":    "again",
		"expected_payment": 400,
	}, freelancer)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/jobs/%d/", job.ID), nil, freelancer)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail dto.JobDetailDTO
	suite.decode(w, &detail)
	suite.True(detail.HasApplied)
	suite.False(detail.IsOwner)

	// Client-only users cannot apply.
	w = suite.request(http.MethodPost, fmt.Sprintf("/jobs/%d/", job.ID), map[string]interface{}{
		"proposal_text":    "x",
		"expected_payment": 1,
	}, owner)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *MarketplaceTestSuite) TestSchedule_InvalidLink() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	w := suite.request(http.MethodPost, fmt.Sprintf("/application/%d/schedule/", app.ID), map[string]string{
		"date_time": "2030-05-01T09:00:00Z",
		"platform":  "Zoom",
		"link":      "https://zoom.us/j/1",
	}, owner)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/update/Approved/", app.ID), nil, owner)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/schedule/", app.ID), map[string]string{
		"date_time": "2030-05-01T09:00:00Z",
		"platform":  "Microsoft Teams",
		"link":      "https://zoom.us/j/1",
	}, owner)
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var apiErr struct {
		Code    string                 `json:"code"`
		Details apierrors.FieldDetails `json:"details"`
	}
	suite.decode(w, &apiErr)
	suite.Equal(apierrors.ErrCodeValidationFailed, apiErr.Code)
	suite.Equal("link", apiErr.Details.Field)

	w = suite.request(http.MethodPost, fmt.Sprintf("/application/%d/schedule/", app.ID), map[string]string{
		"date_time": "tomorrow",
		"platform":  "Zoom",
		"link":      "https://zoom.us/j/1",
	}, owner)
	suite.Equal(http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Interview{}).Count(&count)
	suite.Zero(count)
}

func (suite *MarketplaceTestSuite) TestDashboardRedirects() {
	client := suite.register("client1", true, false)
	freelancer := suite.register("freelancer1", false, true)

	w := suite.request(http.MethodGet, "/", nil, client)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/dashboard/client/", w.Header().Get("Location"))

	w = suite.request(http.MethodGet, "/dashboard/", nil, freelancer)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/dashboard/freelancer/", w.Header().Get("Location"))

	w = suite.request(http.MethodGet, "/dashboard/client/", nil, freelancer)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))

	w = suite.request(http.MethodGet, "/dashboard/freelancer/", nil, client)
	suite.Equal(http.StatusFound, w.Code)
	suite.Equal("/", w.Header().Get("Location"))

	w = suite.request(http.MethodGet, "/", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *MarketplaceTestSuite) TestJobLifecycle() {
	owner := suite.register("owner", true, false)
	other := suite.register("other", true, false)
	job := suite.postJob(owner)
	suite.postJob(other)

	w := suite.request(http.MethodGet, "/jobs/?page=1&page_size=1", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.JobListResponse
	suite.decode(w, &list)
	suite.Len(list.Jobs, 1)
	suite.EqualValues(2, list.TotalCount)
	suite.Equal(2, list.TotalPages)

	w = suite.request(http.MethodPost, fmt.Sprintf("/jobs/%d/close/", job.ID), nil, other)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, fmt.Sprintf("/jobs/%d/close/", job.ID), nil, owner)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/jobs/", nil, nil)
	suite.decode(w, &list)
	suite.EqualValues(1, list.TotalCount)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/jobs/%d/", job.ID), nil, owner)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/jobs/%d/", job.ID), nil, nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPost, "/post-job/draft/", map[string]string{"brief": "a logo"}, owner)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *MarketplaceTestSuite) TestCategories() {
	admin := suite.register("admin", true, false)
	suite.Require().NoError(suite.db.Model(&models.User{}).Where("username = ?", "admin").Update("is_admin", true).Error)
	client := suite.register("client1", true, false)

	w := suite.request(http.MethodPost, "/categories/", map[string]string{"name": "Design"}, client)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/categories/", map[string]string{"name": "Design"}, admin)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var category dto.CategoryDTO
	suite.decode(w, &category)

	w = suite.request(http.MethodPost, "/categories/", map[string]string{"name": "Design"}, admin)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPost, "/post-job/", map[string]interface{}{
		"title":       "Logo",
		"budget":      200,
		"category_id": category.ID,
	}, client)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodGet, fmt.Sprintf("/jobs/?category_id=%d", category.ID), nil, nil)
	var list dto.JobListResponse
	suite.decode(w, &list)
	suite.Require().Len(list.Jobs, 1)
	suite.Require().NotNil(list.Jobs[0].Category)
	suite.Equal("Design", list.Jobs[0].Category.Name)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/categories/%d/", category.ID), nil, admin)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/categories/", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"categories":[]}`, w.Body.String())
}

func (suite *MarketplaceTestSuite) TestProfileAndVerification() {
	freelancer := suite.register("freelancer1", false, true)

	w := suite.request(http.MethodPost, "/profile/update/", map[string]interface{}{
		"portfolio_link": "https://me.example.com",
		"skills": []map[string]string{
			{"name": "Go", "proficiency_level": "Expert"},
		},
	}, freelancer)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/profile/verification/", map[string]string{
		"document_url": "https://docs.example.com/passport.pdf",
	}, freelancer)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/me/", nil, freelancer)
	suite.Require().Equal(http.StatusOK, w.Code)
	var me dto.MeDTO
	suite.decode(w, &me)
	suite.Require().NotNil(me.Freelancer)
	suite.Equal("https://me.example.com", me.Freelancer.PortfolioLink)
	suite.Require().Len(me.Freelancer.Skills, 1)
	suite.Equal(models.ProficiencyExpert, me.Freelancer.Skills[0].ProficiencyLevel)
	suite.Require().NotNil(me.Verification)
	suite.False(me.Verification.IsVerified)

	w = suite.request(http.MethodPost, "/profile/update/", map[string]interface{}{
		"skills": []map[string]string{{"name": "Go", "proficiency_level": "Wizard"}},
	}, freelancer)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MarketplaceTestSuite) TestRequestIDAndLogout() {
	session := suite.register("client1", true, false)

	w := suite.request(http.MethodGet, "/health", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(constants.RequestIDHeader))

	w = suite.request(http.MethodPost, "/logout/", nil, session)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/me/", nil, w.Result().Cookies())
	suite.Equal(http.StatusUnauthorized, w.Code)
}
