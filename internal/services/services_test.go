package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/job-marketplace-api/internal/database"
	"github.com/yukikurage/job-marketplace-api/internal/models"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// WorkflowTestSuite exercises the marketplace services against in-memory SQLite.
type WorkflowTestSuite struct {
	suite.Suite
	db *gorm.DB

	auth         *AuthService
	profiles     *ProfileService
	jobs         *JobService
	applications *ApplicationService
	interviews   *InterviewService
	resolver     *PrincipalResolver
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowTestSuite))
}

func (suite *WorkflowTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(database.AllModels()...))

	userRepo := repository.NewUserRepository(suite.db)
	jobRepo := repository.NewJobRepository(suite.db)
	appRepo := repository.NewApplicationRepository(suite.db)

	suite.auth = NewAuthService(userRepo)
	suite.profiles = NewProfileService(userRepo, repository.NewProfileRepository(suite.db))
	suite.jobs = NewJobService(jobRepo, repository.NewCategoryRepository(suite.db), appRepo, nil)
	suite.applications = NewApplicationService(appRepo, jobRepo)
	suite.interviews = NewInterviewService(repository.NewInterviewRepository(suite.db), appRepo)
	suite.resolver = NewPrincipalResolver(userRepo)
}

func (suite *WorkflowTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *WorkflowTestSuite) register(username string, client, freelancer bool) Principal {
	user, err := suite.auth.Register(RegisterInput{
		Username:     username,
		Password:     "supersecret",
		IsClient:     client,
		IsFreelancer: freelancer,
	})
	suite.Require().NoError(err)

	principal, err := suite.resolver.Resolve(user.ID)
	suite.Require().NoError(err)
	return principal
}

func (suite *WorkflowTestSuite) postJob(owner Principal) *models.JobListing {
	job, err := suite.jobs.CreateJob(owner, CreateJobInput{
		Title:       "Python Developer",
		Description: "Need a dev",
		Budget:      1000,
	})
	suite.Require().NoError(err)
	return job
}

func (suite *WorkflowTestSuite) apply(freelancer Principal, jobID uint64) *models.Application {
	app, err := suite.applications.Apply(freelancer, ApplyInput{
		JobID:           jobID,
		ProposalText:    "I can do this",
		ExpectedPayment: 500,
	})
	suite.Require().NoError(err)
	return app
}

func (suite *WorkflowTestSuite) countInterviews() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Interview{}).Count(&count).Error)
	return count
}

func (suite *WorkflowTestSuite) TestScenario_ApproveScheduleReschedule() {
	client := suite.register("client1", true, false)
	_, err := suite.profiles.UpdateProfile(client.UserID, UpdateProfileInput{CompanyName: strPtr("Tech Corp")})
	suite.Require().NoError(err)
	freelancer := suite.register("freelancer1", false, true)

	job := suite.postJob(client)
	suite.Equal(1000.0, job.Budget)
	suite.True(job.IsActive)

	app := suite.apply(freelancer, job.ID)
	suite.Equal(models.ApplicationStatusPending, app.Status)

	approved, err := suite.applications.UpdateStatus(client, app.ID, "Approved")
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatusApproved, approved.Status)

	first := time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC)
	interview, err := suite.interviews.Schedule(client, app.ID, ScheduleInput{
		DateTime: first,
		Platform: "Zoom",
		Link:     "https://zoom.us/j/123",
	})
	suite.Require().NoError(err)
	suite.Equal("https://zoom.us/j/123", interview.LinkOrLocation)
	suite.True(interview.DateTime.Equal(first))

	second := first.Add(26 * time.Hour)
	rescheduled, err := suite.interviews.Reschedule(client, interview.ID, ScheduleInput{
		DateTime: second,
		Platform: "Zoom",
		Link:     "https://zoom.us/j/123",
	})
	suite.Require().NoError(err)
	suite.Equal(interview.ID, rescheduled.ID)

	var stored models.Interview
	suite.Require().NoError(suite.db.First(&stored, interview.ID).Error)
	suite.True(stored.DateTime.Equal(second))
	suite.EqualValues(1, suite.countInterviews())
}

func (suite *WorkflowTestSuite) TestApply_DuplicateRejected() {
	client := suite.register("client1", true, false)
	freelancer := suite.register("freelancer1", false, true)
	job := suite.postJob(client)

	suite.apply(freelancer, job.ID)
	_, err := suite.applications.Apply(freelancer, ApplyInput{JobID: job.ID, ProposalText: "again", ExpectedPayment: 10})
	suite.ErrorIs(err, ErrAlreadyApplied)

	var count int64
	suite.db.Model(&models.Application{}).Count(&count)
	suite.EqualValues(1, count)

	hasApplied, err := suite.jobs.HasApplied(freelancer, job.ID)
	suite.Require().NoError(err)
	suite.True(hasApplied)
}

func (suite *WorkflowTestSuite) TestApply_Guards() {
	both := suite.register("both", true, true)
	client := suite.register("client1", true, false)
	job := suite.postJob(both)

	_, err := suite.applications.Apply(client, ApplyInput{JobID: job.ID, ProposalText: "x", ExpectedPayment: 1})
	suite.ErrorIs(err, ErrNotFreelancer)

	_, err = suite.applications.Apply(both, ApplyInput{JobID: job.ID, ProposalText: "x", ExpectedPayment: 1})
	suite.ErrorIs(err, ErrOwnJob)

	freelancer := suite.register("freelancer1", false, true)
	_, err = suite.applications.Apply(freelancer, ApplyInput{JobID: 999, ProposalText: "x", ExpectedPayment: 1})
	suite.ErrorIs(err, ErrJobNotFound)

	_, err = suite.jobs.CloseJob(both, job.ID)
	suite.Require().NoError(err)
	_, err = suite.applications.Apply(freelancer, ApplyInput{JobID: job.ID, ProposalText: "x", ExpectedPayment: 1})
	suite.ErrorIs(err, ErrJobClosed)
}

func (suite *WorkflowTestSuite) TestUpdateStatus_NonOwnerNeverMutates() {
	owner := suite.register("owner", true, false)
	other := suite.register("other", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	_, err := suite.applications.UpdateStatus(other, app.ID, "Approved")
	suite.ErrorIs(err, ErrNotOwner)

	_, err = suite.applications.UpdateStatus(freelancer, app.ID, "Approved")
	suite.ErrorIs(err, ErrNotOwner)

	var stored models.Application
	suite.Require().NoError(suite.db.First(&stored, app.ID).Error)
	suite.Equal(models.ApplicationStatusPending, stored.Status)
}

func (suite *WorkflowTestSuite) TestUpdateStatus_InvalidTargetReported() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	for _, target := range []string{"Pending", "Hired", ""} {
		_, err := suite.applications.UpdateStatus(owner, app.ID, target)
		suite.ErrorIs(err, models.ErrInvalidStatusTarget)
	}

	_, err := suite.applications.UpdateStatus(owner, 999, "Approved")
	suite.ErrorIs(err, ErrApplicationNotFound)
}

func (suite *WorkflowTestSuite) TestUpdateStatus_RejectAfterInterviewDropsIt() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	_, err := suite.applications.UpdateStatus(owner, app.ID, "Approved")
	suite.Require().NoError(err)
	_, err = suite.interviews.Schedule(owner, app.ID, ScheduleInput{
		DateTime: time.Now().Add(time.Hour),
		Platform: "Google Meet",
		Link:     "https://meet.google.com/abc-defg-hij",
	})
	suite.Require().NoError(err)

	rejected, err := suite.applications.UpdateStatus(owner, app.ID, "Rejected")
	suite.Require().NoError(err)
	suite.Equal(models.ApplicationStatusRejected, rejected.Status)
	suite.Zero(suite.countInterviews())

	// Correction back to Approved is allowed, but the interview must be scheduled again.
	_, err = suite.applications.UpdateStatus(owner, app.ID, "Approved")
	suite.Require().NoError(err)
	suite.Zero(suite.countInterviews())
}

func (suite *WorkflowTestSuite) TestSchedule_Preconditions() {
	owner := suite.register("owner", true, false)
	other := suite.register("other", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)

	input := ScheduleInput{DateTime: time.Now().Add(time.Hour), Platform: "Zoom", Link: "https://zoom.us/j/1"}

	_, err := suite.interviews.Schedule(owner, app.ID, input)
	suite.ErrorIs(err, ErrApplicationNotApproved)

	_, err = suite.applications.UpdateStatus(owner, app.ID, "Approved")
	suite.Require().NoError(err)

	_, err = suite.interviews.Schedule(other, app.ID, input)
	suite.ErrorIs(err, ErrNotOwner)

	_, err = suite.interviews.Schedule(owner, app.ID, input)
	suite.Require().NoError(err)

	_, err = suite.interviews.Schedule(owner, app.ID, input)
	suite.ErrorIs(err, ErrInterviewExists)
	suite.EqualValues(1, suite.countInterviews())
}

func (suite *WorkflowTestSuite) TestSchedule_LinkMustMatchPlatform() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)
	_, err := suite.applications.UpdateStatus(owner, app.ID, "Approved")
	suite.Require().NoError(err)

	cases := []struct {
		input ScheduleInput
		field string
	}{
		{ScheduleInput{DateTime: time.Now(), Platform: "Zoom", Link: "https://meet.google.com/abc"}, "link"},
		{ScheduleInput{DateTime: time.Now(), Platform: "Microsoft Teams", Link: "https://zoom.us/j/1"}, "link"},
		{ScheduleInput{DateTime: time.Now(), Platform: "Zoom", Link: "zoom.us/j/1"}, "link"},
		{ScheduleInput{DateTime: time.Now(), Platform: "Skype", Link: "https://skype.com/x"}, "platform"},
		{ScheduleInput{Platform: "Zoom", Link: "https://zoom.us/j/1"}, "date_time"},
	}

	for _, tc := range cases {
		_, err := suite.interviews.Schedule(owner, app.ID, tc.input)
		var validationErr *ValidationError
		suite.Require().ErrorAs(err, &validationErr)
		suite.Equal(tc.field, validationErr.Field)
	}
	suite.Zero(suite.countInterviews())
}

func (suite *WorkflowTestSuite) TestReschedule_InvalidLinkLeavesRow() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)
	app := suite.apply(freelancer, suite.postJob(owner).ID)
	_, err := suite.applications.UpdateStatus(owner, app.ID, "Approved")
	suite.Require().NoError(err)

	interview, err := suite.interviews.Schedule(owner, app.ID, ScheduleInput{
		DateTime: time.Now().Add(time.Hour), Platform: "Zoom", Link: "https://zoom.us/j/1",
	})
	suite.Require().NoError(err)

	_, err = suite.interviews.Reschedule(owner, interview.ID, ScheduleInput{
		DateTime: time.Now().Add(2 * time.Hour), Platform: "Zoom", Link: "https://example.com/meet",
	})
	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)

	var stored models.Interview
	suite.Require().NoError(suite.db.First(&stored, interview.ID).Error)
	suite.Equal("https://zoom.us/j/1", stored.LinkOrLocation)

	// The applicant may read it, other users may not.
	_, err = suite.interviews.GetInterview(freelancer, interview.ID)
	suite.NoError(err)
	stranger := suite.register("stranger", false, true)
	_, err = suite.interviews.GetInterview(stranger, interview.ID)
	suite.ErrorIs(err, ErrNotOwner)
}

func (suite *WorkflowTestSuite) TestListings() {
	owner := suite.register("owner", true, false)
	other := suite.register("other", true, false)
	freelancer := suite.register("freelancer1", false, true)
	job := suite.postJob(owner)
	suite.postJob(other)
	suite.apply(freelancer, job.ID)

	_, apps, err := suite.applications.ListForJob(owner, job.ID)
	suite.Require().NoError(err)
	suite.Len(apps, 1)

	_, _, err = suite.applications.ListForJob(other, job.ID)
	suite.ErrorIs(err, ErrNotOwner)

	mine, err := suite.applications.ListForFreelancer(freelancer)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal(job.ID, mine[0].Job.ID)

	ownJobs, err := suite.jobs.ListClientJobs(owner)
	suite.Require().NoError(err)
	suite.Len(ownJobs, 1)

	active, total, err := suite.jobs.ListActiveJobs(ListJobsInput{Page: 1, PageSize: 10})
	suite.Require().NoError(err)
	suite.EqualValues(2, total)
	suite.Len(active, 2)

	suite.ErrorIs(suite.jobs.DeleteJob(other, job.ID), ErrNotOwner)
	suite.Require().NoError(suite.jobs.DeleteJob(owner, job.ID))
	_, err = suite.jobs.GetJob(job.ID)
	suite.ErrorIs(err, ErrJobNotFound)
}

func (suite *WorkflowTestSuite) TestCreateJob_Validation() {
	owner := suite.register("owner", true, false)
	freelancer := suite.register("freelancer1", false, true)

	_, err := suite.jobs.CreateJob(freelancer, CreateJobInput{Title: "x", Budget: 1})
	suite.ErrorIs(err, ErrNotClient)

	_, err = suite.jobs.CreateJob(owner, CreateJobInput{Title: "  ", Budget: 1})
	suite.ErrorIs(err, ErrTitleRequired)

	_, err = suite.jobs.CreateJob(owner, CreateJobInput{Title: "x", Budget: 0})
	suite.ErrorIs(err, ErrInvalidBudget)

	missing := uint64(42)
	_, err = suite.jobs.CreateJob(owner, CreateJobInput{Title: "x", Budget: 1, CategoryID: &missing})
	suite.ErrorIs(err, ErrCategoryNotFound)
}

func (suite *WorkflowTestSuite) TestCategories_AdminOnly() {
	owner := suite.register("owner", true, false)
	admin := owner
	admin.IsAdmin = true

	_, err := suite.jobs.CreateCategory(owner, "IT")
	suite.ErrorIs(err, ErrNotAdmin)

	category, err := suite.jobs.CreateCategory(admin, "IT")
	suite.Require().NoError(err)
	_, err = suite.jobs.CreateCategory(admin, "IT")
	suite.ErrorIs(err, ErrCategoryExists)

	job, err := suite.jobs.CreateJob(owner, CreateJobInput{Title: "x", Budget: 1, CategoryID: &category.ID})
	suite.Require().NoError(err)
	suite.Require().NotNil(job.Category)

	suite.Require().NoError(suite.jobs.DeleteCategory(admin, category.ID))
	reloaded, err := suite.jobs.GetJob(job.ID)
	suite.Require().NoError(err)
	suite.Nil(reloaded.CategoryID)
}

func (suite *WorkflowTestSuite) TestDraftJob_Unconfigured() {
	owner := suite.register("owner", true, false)

	_, err := suite.jobs.DraftJob(context.Background(), owner, "logo for a bakery")
	suite.ErrorIs(err, ErrAIServiceNotConfigured)

	_, err = suite.jobs.DraftJob(context.Background(), owner, " ")
	suite.ErrorIs(err, ErrBriefRequired)
}

func strPtr(s string) *string { return &s }
