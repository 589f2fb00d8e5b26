package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/testutil"
)

type ModerationSuite struct {
	suite.Suite
	env   testEnv
	admin *models.User
}

func (s *ModerationSuite) SetupTest() {
	s.env = setupTestEnv(s.T())
	s.admin = testutil.NewUser(s.T(), s.env.db, models.RoleAdmin)
}

func (s *ModerationSuite) actor() Actor {
	return actorFor(s.admin)
}

func (s *ModerationSuite) count(model any) int64 {
	var n int64
	s.Require().NoError(s.env.db.Model(model).Count(&n).Error)
	return n
}

func (s *ModerationSuite) TestNonAdminIsRejected() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, false)

	err := s.env.moderation.Approve(actorFor(employer), KindCompany, company.ID)
	s.ErrorIs(err, ErrPermissionDenied)

	_, err = s.env.moderation.Overview(actorFor(employer))
	s.ErrorIs(err, ErrPermissionDenied)

	_, err = s.env.moderation.ListEntities(actorFor(employer), KindUser, "", "")
	s.ErrorIs(err, ErrPermissionDenied)
}

func (s *ModerationSuite) TestApproveAndReject() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, false)
	vacancy := testutil.NewVacancy(s.T(), s.env.db, company, true, false)
	portfolio := testutil.NewPortfolio(s.T(), s.env.db, testutil.NewUser(s.T(), s.env.db, models.RoleSeeker), true, false)

	s.Require().NoError(s.env.moderation.Approve(s.actor(), KindCompany, company.ID))
	s.Require().NoError(s.env.moderation.Approve(s.actor(), KindVacancy, vacancy.ID))
	s.Require().NoError(s.env.moderation.Approve(s.actor(), KindPortfolio, portfolio.ID))

	var storedCompany models.Company
	s.Require().NoError(s.env.db.First(&storedCompany, company.ID).Error)
	s.True(storedCompany.IsApproved)

	var storedVacancy models.Vacancy
	s.Require().NoError(s.env.db.First(&storedVacancy, vacancy.ID).Error)
	s.True(storedVacancy.Listed())

	// rejecting the company does not unlist vacancies it already has
	s.Require().NoError(s.env.moderation.Reject(s.actor(), KindCompany, company.ID))
	s.Require().NoError(s.env.db.First(&storedCompany, company.ID).Error)
	s.False(storedCompany.IsApproved)
	s.Require().NoError(s.env.db.First(&storedVacancy, vacancy.ID).Error)
	s.True(storedVacancy.IsApproved)

	s.Require().NoError(s.env.moderation.Reject(s.actor(), KindPortfolio, portfolio.ID))
	var storedPortfolio models.Portfolio
	s.Require().NoError(s.env.db.First(&storedPortfolio, portfolio.ID).Error)
	s.False(storedPortfolio.IsApproved)
	s.Equal(int64(1), s.count(&models.Portfolio{}))
}

func (s *ModerationSuite) TestApproveMissingOrUser() {
	err := s.env.moderation.Approve(s.actor(), KindVacancy, 999)
	s.ErrorIs(err, ErrVacancyNotFound)
	s.Equal(apierrors.KindNotFound, apierrors.KindOf(err))

	err = s.env.moderation.Approve(s.actor(), KindCompany, 999)
	s.ErrorIs(err, ErrCompanyNotFound)

	err = s.env.moderation.Approve(s.actor(), KindUser, s.admin.ID)
	s.ErrorIs(err, ErrNotModerated)
}

func (s *ModerationSuite) TestDeactivateAndActivateUser() {
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)

	user, err := s.env.moderation.DeactivateUser(s.actor(), seeker.ID)
	s.Require().NoError(err)
	s.False(user.IsActive)

	var stored models.User
	s.Require().NoError(s.env.db.First(&stored, seeker.ID).Error)
	s.False(stored.IsActive)

	_, err = s.env.auth.Login(LoginInput{Email: seeker.Email, Password: testutil.Password})
	s.ErrorIs(err, ErrAccountDeactivated)

	user, err = s.env.moderation.ActivateUser(s.actor(), seeker.ID)
	s.Require().NoError(err)
	s.True(user.IsActive)

	_, err = s.env.auth.Login(LoginInput{Email: seeker.Email, Password: testutil.Password})
	s.NoError(err)

	_, err = s.env.moderation.DeactivateUser(s.actor(), 999)
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *ModerationSuite) TestAdminCannotDeactivateSelf() {
	_, err := s.env.moderation.DeactivateUser(s.actor(), s.admin.ID)
	s.ErrorIs(err, ErrSelfDeletion)
	s.Equal(apierrors.KindSelfDeletion, apierrors.KindOf(err))

	var stored models.User
	s.Require().NoError(s.env.db.First(&stored, s.admin.ID).Error)
	s.True(stored.IsActive)
}

func (s *ModerationSuite) TestUsersAreNeverHardDeleted() {
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)

	err := s.env.moderation.Delete(s.actor(), KindUser, seeker.ID)
	s.ErrorIs(err, ErrUserHardDelete)
	s.Equal(int64(2), s.count(&models.User{}))
}

func (s *ModerationSuite) TestDeleteCompanyCascades() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, true)
	vacancy := testutil.NewVacancy(s.T(), s.env.db, company, true, true)
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)
	testutil.NewApplication(s.T(), s.env.db, vacancy, seeker, testutil.NewPortfolio(s.T(), s.env.db, seeker, true, true))

	otherCompany := testutil.NewCompany(s.T(), s.env.db, testutil.NewUser(s.T(), s.env.db, models.RoleEmployer), true)
	testutil.NewVacancy(s.T(), s.env.db, otherCompany, true, true)

	s.Require().NoError(s.env.moderation.Delete(s.actor(), KindCompany, company.ID))

	s.Equal(int64(1), s.count(&models.Company{}))
	s.Equal(int64(1), s.count(&models.Vacancy{}))
	s.Zero(s.count(&models.Application{}))
	s.Equal(int64(1), s.count(&models.Portfolio{}))
	// the owner keeps their account
	s.Equal(int64(4), s.count(&models.User{}))
}

func (s *ModerationSuite) TestDeleteVacancyAndPortfolioCascade() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, true)
	first := testutil.NewVacancy(s.T(), s.env.db, company, true, true)
	second := testutil.NewVacancy(s.T(), s.env.db, company, true, true)
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)
	portfolio := testutil.NewPortfolio(s.T(), s.env.db, seeker, true, true)
	testutil.NewApplication(s.T(), s.env.db, first, seeker, portfolio)
	testutil.NewApplication(s.T(), s.env.db, second, seeker, portfolio)

	s.Require().NoError(s.env.moderation.Delete(s.actor(), KindVacancy, first.ID))
	s.Equal(int64(1), s.count(&models.Vacancy{}))
	s.Equal(int64(1), s.count(&models.Application{}))

	s.Require().NoError(s.env.moderation.Delete(s.actor(), KindPortfolio, portfolio.ID))
	s.Zero(s.count(&models.Portfolio{}))
	s.Zero(s.count(&models.Application{}))

	err := s.env.moderation.Delete(s.actor(), KindVacancy, first.ID)
	s.ErrorIs(err, ErrVacancyNotFound)
}

func (s *ModerationSuite) TestToggleVacancyActive() {
	company := testutil.NewCompany(s.T(), s.env.db, testutil.NewUser(s.T(), s.env.db, models.RoleEmployer), true)
	vacancy := testutil.NewVacancy(s.T(), s.env.db, company, true, true)

	toggled, err := s.env.moderation.ToggleVacancyActive(s.actor(), vacancy.ID)
	s.Require().NoError(err)
	s.False(toggled.IsActive)
	s.True(toggled.IsApproved)

	toggled, err = s.env.moderation.ToggleVacancyActive(s.actor(), vacancy.ID)
	s.Require().NoError(err)
	s.True(toggled.IsActive)

	_, err = s.env.moderation.ToggleVacancyActive(s.actor(), 999)
	s.ErrorIs(err, ErrVacancyNotFound)
}

func (s *ModerationSuite) TestConcurrentTogglesDoNotLoseUpdates() {
	company := testutil.NewCompany(s.T(), s.env.db, testutil.NewUser(s.T(), s.env.db, models.RoleEmployer), true)
	vacancy := testutil.NewVacancy(s.T(), s.env.db, company, true, true)

	const toggles = 6
	var wg sync.WaitGroup
	errs := make(chan error, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.env.moderation.ToggleVacancyActive(s.actor(), vacancy.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	var stored models.Vacancy
	s.Require().NoError(s.env.db.First(&stored, vacancy.ID).Error)
	s.True(stored.IsActive)
}

func (s *ModerationSuite) TestListEntitiesSorting() {
	for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
		user := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
		company := testutil.NewCompany(s.T(), s.env.db, user, false)
		s.Require().NoError(s.env.db.Model(company).Update("company_name", name).Error)
	}

	list, err := s.env.moderation.ListEntities(s.actor(), KindCompany, "name", "desc")
	s.Require().NoError(err)
	s.Require().Len(list.Companies, 3)
	s.Equal("Charlie", list.Companies[0].Name)
	s.Equal("Alpha", list.Companies[2].Name)
	s.Equal(repository.Sort{Column: "company_name", Desc: true}, list.Sort)
	s.NotNil(list.Companies[0].Owner)

	// unknown columns fall back to the primary key
	list, err = s.env.moderation.ListEntities(s.actor(), KindCompany, "password_hash; DROP TABLE users", "sideways")
	s.Require().NoError(err)
	s.Equal(repository.Sort{Column: "id"}, list.Sort)
	s.Require().Len(list.Companies, 3)
	s.Less(list.Companies[0].ID, list.Companies[1].ID)

	list, err = s.env.moderation.ListEntities(s.actor(), KindUser, "email", "")
	s.Require().NoError(err)
	s.Len(list.Users, 4)
}

func (s *ModerationSuite) TestListPortfoliosHealsTimestamps() {
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)
	broken := testutil.NewPortfolio(s.T(), s.env.db, seeker, true, false)
	testutil.NewPortfolio(s.T(), s.env.db, seeker, true, false)
	s.Require().NoError(s.env.db.Exec("UPDATE portfolios SET created_at = NULL WHERE id = ?", broken.ID).Error)

	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.env.moderation.now = func() time.Time { return fixed }

	list, err := s.env.moderation.ListEntities(s.actor(), KindPortfolio, "created_at", "asc")
	s.Require().NoError(err)
	s.Equal(int64(1), list.Healed)
	s.Require().Len(list.Portfolios, 2)
	for _, p := range list.Portfolios {
		s.NotNil(p.CreatedAt)
		s.NotNil(p.UpdatedAt)
	}

	var stored models.Portfolio
	s.Require().NoError(s.env.db.First(&stored, broken.ID).Error)
	s.Require().NotNil(stored.CreatedAt)
	s.True(stored.CreatedAt.Equal(fixed))

	list, err = s.env.moderation.ListEntities(s.actor(), KindPortfolio, "", "")
	s.Require().NoError(err)
	s.Zero(list.Healed)
}

func (s *ModerationSuite) TestOverview() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, true)
	approved := testutil.NewVacancy(s.T(), s.env.db, company, true, true)
	testutil.NewVacancy(s.T(), s.env.db, company, true, false)
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)
	testutil.NewApplication(s.T(), s.env.db, approved, seeker, testutil.NewPortfolio(s.T(), s.env.db, seeker, true, true))

	o, err := s.env.moderation.Overview(s.actor())
	s.Require().NoError(err)
	s.Equal(int64(3), o.Users)
	s.Equal(int64(1), o.Companies)
	s.Equal(int64(2), o.Vacancies)
	s.Equal(int64(1), o.Applications)
	s.Equal(int64(1), o.PendingVacancy)
	s.Len(o.RecentUsers, 3)
	s.Len(o.RecentVacancies, 2)
}

func (s *ModerationSuite) TestViewCompanyAndPortfolio() {
	employer := testutil.NewUser(s.T(), s.env.db, models.RoleEmployer)
	company := testutil.NewCompany(s.T(), s.env.db, employer, false)
	testutil.NewVacancy(s.T(), s.env.db, company, false, false)
	testutil.NewVacancy(s.T(), s.env.db, company, true, true)

	detail, err := s.env.moderation.ViewCompany(s.actor(), company.ID)
	s.Require().NoError(err)
	s.Equal(company.ID, detail.Company.ID)
	s.Len(detail.Vacancies, 2)

	_, err = s.env.moderation.ViewCompany(s.actor(), 999)
	s.ErrorIs(err, ErrCompanyNotFound)

	// admins see private, unapproved portfolios
	seeker := testutil.NewUser(s.T(), s.env.db, models.RoleSeeker)
	portfolio := testutil.NewPortfolio(s.T(), s.env.db, seeker, false, false)
	got, err := s.env.moderation.ViewPortfolio(s.actor(), portfolio.ID)
	s.Require().NoError(err)
	s.Equal(seeker.ID, got.Owner.ID)
}

func TestModerationSuite(t *testing.T) {
	suite.Run(t, new(ModerationSuite))
}

func TestResolveSort(t *testing.T) {
	assert.Equal(t, repository.Sort{Column: "salary_max", Desc: true}, ResolveSort(KindVacancy, "salary_max", "DESC"))
	assert.Equal(t, repository.Sort{Column: "id"}, ResolveSort(KindVacancy, "password_hash", "asc"))
	assert.Equal(t, repository.Sort{Column: "last_login"}, ResolveSort(KindUser, "last_login", ""))
	assert.Equal(t, repository.Sort{Column: "id"}, ResolveSort(KindUser, "salary_max", ""))
}
