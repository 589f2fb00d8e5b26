package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hireboard/hireboard/internal/constants"
	"github.com/hireboard/hireboard/internal/dto"
	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/handlers"
	"github.com/hireboard/hireboard/internal/middleware"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/services"
	"github.com/hireboard/hireboard/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T, loginRate int) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()
	engine := New(Options{
		Log:   log,
		Store: cookie.NewStore([]byte("router-test-secret")),
		Session: handlers.SessionOptions{
			TTL:         time.Hour,
			RememberTTL: 24 * time.Hour,
		},
		LoginRatePerMin: loginRate,
	}, NewServices(db, log))

	return &testServer{db: db, engine: engine}
}

// client keeps the session cookie between requests.
type client struct {
	t       *testing.T
	srv     *testServer
	session *http.Cookie
}

func (s *testServer) client(t *testing.T) *client {
	return &client{t: t, srv: s}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.session != nil {
		req.AddCookie(c.session)
	}
	w := httptest.NewRecorder()
	c.srv.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == constants.SessionCookieName {
			c.session = ck
		}
	}
	return w
}

func (c *client) postJSON(path string, payload any) *httptest.ResponseRecorder {
	c.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(c.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "application/json")
	return c.do(req)
}

func (c *client) login(user *models.User) {
	c.t.Helper()
	w := c.postJSON("/login", map[string]string{"email": user.Email, "password": testutil.Password})
	require.Equal(c.t, http.StatusOK, w.Code, w.Body.String())
}

// page decodes a GET response wrapped in respond.Page into data.
func page(t *testing.T, w *httptest.ResponseRecorder, data any) []string {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	raw := struct {
		Messages []string        `json:"messages"`
		Data     json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Messages
}

func apiError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var e apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, 0)
	w := srv.client(t).get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
}

func TestEmployerFlow(t *testing.T) {
	srv := newTestServer(t, 0)
	employer := srv.client(t)

	w := employer.postJSON("/register", map[string]string{
		"name":             "Olga Petrova",
		"email":            "olga@example.com",
		"password":         "Secret1!",
		"confirm_password": "Secret1!",
		"role":             "employer",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the company stub exists but is not approved yet
	var company dto.CompanyDTO
	page(t, employer.get("/employer/company/edit"), &company)
	assert.Equal(t, "Olga Petrova", company.Name)
	assert.False(t, company.IsApproved)

	vacancy := map[string]any{
		"title":        "Go Developer",
		"description":  "Services",
		"requirements": "Go",
		"salary_min":   1000,
		"salary_max":   2000,
	}
	w = employer.postJSON("/employer/vacancy/create", vacancy)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apierrors.ErrCodeForbidden, apiError(t, w).Code)

	require.NoError(t, srv.db.Model(&models.Company{}).Where("id = ?", company.ID).Update("is_approved", true).Error)

	w = employer.postJSON("/employer/vacancy/create", vacancy)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.VacancyDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.False(t, created.IsApproved)
	assert.True(t, created.IsActive)

	// pending vacancies stay out of public search
	var listed []dto.VacancyDTO
	page(t, employer.get("/vacancies"), &listed)
	assert.Empty(t, listed)

	// editing the company sends it back to moderation
	w = employer.postForm("/employer/company/edit", url.Values{"company_name": {"Petrova Ltd"}, "industry": {"IT"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employer/dashboard", w.Header().Get("Location"))

	var dashboard dto.EmployerDashboardDTO
	messages := page(t, employer.get("/employer/dashboard"), &dashboard)
	assert.Equal(t, []string{"Company profile updated and sent for moderation"}, messages)
	require.NotNil(t, dashboard.Company)
	assert.Equal(t, "Petrova Ltd", dashboard.Company.Name)
	assert.False(t, dashboard.Company.IsApproved)
	assert.Len(t, dashboard.Vacancies, 1)
}

func TestVacancyFormBlankSalariesBind(t *testing.T) {
	srv := newTestServer(t, 0)
	owner := testutil.NewUser(t, srv.db, models.RoleEmployer)
	testutil.NewCompany(t, srv.db, owner, true)

	employer := srv.client(t)
	employer.login(owner)

	w := employer.postForm("/employer/vacancy/create", url.Values{
		"title":        {"Designer"},
		"description":  {"Draw"},
		"requirements": {"Figma"},
		"salary_min":   {""},
		"salary_max":   {""},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/employer/dashboard", w.Header().Get("Location"))

	var stored models.Vacancy
	require.NoError(t, srv.db.Where("title = ?", "Designer").First(&stored).Error)
	assert.Nil(t, stored.SalaryMin)
	assert.Nil(t, stored.SalaryMax)
}

func TestSeekerApplyFlow(t *testing.T) {
	srv := newTestServer(t, 0)
	owner := testutil.NewUser(t, srv.db, models.RoleEmployer)
	vacancy := testutil.NewVacancy(t, srv.db, testutil.NewCompany(t, srv.db, owner, true), true, true)

	seeker := srv.client(t)
	w := seeker.postJSON("/register", map[string]string{
		"name":             "Ivan Ivanov",
		"email":            "ivan@example.com",
		"password":         "Secret1!",
		"confirm_password": "Secret1!",
		"role":             "seeker",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	applyPath := fmt.Sprintf("/seeker/apply/%d", vacancy.ID)
	w = seeker.postForm(applyPath, url.Values{"cover_letter": {"Hello"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/vacancies", w.Header().Get("Location"))

	w = seeker.postForm(applyPath, url.Values{"cover_letter": {"Again"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	var listed []dto.VacancyDTO
	messages := page(t, seeker.get("/vacancies"), &listed)
	assert.Equal(t, []string{"Application sent successfully!", "You have already applied to this vacancy"}, messages)
	assert.Len(t, listed, 1)

	w = seeker.postJSON(applyPath, map[string]string{})
	require.Equal(t, http.StatusConflict, w.Code)

	var dashboard dto.SeekerDashboardDTO
	page(t, seeker.get("/seeker/dashboard"), &dashboard)
	require.Len(t, dashboard.Applications, 1)
	assert.Equal(t, models.ApplicationPending, dashboard.Applications[0].Status)
	require.NotNil(t, dashboard.Portfolio)
	assert.Equal(t, "Portfolio of Ivan Ivanov", dashboard.Portfolio.Title)

	// employer reviews and rejects
	employer := srv.client(t)
	employer.login(owner)
	statusPath := fmt.Sprintf("/employer/application/%d/update_status", dashboard.Applications[0].ID)

	w = employer.postJSON(statusPath, map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrRejectionReasonRequired.Message, apiError(t, w).Message)

	w = employer.postJSON(statusPath, map[string]string{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrInvalidStatus.Message, apiError(t, w).Message)

	w = employer.postJSON(statusPath, map[string]string{"status": "rejected", "rejection_reason": "Position filled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	page(t, seeker.get("/seeker/dashboard"), &dashboard)
	assert.Equal(t, models.ApplicationRejected, dashboard.Applications[0].Status)
	require.NotNil(t, dashboard.Applications[0].RejectionReason)
	assert.Equal(t, "Position filled", *dashboard.Applications[0].RejectionReason)
}

func TestRoleGates(t *testing.T) {
	srv := newTestServer(t, 0)
	seekerUser := testutil.NewUser(t, srv.db, models.RoleSeeker)

	anon := srv.client(t)
	w := anon.do(httptest.NewRequest(http.MethodGet, "/seeker/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = anon.get("/seeker/dashboard")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	seeker := srv.client(t)
	seeker.login(seekerUser)

	w = seeker.do(httptest.NewRequest(http.MethodGet, "/employer/dashboard", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// admin actions answer 403 JSON even to a browser form post
	w = seeker.postForm("/admin/vacancy/1/approve", url.Values{})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apierrors.ErrCodeForbidden, apiError(t, w).Code)
}

func TestAdminModeration(t *testing.T) {
	srv := newTestServer(t, 0)
	adminUser := testutil.NewUser(t, srv.db, models.RoleAdmin)
	owner := testutil.NewUser(t, srv.db, models.RoleEmployer)
	company := testutil.NewCompany(t, srv.db, owner, false)
	vacancy := testutil.NewVacancy(t, srv.db, company, true, false)

	admin := srv.client(t)
	admin.login(adminUser)

	var overview dto.OverviewDTO
	page(t, admin.get("/admin"), &overview)
	assert.Equal(t, int64(2), overview.Stats.Users)
	assert.Equal(t, int64(1), overview.Stats.PendingVacancies)

	w := admin.postJSON(fmt.Sprintf("/admin/vacancy/%d/approve", vacancy.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listed []dto.VacancyDTO
	page(t, admin.get("/vacancies"), &listed)
	require.Len(t, listed, 1)

	w = admin.postForm(fmt.Sprintf("/admin/vacancy/%d/toggle", vacancy.ID), url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/vacancies", w.Header().Get("Location"))

	page(t, admin.get("/vacancies"), &listed)
	assert.Empty(t, listed)

	var companies dto.EntityListDTO
	page(t, admin.get("/admin/companies?sort=bogus&order=desc"), &companies)
	assert.Equal(t, "id", companies.Sort)
	assert.Equal(t, "desc", companies.Order)
	require.Len(t, companies.Companies, 1)

	w = admin.postJSON(fmt.Sprintf("/admin/user/%d/delete", adminUser.ID), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidOperation, apiError(t, w).Code)

	w = admin.postJSON(fmt.Sprintf("/admin/user/%d/delete", owner.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the deactivated employer is logged out on the next request
	employer := srv.client(t)
	w = employer.postJSON("/login", map[string]string{"email": owner.Email, "password": testutil.Password})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Your account is deactivated. Contact the administrator.", apiError(t, w).Message)

	w = admin.postJSON(fmt.Sprintf("/admin/company/%d/delete", company.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var vacancies int64
	srv.db.Model(&models.Vacancy{}).Count(&vacancies)
	assert.Zero(t, vacancies)

	w = admin.postJSON("/admin/company/999/approve", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminPortfolioListFlashesHealCount(t *testing.T) {
	srv := newTestServer(t, 0)
	adminUser := testutil.NewUser(t, srv.db, models.RoleAdmin)
	seeker := testutil.NewUser(t, srv.db, models.RoleSeeker)
	portfolio := testutil.NewPortfolio(t, srv.db, seeker, true, false)
	require.NoError(t, srv.db.Exec("UPDATE portfolios SET updated_at = NULL WHERE id = ?", portfolio.ID).Error)

	admin := srv.client(t)
	admin.login(adminUser)

	var list dto.EntityListDTO
	messages := page(t, admin.get("/admin/portfolios"), &list)
	assert.Equal(t, []string{"Repaired 1 portfolios with missing dates"}, messages)
	assert.Equal(t, int64(1), list.Healed)
	require.Len(t, list.Portfolios, 1)
	assert.NotNil(t, list.Portfolios[0].UpdatedAt)
}

func TestLoginIsRateLimited(t *testing.T) {
	srv := newTestServer(t, 2)
	c := srv.client(t)

	payload := map[string]string{"email": "nobody@example.com", "password": "Wrong1!!"}
	assert.Equal(t, http.StatusUnauthorized, c.postJSON("/login", payload).Code)
	assert.Equal(t, http.StatusUnauthorized, c.postJSON("/login", payload).Code)

	w := c.postJSON("/login", payload)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, apierrors.ErrCodeTooManyRequests, apiError(t, w).Code)
}

func TestPublicVacancyPage(t *testing.T) {
	srv := newTestServer(t, 0)
	company := testutil.NewCompany(t, srv.db, testutil.NewUser(t, srv.db, models.RoleEmployer), true)
	listed := testutil.NewVacancy(t, srv.db, company, true, true)
	hidden := testutil.NewVacancy(t, srv.db, company, false, true)

	c := srv.client(t)

	var got dto.VacancyDTO
	page(t, c.get(fmt.Sprintf("/vacancies/%d", listed.ID)), &got)
	assert.Equal(t, listed.ID, got.ID)

	w := c.get(fmt.Sprintf("/vacancies/%d", hidden.ID))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = c.get("/vacancies?salary_min=lots")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = c.do(httptest.NewRequest(http.MethodGet, "/vacancies/abc", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/vacancies", w.Header().Get("Location"))

	var home []dto.VacancyDTO
	page(t, c.get("/"), &home)
	assert.Len(t, home, 1)
}
