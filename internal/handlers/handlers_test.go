package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/constants"
	"github.com/yukikurage/team-management-api/internal/dto"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/logging"
	"github.com/yukikurage/team-management-api/internal/mailer"
	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/services"
	"github.com/yukikurage/team-management-api/internal/testutil"
)

// APITestSuite drives the full router against an in-memory database
type APITestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	mail     *mailer.Mock
	cookies  []*http.Cookie
	position models.Position
	admin    models.Employee
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

// SetupTest runs before each test
func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.db = testutil.NewDB(suite.T())
	suite.mail = mailer.NewMock()
	suite.cookies = nil
	log := logging.Discard()

	employeeRepo := repository.NewEmployeeRepository(suite.db)
	positionRepo := repository.NewPositionRepository(suite.db)
	taskTypeRepo := repository.NewTaskTypeRepository(suite.db)
	tagRepo := repository.NewTaskTagRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)

	svc := Services{
		Auth:        services.NewAuthService(employeeRepo),
		Employees:   services.NewEmployeeService(employeeRepo, positionRepo, log),
		Invitations: services.NewInvitationService(repository.NewInvitationRepository(suite.db), employeeRepo, positionRepo, suite.mail, "http://testserver", log),
		Teams:       services.NewTeamService(teamRepo, employeeRepo),
		Projects:    services.NewProjectService(projectRepo, teamRepo, taskRepo),
		Tasks:       services.NewTaskService(taskRepo, employeeRepo, taskTypeRepo, tagRepo, nil),
		Positions:   services.NewPositionService(positionRepo),
		TaskTypes:   services.NewTaskTypeService(taskTypeRepo),
		TaskTags:    services.NewTaskTagService(tagRepo),
		Dashboard:   services.NewDashboardService(projectRepo, teamRepo),
	}

	suite.router = gin.New()
	suite.router.Use(middleware.RequestLogger(log))
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(suite.router, svc, false)

	suite.position = testutil.CreatePosition(suite.T(), suite.db, "Developer")
	suite.admin = testutil.CreateEmployee(suite.T(), suite.db, "admin", "admin@company.com", suite.position.ID)
}

func (suite *APITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range suite.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) login(email string, rememberMe bool) *httptest.ResponseRecorder {
	w := suite.request(http.MethodPost, "/api/auth/login", map[string]any{
		"email":       email,
		"password":    testutil.Password,
		"remember_me": rememberMe,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.cookies = w.Result().Cookies()
	return w
}

func decode[T any](suite *APITestSuite, w *httptest.ResponseRecorder) T {
	var out T
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func sessionCookieHeader(w *httptest.ResponseRecorder) string {
	for _, h := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(h, constants.SessionCookieName+"=") {
			return h
		}
	}
	return ""
}

func (suite *APITestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Header().Get(middleware.RequestIDHeader))
}

func (suite *APITestSuite) TestProtectedRoutesRequireSession() {
	for _, path := range []string{"/api/auth/me", "/api/employees", "/api/dashboard", "/api/projects", "/api/positions"} {
		w := suite.request(http.MethodGet, path, nil)
		suite.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (suite *APITestSuite) TestLogin() {
	w := suite.request(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@company.com",
		"password": "wrong-password",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidCredentials, decode[apierrors.APIError](suite, w).Code)

	w = suite.request(http.MethodPost, "/api/auth/login", map[string]any{"email": "not-an-email"})
	suite.Equal(http.StatusBadRequest, w.Code)
	details := decode[struct {
		Details map[string][]string `json:"details"`
	}](suite, w).Details
	suite.Contains(details, "email")
	suite.Contains(details, "password")

	w = suite.login("admin@company.com", false)
	suite.NotContains(sessionCookieHeader(w), "Max-Age", "session ends with the browser")

	me := suite.request(http.MethodGet, "/api/auth/me", nil)
	suite.Equal(http.StatusOK, me.Code)
	suite.Equal("admin@company.com", decode[dto.EmployeeDTO](suite, me).Email)

	w = suite.login("admin@company.com", true)
	suite.Contains(sessionCookieHeader(w), fmt.Sprintf("Max-Age=%d", constants.SessionMaxAge))

	out := suite.request(http.MethodPost, "/api/auth/logout", nil)
	suite.Equal(http.StatusOK, out.Code)
	suite.cookies = out.Result().Cookies()
	suite.Equal(http.StatusUnauthorized, suite.request(http.MethodGet, "/api/auth/me", nil).Code)
}

func (suite *APITestSuite) TestListEmployees_SearchAndPagination() {
	for i := 1; i <= 6; i++ {
		name := fmt.Sprintf("test%d", i)
		testutil.CreateEmployee(suite.T(), suite.db, name, name+"@example.com", suite.position.ID)
	}
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodGet, "/api/employees?query=test1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	list := decode[dto.ListResponse[dto.EmployeeDTO]](suite, w)
	suite.Require().Len(list.Items, 1)
	suite.Equal("test1", list.Items[0].Username)
	suite.Equal("test1", list.Query)

	w = suite.request(http.MethodGet, "/api/employees?page=2", nil)
	list = decode[dto.ListResponse[dto.EmployeeDTO]](suite, w)
	suite.Len(list.Items, 2)
	suite.Equal(2, list.Pagination.Page)
	suite.Equal(7, list.Pagination.TotalCount)
	suite.True(list.Pagination.IsPaginated)
	suite.True(list.Pagination.HasPrevious)
	suite.False(list.Pagination.HasNext)

	w = suite.request(http.MethodGet, "/api/employees?page=abc&query="+strings.Repeat("x", constants.MaxQueryLength+1), nil)
	list = decode[dto.ListResponse[dto.EmployeeDTO]](suite, w)
	suite.Len(list.Items, constants.PageSize, "an over-long query is ignored")
	suite.Equal(1, list.Pagination.Page)
}

func (suite *APITestSuite) TestInvitationFlow() {
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodPost, "/api/invitations", map[string]any{
		"email":       "jane.doe@company.com",
		"position_id": suite.position.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Invitation dto.InvitationDTO `json:"invitation"`
		Notice     services.Notice   `json:"notice"`
	}](suite, w)
	suite.Equal("Invitation sent successfully", created.Notice.Message)
	suite.Equal(models.InvitationPending, created.Invitation.Status)

	sent := suite.mail.SentTo("jane.doe@company.com")
	suite.Require().Len(sent, 1)
	msg, ok := sent[0].Data.(mailer.InvitationMessage)
	suite.Require().True(ok)
	suite.Equal("http://testserver/employees/register/"+created.Invitation.Slug, msg.RegistrationURL)

	// The invitee has no session
	suite.cookies = nil
	w = suite.request(http.MethodGet, "/api/invitations/"+created.Invitation.Slug, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Developer", decode[dto.InvitationDTO](suite, w).Position.Name)

	registration := map[string]any{
		"first_name": "Jane",
		"last_name":  "Doe",
		"password":   "s3cret-password",
		"password2":  "s3cret-password",
	}
	w = suite.request(http.MethodPost, "/api/employees/register/"+created.Invitation.Slug, registration)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.Equal("jane.doe", decode[dto.EmployeeDTO](suite, w).Username)

	suite.cookies = w.Result().Cookies()
	me := suite.request(http.MethodGet, "/api/auth/me", nil)
	suite.Equal(http.StatusOK, me.Code)

	w = suite.request(http.MethodPost, "/api/employees/register/"+created.Invitation.Slug, registration)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodGet, "/api/invitations/"+created.Invitation.Slug, nil)
	suite.Equal(models.InvitationAccepted, decode[dto.InvitationDTO](suite, w).Status)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/invitations/unknown", nil).Code)
}

func (suite *APITestSuite) TestInvitationValidation() {
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodPost, "/api/invitations", map[string]any{
		"email":       "admin@company.com",
		"position_id": 999,
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	apiErr := decode[struct {
		Code    string              `json:"code"`
		Details map[string][]string `json:"details"`
	}](suite, w)
	suite.Equal(apierrors.ErrCodeInvalidInput, apiErr.Code)
	suite.Contains(apiErr.Details, "position_id")
	suite.Empty(suite.mail.Sent)
}

func (suite *APITestSuite) TestProjectAndTasks() {
	taskType := testutil.CreateTaskType(suite.T(), suite.db, "Feature")
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodPost, "/api/projects", map[string]any{"name": "Web Shop"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	project := decode[struct {
		Project dto.ProjectDTO `json:"project"`
	}](suite, w).Project
	suite.Equal("web-shop", project.Slug)

	deadline := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	for _, name := range []string{"Checkout page", "Cart badge"} {
		w = suite.request(http.MethodPost, "/api/projects/web-shop/tasks", map[string]any{
			"name":         name,
			"deadline":     deadline,
			"priority":     "2",
			"task_type_id": taskType.ID,
			"assignee_ids": []uint64{suite.admin.ID},
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w = suite.request(http.MethodPost, "/api/projects/web-shop/tasks", map[string]any{
		"name":         "Late",
		"deadline":     time.Now().Add(-time.Hour),
		"priority":     "2",
		"task_type_id": taskType.ID,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/tasks/checkout-page/toggle-completion", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	toggled := decode[dto.TaskDTO](suite, w)
	suite.True(toggled.IsCompleted)
	suite.Require().NotNil(toggled.CompletedBy)
	suite.Equal(suite.admin.ID, toggled.CompletedBy.ID)

	w = suite.request(http.MethodGet, "/api/projects/web-shop?query=CART", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	detail := decode[dto.ProjectDetailDTO](suite, w)
	suite.Require().Len(detail.Tasks, 1)
	suite.Equal("Cart badge", detail.Tasks[0].Name)
	suite.Equal(1, detail.ActiveCount)
	suite.Equal(1, detail.CompletedCount)

	w = suite.request(http.MethodGet, "/api/dashboard", nil)
	dashboard := decode[dto.DashboardDTO](suite, w)
	suite.Require().Len(dashboard.Projects, 1)
	suite.Equal("Web Shop", dashboard.Projects[0].Name)

	w = suite.request(http.MethodPost, "/api/projects/web-shop/tasks/generate", map[string]any{"text": "meeting notes"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/tasks/missing", nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/projects/missing", nil).Code)

	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, "/api/projects/web-shop", nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, "/api/tasks/cart-badge", nil).Code)
}

func (suite *APITestSuite) TestCatalog() {
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodPost, "/api/positions", map[string]any{"name": "Designer"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	designer := decode[dto.CatalogItem](suite, w)

	w = suite.request(http.MethodGet, "/api/positions", nil)
	items := decode[struct {
		Items []dto.CatalogItem `json:"items"`
	}](suite, w).Items
	suite.Len(items, 2)

	path := fmt.Sprintf("/api/positions/%d", suite.position.ID)
	suite.Equal(http.StatusConflict, suite.request(http.MethodDelete, path, nil).Code, "admin still holds the position")
	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, fmt.Sprintf("/api/positions/%d", designer.ID), nil).Code)
	suite.Equal(http.StatusBadRequest, suite.request(http.MethodDelete, "/api/positions/abc", nil).Code)
}

func (suite *APITestSuite) TestTeams() {
	suite.login("admin@company.com", false)

	w := suite.request(http.MethodPost, "/api/teams", map[string]any{
		"name":       "Platform",
		"member_ids": []uint64{suite.admin.ID},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.request(http.MethodPut, "/api/teams/platform", map[string]any{"name": ""})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/teams?query=admin", nil)
	list := decode[dto.ListResponse[dto.TeamDTO]](suite, w)
	suite.Require().Len(list.Items, 1)
	suite.Len(list.Items[0].Members, 1)

	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, "/api/teams/platform", nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodDelete, "/api/teams/platform", nil).Code)
}

func (suite *APITestSuite) TestDeleteEmployee() {
	other := testutil.CreateEmployee(suite.T(), suite.db, "leaver", "leaver@example.com", suite.position.ID)
	suite.login("admin@company.com", false)

	suite.Equal(http.StatusNoContent, suite.request(http.MethodDelete, "/api/employees/"+other.Slug, nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodDelete, "/api/employees/"+other.Slug, nil).Code)
}
