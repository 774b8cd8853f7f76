package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/models"
	"github.com/xemob/coopnet/pkg/services"
)

// mockAuthService authenticates "Bearer <token>" headers against a fixed token table.
type mockAuthService struct {
	users map[string]*models.User
}

func (m *mockAuthService) ValidateRequest(r *http.Request) (*auth.Claims, *models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, nil, auth.ErrMissingAuthorization
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, nil, auth.ErrInvalidAuthFormat
	}
	user, ok := m.users[token]
	if !ok {
		return nil, nil, auth.ErrInvalidToken
	}
	return &auth.Claims{Email: user.Email}, user, nil
}

// Users known to every handler test.
var (
	alice = &models.User{ID: 1, Email: "alice@xemob.com", Name: "Alice", IsActive: true}
	bob   = &models.User{ID: 2, Email: "bob@xemob.com", Name: "Bob", IsActive: true}
)

func newTestAuthMiddleware() *auth.Middleware {
	return auth.NewMiddleware(&mockAuthService{users: map[string]*models.User{
		"alice-token": alice,
		"bob-token":   bob,
	}}, zap.NewNop())
}

// passthroughScope stands in for database.WithScopeContext.
func passthroughScope(next http.HandlerFunc) http.HandlerFunc {
	return next
}

// recordedCall captures the arguments of the last service call.
type recordedCall struct {
	userID  int64
	id      int64
	partial bool
	calls   int
}

func (c *recordedCall) record(userID, id int64, partial bool) {
	c.userID, c.id, c.partial = userID, id, partial
	c.calls++
}

type mockUserService struct {
	user     *models.User
	err      error
	created  *services.CreateUserInput
	updateMe recordedCall
}

func (m *mockUserService) Create(ctx context.Context, in *services.CreateUserInput) (*models.User, error) {
	m.created = in
	return m.user, m.err
}

func (m *mockUserService) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.user, m.err
}

func (m *mockUserService) UpdateMe(ctx context.Context, userID int64, in *services.UpdateUserInput) (*models.User, error) {
	m.updateMe.record(userID, 0, true)
	return m.user, m.err
}

type mockTokenIssuer struct {
	token string
	err   error
}

func (m *mockTokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	return m.token, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), m.err
}

func (m *mockTokenIssuer) Parse(token string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}

type mockOrganizationService struct {
	org    *models.Organization
	orgs   []*models.Organization
	err    error
	create recordedCall
	update recordedCall
	input  *services.OrganizationInput
}

func (m *mockOrganizationService) Create(ctx context.Context, userID int64, in *services.OrganizationInput) (*models.Organization, error) {
	m.create.record(userID, 0, false)
	m.input = in
	return m.org, m.err
}

func (m *mockOrganizationService) Get(ctx context.Context, id int64) (*models.Organization, error) {
	return m.org, m.err
}

func (m *mockOrganizationService) List(ctx context.Context) ([]*models.Organization, error) {
	return m.orgs, m.err
}

func (m *mockOrganizationService) Update(ctx context.Context, userID, id int64, in *services.OrganizationInput, partial bool) (*models.Organization, error) {
	m.update.record(userID, id, partial)
	m.input = in
	return m.org, m.err
}

type mockCooperatorProfileService struct {
	profile  *models.CooperatorProfile
	profiles []*models.CooperatorProfile
	err      error
	update   recordedCall
}

func (m *mockCooperatorProfileService) Create(ctx context.Context, userID int64, in *services.CooperatorProfileInput) (*models.CooperatorProfile, error) {
	return m.profile, m.err
}

func (m *mockCooperatorProfileService) Get(ctx context.Context, id int64) (*models.CooperatorProfile, error) {
	return m.profile, m.err
}

func (m *mockCooperatorProfileService) List(ctx context.Context) ([]*models.CooperatorProfile, error) {
	return m.profiles, m.err
}

func (m *mockCooperatorProfileService) Update(ctx context.Context, userID, id int64, in *services.CooperatorProfileInput, partial bool) (*models.CooperatorProfile, error) {
	m.update.record(userID, id, partial)
	return m.profile, m.err
}

type mockPortfolioItemService struct {
	item  *models.PortfolioItem
	items []*models.PortfolioItem
	err   error
}

func (m *mockPortfolioItemService) Create(ctx context.Context, userID int64, in *services.PortfolioItemInput) (*models.PortfolioItem, error) {
	return m.item, m.err
}

func (m *mockPortfolioItemService) Get(ctx context.Context, id int64) (*models.PortfolioItem, error) {
	return m.item, m.err
}

func (m *mockPortfolioItemService) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	return m.items, m.err
}

func (m *mockPortfolioItemService) Update(ctx context.Context, userID, id int64, in *services.PortfolioItemInput, partial bool) (*models.PortfolioItem, error) {
	return m.item, m.err
}

type mockProjectService struct {
	project  *models.Project
	projects []*models.Project
	err      error
	create   recordedCall
	input    *services.ProjectInput
}

func (m *mockProjectService) Create(ctx context.Context, userID int64, in *services.ProjectInput) (*models.Project, error) {
	m.create.record(userID, 0, false)
	m.input = in
	return m.project, m.err
}

func (m *mockProjectService) Get(ctx context.Context, id int64) (*models.Project, error) {
	return m.project, m.err
}

func (m *mockProjectService) List(ctx context.Context) ([]*models.Project, error) {
	return m.projects, m.err
}

func (m *mockProjectService) Update(ctx context.Context, userID, id int64, in *services.ProjectInput, partial bool) (*models.Project, error) {
	return m.project, m.err
}

type mockCooperationService struct {
	coop   *models.Cooperation
	coops  []*models.Cooperation
	err    error
	get    recordedCall
	update recordedCall
	input  *services.CooperationInput
}

func (m *mockCooperationService) Create(ctx context.Context, userID int64, in *services.CooperationInput) (*models.Cooperation, error) {
	m.input = in
	return m.coop, m.err
}

func (m *mockCooperationService) Get(ctx context.Context, viewerID, id int64) (*models.Cooperation, error) {
	m.get.record(viewerID, id, false)
	return m.coop, m.err
}

func (m *mockCooperationService) List(ctx context.Context) ([]*models.Cooperation, error) {
	return m.coops, m.err
}

func (m *mockCooperationService) Update(ctx context.Context, userID, id int64, in *services.CooperationInput, partial bool) (*models.Cooperation, error) {
	m.update.record(userID, id, partial)
	m.input = in
	return m.coop, m.err
}

type mockReviewService struct {
	review  *models.Review
	reviews []*models.Review
	err     error
	create  recordedCall
}

func (m *mockReviewService) Create(ctx context.Context, userID int64, in *services.ReviewInput) (*models.Review, error) {
	m.create.record(userID, 0, false)
	return m.review, m.err
}

func (m *mockReviewService) Get(ctx context.Context, id int64) (*models.Review, error) {
	return m.review, m.err
}

func (m *mockReviewService) List(ctx context.Context) ([]*models.Review, error) {
	return m.reviews, m.err
}

func (m *mockReviewService) Update(ctx context.Context, userID, id int64, in *services.ReviewInput, partial bool) (*models.Review, error) {
	return m.review, m.err
}

type mockMessageService struct {
	msg  *models.Message
	msgs []*models.Message
	err  error
	list recordedCall
}

func (m *mockMessageService) Create(ctx context.Context, userID int64, in *services.MessageInput) (*models.Message, error) {
	return m.msg, m.err
}

func (m *mockMessageService) Get(ctx context.Context, userID, id int64) (*models.Message, error) {
	return m.msg, m.err
}

func (m *mockMessageService) List(ctx context.Context, userID int64) ([]*models.Message, error) {
	m.list.record(userID, 0, false)
	return m.msgs, m.err
}

func (m *mockMessageService) Update(ctx context.Context, userID, id int64, in *services.MessageInput, partial bool) (*models.Message, error) {
	return m.msg, m.err
}
