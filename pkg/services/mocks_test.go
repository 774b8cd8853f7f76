package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/models"
)

// In-memory repository mocks. Each records how many writes reached it so tests
// can assert that rejected input was never persisted.

type mockUserRepository struct {
	users   map[int64]*models.User
	nextID  int64
	creates int
	updates int
	err     error
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: map[int64]*models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	m.creates++
	m.nextID++
	user.ID = m.nextID
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	m.updates++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

type mockOrganizationRepository struct {
	orgs    map[int64]*models.Organization
	nextID  int64
	creates int
	updates int
}

func newMockOrganizationRepository(orgs ...*models.Organization) *mockOrganizationRepository {
	m := &mockOrganizationRepository{orgs: map[int64]*models.Organization{}}
	for _, o := range orgs {
		m.orgs[o.ID] = o
		if o.ID > m.nextID {
			m.nextID = o.ID
		}
	}
	return m
}

func (m *mockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	for _, o := range m.orgs {
		if o.Name == org.Name {
			return uniqueViolation("organizations_name_key")
		}
	}
	m.creates++
	m.nextID++
	org.ID = m.nextID
	cp := *org
	m.orgs[org.ID] = &cp
	return nil
}

func (m *mockOrganizationRepository) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	o, ok := m.orgs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrganizationRepository) List(ctx context.Context) ([]*models.Organization, error) {
	out := make([]*models.Organization, 0, len(m.orgs))
	for _, o := range m.orgs {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	for _, o := range m.orgs {
		if o.Name == org.Name && o.ID != org.ID {
			return uniqueViolation("organizations_name_key")
		}
	}
	m.updates++
	cp := *org
	m.orgs[org.ID] = &cp
	return nil
}

type mockCooperatorProfileRepository struct {
	profiles map[int64]*models.CooperatorProfile
	nextID   int64
	creates  int
	updates  int
}

func newMockCooperatorProfileRepository(profiles ...*models.CooperatorProfile) *mockCooperatorProfileRepository {
	m := &mockCooperatorProfileRepository{profiles: map[int64]*models.CooperatorProfile{}}
	for _, p := range profiles {
		m.profiles[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *mockCooperatorProfileRepository) Create(ctx context.Context, profile *models.CooperatorProfile) error {
	for _, p := range m.profiles {
		if p.UserID == profile.UserID {
			return uniqueViolation("cooperator_profiles_user_id_key")
		}
	}
	m.creates++
	m.nextID++
	profile.ID = m.nextID
	cp := *profile
	m.profiles[profile.ID] = &cp
	return nil
}

func (m *mockCooperatorProfileRepository) GetByID(ctx context.Context, id int64) (*models.CooperatorProfile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockCooperatorProfileRepository) List(ctx context.Context) ([]*models.CooperatorProfile, error) {
	out := make([]*models.CooperatorProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (m *mockCooperatorProfileRepository) Update(ctx context.Context, profile *models.CooperatorProfile) error {
	m.updates++
	cp := *profile
	m.profiles[profile.ID] = &cp
	return nil
}

type mockPortfolioItemRepository struct {
	items   map[int64]*models.PortfolioItem
	nextID  int64
	creates int
	updates int
}

func newMockPortfolioItemRepository(items ...*models.PortfolioItem) *mockPortfolioItemRepository {
	m := &mockPortfolioItemRepository{items: map[int64]*models.PortfolioItem{}}
	for _, it := range items {
		m.items[it.ID] = it
		if it.ID > m.nextID {
			m.nextID = it.ID
		}
	}
	return m
}

func (m *mockPortfolioItemRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	m.creates++
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockPortfolioItemRepository) GetByID(ctx context.Context, id int64) (*models.PortfolioItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *it
	return &cp, nil
}

func (m *mockPortfolioItemRepository) List(ctx context.Context) ([]*models.PortfolioItem, error) {
	out := make([]*models.PortfolioItem, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (m *mockPortfolioItemRepository) Update(ctx context.Context, item *models.PortfolioItem) error {
	m.updates++
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

type mockProjectRepository struct {
	projects map[int64]*models.Project
	nextID   int64
	creates  int
	updates  int
}

func newMockProjectRepository(projects ...*models.Project) *mockProjectRepository {
	m := &mockProjectRepository{projects: map[int64]*models.Project{}}
	for _, p := range projects {
		m.projects[p.ID] = p
		if p.ID > m.nextID {
			m.nextID = p.ID
		}
	}
	return m
}

func (m *mockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	m.creates++
	m.nextID++
	project.ID = m.nextID
	cp := *project
	m.projects[project.ID] = &cp
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProjectRepository) List(ctx context.Context) ([]*models.Project, error) {
	out := make([]*models.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	m.updates++
	cp := *project
	m.projects[project.ID] = &cp
	return nil
}

type mockCooperationRepository struct {
	coops   map[int64]*models.Cooperation
	nextID  int64
	creates int
	updates int
}

func newMockCooperationRepository(coops ...*models.Cooperation) *mockCooperationRepository {
	m := &mockCooperationRepository{coops: map[int64]*models.Cooperation{}}
	for _, c := range coops {
		m.coops[c.ID] = c
		if c.ID > m.nextID {
			m.nextID = c.ID
		}
	}
	return m
}

func (m *mockCooperationRepository) Create(ctx context.Context, coop *models.Cooperation) error {
	m.creates++
	m.nextID++
	coop.ID = m.nextID
	cp := *coop
	m.coops[coop.ID] = &cp
	return nil
}

func (m *mockCooperationRepository) GetByID(ctx context.Context, id int64) (*models.Cooperation, error) {
	c, ok := m.coops[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCooperationRepository) ListPublic(ctx context.Context) ([]*models.Cooperation, error) {
	out := make([]*models.Cooperation, 0, len(m.coops))
	for _, c := range m.coops {
		if !c.IsPrivate {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockCooperationRepository) Update(ctx context.Context, coop *models.Cooperation) error {
	m.updates++
	cp := *coop
	m.coops[coop.ID] = &cp
	return nil
}

type mockReviewRepository struct {
	reviews map[int64]*models.Review
	nextID  int64
	creates int
	updates int
}

func newMockReviewRepository(reviews ...*models.Review) *mockReviewRepository {
	m := &mockReviewRepository{reviews: map[int64]*models.Review{}}
	for _, r := range reviews {
		m.reviews[r.ID] = r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	m.creates++
	m.nextID++
	review.ID = m.nextID
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockReviewRepository) List(ctx context.Context) ([]*models.Review, error) {
	out := make([]*models.Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	m.updates++
	cp := *review
	m.reviews[review.ID] = &cp
	return nil
}

type mockMessageRepository struct {
	messages map[int64]*models.Message
	nextID   int64
	creates  int
	updates  int
}

func newMockMessageRepository(messages ...*models.Message) *mockMessageRepository {
	m := &mockMessageRepository{messages: map[int64]*models.Message{}}
	for _, msg := range messages {
		m.messages[msg.ID] = msg
		if msg.ID > m.nextID {
			m.nextID = msg.ID
		}
	}
	return m
}

func (m *mockMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	m.creates++
	m.nextID++
	msg.ID = m.nextID
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *mockMessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *msg
	return &cp, nil
}

func (m *mockMessageRepository) ListForUser(ctx context.Context, userID int64) ([]*models.Message, error) {
	out := make([]*models.Message, 0)
	for _, msg := range m.messages {
		if msg.IsVisibleTo(userID) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *mockMessageRepository) UpdateText(ctx context.Context, msg *models.Message) error {
	m.updates++
	m.messages[msg.ID].Message = msg.Message
	return nil
}

// uniqueViolation builds the error a repository returns for a duplicate key.
func uniqueViolation(constraint string) error {
	return fmt.Errorf("%w: %w", apperrors.ErrConflict, &pgconn.PgError{Code: "23505", ConstraintName: constraint})
}

func ptr[T any](v T) *T { return &v }
