package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/kanban-service/internal/domain"
	apperrors "github.com/spec-kit/kanban-service/pkg/util/errorutil"
)

type fakeOrgRepo struct {
	orgs        map[string]domain.Organization
	memberships map[string]domain.Membership
	nextID      int
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: map[string]domain.Organization{}, memberships: map[string]domain.Membership{}}
}

func (r *fakeOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	r.nextID++
	org.ID = fmt.Sprintf("org-%d", r.nextID)
	r.orgs[org.ID] = *org
	return nil
}

func (r *fakeOrgRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &org, nil
}

func (r *fakeOrgRepo) AddMember(ctx context.Context, membership *domain.Membership) error {
	r.memberships[membership.OrganizationID+"/"+membership.UserID] = *membership
	return nil
}

func (r *fakeOrgRepo) GetMembership(ctx context.Context, organizationID, userID string) (*domain.Membership, error) {
	membership, ok := r.memberships[organizationID+"/"+userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &membership, nil
}

func (r *fakeOrgRepo) ListMembers(ctx context.Context, organizationID string) ([]domain.Membership, error) {
	out := make([]domain.Membership, 0, len(r.memberships))
	for _, membership := range r.memberships {
		if membership.OrganizationID == organizationID {
			out = append(out, membership)
		}
	}
	return out, nil
}

type seedingProjectRepo struct {
	fakeProjectRepo
	nextID int
}

func newSeedingProjectRepo() *seedingProjectRepo {
	return &seedingProjectRepo{fakeProjectRepo: fakeProjectRepo{projects: map[string]domain.Project{}}}
}

func (r *seedingProjectRepo) Create(ctx context.Context, project *domain.Project) error {
	r.nextID++
	project.ID = fmt.Sprintf("proj-%d", r.nextID)
	r.projects[project.ID] = *project
	return nil
}

func newProjectFixture() (*ProjectService, *fakeOrgRepo, *seedingProjectRepo, *fakeColumnRepo) {
	orgs := newFakeOrgRepo()
	projects := newSeedingProjectRepo()
	columns := &fakeColumnRepo{}
	return NewProjectService(orgs, projects, columns), orgs, projects, columns
}

func TestCreateOrganizationMakesCreatorAdmin(t *testing.T) {
	svc, orgs, _, _ := newProjectFixture()

	org, err := svc.CreateOrganization(context.Background(), "user-1", "  Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", org.Name)

	membership, err := orgs.GetMembership(context.Background(), org.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.MemberRoleAdmin, membership.Role)
}

func TestCreateProjectSeedsDefaultColumns(t *testing.T) {
	svc, _, _, columns := newProjectFixture()

	project, err := svc.CreateProject(context.Background(), "org-1", "Payments", "pay")
	require.NoError(t, err)
	assert.Equal(t, "PAY", project.KeyPrefix, "prefix is upcased")

	require.Len(t, columns.columns, 3)
	assert.Equal(t, "To Do", columns.columns[0].Name)
	assert.Equal(t, 0, columns.columns[0].Position)
	assert.Equal(t, domain.TerminalColumnName, columns.columns[2].Name)
	assert.True(t, columns.columns[2].IsTerminal())
}

func TestCreateProjectRejectsDuplicatePrefix(t *testing.T) {
	svc, _, _, _ := newProjectFixture()
	ctx := context.Background()

	_, err := svc.CreateProject(ctx, "org-1", "Payments", "PAY")
	require.NoError(t, err)

	_, err = svc.CreateProject(ctx, "org-1", "Payroll", "PAY")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestCreateProjectRejectsInvalidPrefix(t *testing.T) {
	svc, _, _, _ := newProjectFixture()

	for _, prefix := range []string{"", "9AY", "PAY-"} {
		_, err := svc.CreateProject(context.Background(), "org-1", "Payments", prefix)
		require.Error(t, err, "prefix %q", prefix)
	}
}

func TestMembershipForbiddenWhenMissing(t *testing.T) {
	svc, _, _, _ := newProjectFixture()

	_, err := svc.Membership(context.Background(), "org-1", "user-x")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}
