// internal/client/entities.go
package client

import (
	"context"
	"net/http"

	expensestore "github.com/dalemusser/sitedesk/internal/app/store/expenses"
	"github.com/dalemusser/sitedesk/internal/app/store/queries/orgmembers"
	"github.com/dalemusser/sitedesk/internal/app/store/queries/userorgs"
	stagestore "github.com/dalemusser/sitedesk/internal/app/store/stages"
	"github.com/dalemusser/sitedesk/internal/domain/models"
)

// OrgDetail is the organization detail payload with derived counts.
type OrgDetail struct {
	models.Organization
	MemberCount  int64 `json:"member_count"`
	ProjectCount int64 `json:"project_count"`
}

// RoleDetail is the role detail payload with its derived member count.
type RoleDetail struct {
	models.Role
	MemberCount int64 `json:"member_count"`
}

// Users

func (c *Client) ListUsers(ctx context.Context, p ListParams) (Page[models.User], error) {
	q := p.values()
	key := Key{Entity: "user", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.User]](ctx, c, key, "/users", q)
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	key := Key{Entity: "user", Op: OpDetail, Params: id}
	return getCached[models.User](ctx, c, key, "/users/"+id, nil)
}

func (c *Client) UserOrganizations(ctx context.Context, id string) ([]userorgs.UserOrg, error) {
	key := Key{Entity: "user", Op: OpOrganizations, Params: id}
	return getCached[[]userorgs.UserOrg](ctx, c, key, "/users/"+id+"/organizations", nil)
}

func (c *Client) CreateUser(ctx context.Context, body any) (models.User, error) {
	return mutate[models.User](ctx, c, http.MethodPost, "/users", body, "user.create", Scope{})
}

func (c *Client) UpdateUser(ctx context.Context, id string, body any) (models.User, error) {
	return mutate[models.User](ctx, c, http.MethodPut, "/users/"+id, body, "user.update", Scope{ID: id})
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.del(ctx, "/users/"+id, "user.delete", Scope{ID: id})
}

// Organizations

func (c *Client) ListOrganizations(ctx context.Context, p ListParams) (Page[models.Organization], error) {
	q := p.values()
	key := Key{Entity: "organization", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Organization]](ctx, c, key, "/organizations", q)
}

func (c *Client) GetOrganization(ctx context.Context, id string) (OrgDetail, error) {
	key := Key{Entity: "organization", Op: OpDetail, Params: id}
	return getCached[OrgDetail](ctx, c, key, "/organizations/"+id, nil)
}

func (c *Client) OrganizationMembers(ctx context.Context, id string, p ListParams) (Page[orgmembers.OrgMember], error) {
	q := p.values()
	key := Key{Entity: "organization", Op: OpMembers, Params: subParams(id, q.Encode())}
	return getCached[Page[orgmembers.OrgMember]](ctx, c, key, "/organizations/"+id+"/members", q)
}

func (c *Client) CreateOrganization(ctx context.Context, body any) (models.Organization, error) {
	return mutate[models.Organization](ctx, c, http.MethodPost, "/organizations", body, "organization.create", Scope{})
}

func (c *Client) UpdateOrganization(ctx context.Context, id string, body any) (models.Organization, error) {
	return mutate[models.Organization](ctx, c, http.MethodPut, "/organizations/"+id, body, "organization.update", Scope{ID: id})
}

func (c *Client) DeleteOrganization(ctx context.Context, id string) error {
	return c.del(ctx, "/organizations/"+id, "organization.delete", Scope{ID: id})
}

func (c *Client) AddOrganizationMember(ctx context.Context, orgID string, body any) (models.OrganizationMembership, error) {
	scope := Scope{Related: map[string][]string{"organization": {orgID}}}
	return mutate[models.OrganizationMembership](ctx, c, http.MethodPost, "/organizations/"+orgID+"/members", body, "membership.create", scope)
}

func (c *Client) UpdateOrganizationMember(ctx context.Context, orgID, membershipID string, body any) (models.OrganizationMembership, error) {
	scope := Scope{Related: map[string][]string{"organization": {orgID}}}
	return mutate[models.OrganizationMembership](ctx, c, http.MethodPut, "/organizations/"+orgID+"/members/"+membershipID, body, "membership.update", scope)
}

func (c *Client) RemoveOrganizationMember(ctx context.Context, orgID, membershipID string) error {
	scope := Scope{Related: map[string][]string{"organization": {orgID}}}
	return c.del(ctx, "/organizations/"+orgID+"/members/"+membershipID, "membership.delete", scope)
}

// Roles

func (c *Client) ListRoles(ctx context.Context, orgID string, p ListParams) (Page[models.Role], error) {
	q := p.values()
	q.Set("org", orgID)
	key := Key{Entity: "role", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Role]](ctx, c, key, "/roles", q)
}

func (c *Client) GetRole(ctx context.Context, id string) (RoleDetail, error) {
	key := Key{Entity: "role", Op: OpDetail, Params: id}
	return getCached[RoleDetail](ctx, c, key, "/roles/"+id, nil)
}

func (c *Client) CreateRole(ctx context.Context, body any) (models.Role, error) {
	return mutate[models.Role](ctx, c, http.MethodPost, "/roles", body, "role.create", Scope{})
}

func (c *Client) UpdateRole(ctx context.Context, id string, body any) (models.Role, error) {
	return mutate[models.Role](ctx, c, http.MethodPut, "/roles/"+id, body, "role.update", Scope{ID: id})
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.del(ctx, "/roles/"+id, "role.delete", Scope{ID: id})
}

// Team members

func (c *Client) ListTeamMembers(ctx context.Context, orgID string, p ListParams) (Page[models.TeamMember], error) {
	q := p.values()
	q.Set("org", orgID)
	key := Key{Entity: "teammember", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.TeamMember]](ctx, c, key, "/team-members", q)
}

func (c *Client) GetTeamMember(ctx context.Context, id string) (models.TeamMember, error) {
	key := Key{Entity: "teammember", Op: OpDetail, Params: id}
	return getCached[models.TeamMember](ctx, c, key, "/team-members/"+id, nil)
}

func (c *Client) CreateTeamMember(ctx context.Context, roleID string, body any) (models.TeamMember, error) {
	scope := Scope{Related: map[string][]string{"role": {roleID}}}
	return mutate[models.TeamMember](ctx, c, http.MethodPost, "/team-members", body, "teammember.create", scope)
}

func (c *Client) UpdateTeamMember(ctx context.Context, id, roleID string, body any) (models.TeamMember, error) {
	scope := Scope{ID: id, Related: map[string][]string{"role": {roleID}}}
	return mutate[models.TeamMember](ctx, c, http.MethodPut, "/team-members/"+id, body, "teammember.update", scope)
}

func (c *Client) DeleteTeamMember(ctx context.Context, id, roleID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"role": {roleID}}}
	return c.del(ctx, "/team-members/"+id, "teammember.delete", scope)
}

// Projects

func (c *Client) ListProjects(ctx context.Context, orgID string, p ListParams) (Page[models.Project], error) {
	q := p.values()
	q.Set("org", orgID)
	key := Key{Entity: "project", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Project]](ctx, c, key, "/projects", q)
}

func (c *Client) GetProject(ctx context.Context, id string) (models.Project, error) {
	key := Key{Entity: "project", Op: OpDetail, Params: id}
	return getCached[models.Project](ctx, c, key, "/projects/"+id, nil)
}

func (c *Client) ProjectExpenseSummary(ctx context.Context, id string) ([]expensestore.CategorySummary, error) {
	key := Key{Entity: "project", Op: OpSummary, Params: id}
	return getCached[[]expensestore.CategorySummary](ctx, c, key, "/projects/"+id+"/expenses/summary", nil)
}

func (c *Client) ProjectDocuments(ctx context.Context, id string, p ListParams) (Page[models.Document], error) {
	q := p.values()
	key := Key{Entity: "project", Op: OpDocuments, Params: subParams(id, q.Encode())}
	return getCached[Page[models.Document]](ctx, c, key, "/projects/"+id+"/documents", q)
}

func (c *Client) CreateProject(ctx context.Context, orgID string, body any) (models.Project, error) {
	scope := Scope{Related: map[string][]string{"organization": {orgID}}}
	return mutate[models.Project](ctx, c, http.MethodPost, "/projects", body, "project.create", scope)
}

func (c *Client) UpdateProject(ctx context.Context, id string, body any) (models.Project, error) {
	return mutate[models.Project](ctx, c, http.MethodPut, "/projects/"+id, body, "project.update", Scope{ID: id})
}

func (c *Client) DeleteProject(ctx context.Context, id, orgID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"organization": {orgID}}}
	return c.del(ctx, "/projects/"+id, "project.delete", scope)
}

// Parties

func (c *Client) ListParties(ctx context.Context, orgID string, p ListParams) (Page[models.Party], error) {
	q := p.values()
	q.Set("org", orgID)
	key := Key{Entity: "party", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Party]](ctx, c, key, "/parties", q)
}

func (c *Client) GetParty(ctx context.Context, id string) (models.Party, error) {
	key := Key{Entity: "party", Op: OpDetail, Params: id}
	return getCached[models.Party](ctx, c, key, "/parties/"+id, nil)
}

func (c *Client) PartyTransactions(ctx context.Context, id string, p ListParams) (Page[models.Transaction], error) {
	q := p.values()
	key := Key{Entity: "party", Op: OpTransactions, Params: subParams(id, q.Encode())}
	return getCached[Page[models.Transaction]](ctx, c, key, "/parties/"+id+"/transactions", q)
}

func (c *Client) CreateParty(ctx context.Context, body any) (models.Party, error) {
	return mutate[models.Party](ctx, c, http.MethodPost, "/parties", body, "party.create", Scope{})
}

func (c *Client) UpdateParty(ctx context.Context, id string, body any) (models.Party, error) {
	return mutate[models.Party](ctx, c, http.MethodPut, "/parties/"+id, body, "party.update", Scope{ID: id})
}

func (c *Client) DeleteParty(ctx context.Context, id string) error {
	return c.del(ctx, "/parties/"+id, "party.delete", Scope{ID: id})
}

func (c *Client) LinkPartyProject(ctx context.Context, partyID, projectID string) (models.Party, error) {
	return mutate[models.Party](ctx, c, http.MethodPost, "/parties/"+partyID+"/projects/"+projectID, nil, "party.link", Scope{ID: partyID})
}

func (c *Client) UnlinkPartyProject(ctx context.Context, partyID, projectID string) (models.Party, error) {
	return mutate[models.Party](ctx, c, http.MethodDelete, "/parties/"+partyID+"/projects/"+projectID, nil, "party.unlink", Scope{ID: partyID})
}

// Transactions

func (c *Client) ListTransactions(ctx context.Context, p ListParams) (Page[models.Transaction], error) {
	q := p.values()
	key := Key{Entity: "transaction", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Transaction]](ctx, c, key, "/transactions", q)
}

func (c *Client) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	key := Key{Entity: "transaction", Op: OpDetail, Params: id}
	return getCached[models.Transaction](ctx, c, key, "/transactions/"+id, nil)
}

func (c *Client) CreateTransaction(ctx context.Context, partyID string, body any) (models.Transaction, error) {
	scope := Scope{Related: map[string][]string{"party": {partyID}}}
	return mutate[models.Transaction](ctx, c, http.MethodPost, "/transactions", body, "transaction.create", scope)
}

func (c *Client) UpdateTransaction(ctx context.Context, id, partyID string, body any) (models.Transaction, error) {
	scope := Scope{ID: id, Related: map[string][]string{"party": {partyID}}}
	return mutate[models.Transaction](ctx, c, http.MethodPut, "/transactions/"+id, body, "transaction.update", scope)
}

func (c *Client) DeleteTransaction(ctx context.Context, id, partyID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"party": {partyID}}}
	return c.del(ctx, "/transactions/"+id, "transaction.delete", scope)
}

// Stages

func (c *Client) ListStages(ctx context.Context, projectID string, p ListParams) (Page[models.Stage], error) {
	q := p.values()
	q.Set("project", projectID)
	key := Key{Entity: "stage", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Stage]](ctx, c, key, "/stages", q)
}

func (c *Client) GetStage(ctx context.Context, id string) (models.Stage, error) {
	key := Key{Entity: "stage", Op: OpDetail, Params: id}
	return getCached[models.Stage](ctx, c, key, "/stages/"+id, nil)
}

func (c *Client) StageStats(ctx context.Context, id string) (stagestore.Stats, error) {
	key := Key{Entity: "stage", Op: OpStats, Params: id}
	return getCached[stagestore.Stats](ctx, c, key, "/stages/"+id+"/stats", nil)
}

func (c *Client) CreateStage(ctx context.Context, body any) (models.Stage, error) {
	return mutate[models.Stage](ctx, c, http.MethodPost, "/stages", body, "stage.create", Scope{})
}

func (c *Client) UpdateStage(ctx context.Context, id string, body any) (models.Stage, error) {
	return mutate[models.Stage](ctx, c, http.MethodPut, "/stages/"+id, body, "stage.update", Scope{ID: id})
}

func (c *Client) DeleteStage(ctx context.Context, id string) error {
	return c.del(ctx, "/stages/"+id, "stage.delete", Scope{ID: id})
}

// Tasks
//
// Task mutations name the stage ids they touch so both the old and the
// new stage's statistics fall out of the cache on a move.

func (c *Client) ListTasks(ctx context.Context, p ListParams) (Page[models.Task], error) {
	q := p.values()
	key := Key{Entity: "task", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Task]](ctx, c, key, "/tasks", q)
}

func (c *Client) GetTask(ctx context.Context, id string) (models.Task, error) {
	key := Key{Entity: "task", Op: OpDetail, Params: id}
	return getCached[models.Task](ctx, c, key, "/tasks/"+id, nil)
}

func (c *Client) CreateTask(ctx context.Context, stageID string, body any) (models.Task, error) {
	scope := Scope{Related: map[string][]string{"stage": {stageID}}}
	return mutate[models.Task](ctx, c, http.MethodPost, "/tasks", body, "task.create", scope)
}

func (c *Client) UpdateTask(ctx context.Context, id string, stageIDs []string, body any) (models.Task, error) {
	scope := Scope{ID: id, Related: map[string][]string{"stage": stageIDs}}
	return mutate[models.Task](ctx, c, http.MethodPut, "/tasks/"+id, body, "task.update", scope)
}

func (c *Client) DeleteTask(ctx context.Context, id, stageID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"stage": {stageID}}}
	return c.del(ctx, "/tasks/"+id, "task.delete", scope)
}

// Expenses

func (c *Client) ListExpenses(ctx context.Context, projectID string, p ListParams) (Page[models.Expense], error) {
	q := p.values()
	q.Set("project", projectID)
	key := Key{Entity: "expense", Op: OpList, Params: q.Encode()}
	return getCached[Page[models.Expense]](ctx, c, key, "/expenses", q)
}

func (c *Client) GetExpense(ctx context.Context, id string) (models.Expense, error) {
	key := Key{Entity: "expense", Op: OpDetail, Params: id}
	return getCached[models.Expense](ctx, c, key, "/expenses/"+id, nil)
}

func (c *Client) CreateExpense(ctx context.Context, projectID string, body any) (models.Expense, error) {
	scope := Scope{Related: map[string][]string{"project": {projectID}}}
	return mutate[models.Expense](ctx, c, http.MethodPost, "/expenses", body, "expense.create", scope)
}

func (c *Client) UpdateExpense(ctx context.Context, id, projectID string, body any) (models.Expense, error) {
	scope := Scope{ID: id, Related: map[string][]string{"project": {projectID}}}
	return mutate[models.Expense](ctx, c, http.MethodPut, "/expenses/"+id, body, "expense.update", scope)
}

func (c *Client) DeleteExpense(ctx context.Context, id, projectID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"project": {projectID}}}
	return c.del(ctx, "/expenses/"+id, "expense.delete", scope)
}

// Documents

func (c *Client) DeleteDocument(ctx context.Context, id, projectID string) error {
	scope := Scope{ID: id, Related: map[string][]string{"project": {projectID}}}
	return c.del(ctx, "/documents/"+id, "document.delete", scope)
}

// Verification. These are not cached; every call hits the server.

func (c *Client) SendVerification(ctx context.Context, phone string) error {
	_, err := c.do(ctx, http.MethodPost, "/verify/send", nil, map[string]string{"phone": phone})
	return err
}

func (c *Client) CheckVerification(ctx context.Context, phone, code string) error {
	_, err := c.do(ctx, http.MethodPost, "/verify/check", nil, map[string]string{"phone": phone, "code": code})
	return err
}
