// internal/client/invalidate.go
package client

// Target names one cache region a mutation makes stale. Ops that address
// an owner (detail, stats, summary, sub-resource lists) resolve their ids
// from the mutation's Scope; a target whose entity has no ids in scope
// falls back to dropping the whole entity+op region.
type Target struct {
	Entity string
	Op     string
}

// Scope carries the ids a mutation touched: the mutated entity's own id
// and any related ids the targets need (for a task move, both the old
// and the new stage).
type Scope struct {
	ID      string
	Related map[string][]string
}

// invalidations is the dependency table: which cache regions each
// mutation makes stale. It is enumerated per mutation, not computed, so
// the cross-entity dependencies stay visible in one place.
var invalidations = map[string][]Target{
	"user.create": {{"user", OpList}},
	"user.update": {{"user", OpList}, {"user", OpDetail}, {"organization", OpMembers}},
	"user.delete": {{"user", OpList}, {"user", OpDetail}, {"organization", OpMembers}},

	"organization.create": {{"organization", OpList}},
	"organization.update": {{"organization", OpList}, {"organization", OpDetail}},
	"organization.delete": {{"organization", OpList}, {"organization", OpDetail}, {"user", OpOrganizations}},

	// Membership changes move counts on the organization detail, the
	// user's organization listing and the role detail.
	"membership.create": {{"organization", OpMembers}, {"organization", OpDetail}, {"user", OpOrganizations}, {"role", OpDetail}},
	"membership.update": {{"organization", OpMembers}, {"organization", OpDetail}, {"user", OpOrganizations}, {"role", OpDetail}},
	"membership.delete": {{"organization", OpMembers}, {"organization", OpDetail}, {"user", OpOrganizations}, {"role", OpDetail}},

	"role.create": {{"role", OpList}},
	"role.update": {{"role", OpList}, {"role", OpDetail}},
	"role.delete": {{"role", OpList}, {"role", OpDetail}},

	"teammember.create": {{"teammember", OpList}, {"role", OpDetail}},
	"teammember.update": {{"teammember", OpList}, {"teammember", OpDetail}, {"role", OpDetail}},
	"teammember.delete": {{"teammember", OpList}, {"teammember", OpDetail}, {"role", OpDetail}},

	"project.create": {{"project", OpList}, {"organization", OpDetail}},
	"project.update": {{"project", OpList}, {"project", OpDetail}},
	"project.delete": {{"project", OpList}, {"project", OpDetail}, {"organization", OpDetail}},

	"party.create": {{"party", OpList}},
	"party.update": {{"party", OpList}, {"party", OpDetail}},
	"party.delete": {{"party", OpList}, {"party", OpDetail}},
	"party.link":   {{"party", OpList}, {"party", OpDetail}},
	"party.unlink": {{"party", OpList}, {"party", OpDetail}},

	// Transactions move the party balance.
	"transaction.create": {{"transaction", OpList}, {"party", OpDetail}, {"party", OpTransactions}},
	"transaction.update": {{"transaction", OpList}, {"transaction", OpDetail}, {"party", OpDetail}, {"party", OpTransactions}},
	"transaction.delete": {{"transaction", OpList}, {"transaction", OpDetail}, {"party", OpDetail}, {"party", OpTransactions}},

	"stage.create": {{"stage", OpList}},
	"stage.update": {{"stage", OpList}, {"stage", OpDetail}},
	"stage.delete": {{"stage", OpList}, {"stage", OpDetail}, {"stage", OpStats}, {"task", OpList}},

	// A task move makes both the old and the new stage's stats stale;
	// the scope carries both stage ids.
	"task.create": {{"task", OpList}, {"stage", OpStats}},
	"task.update": {{"task", OpList}, {"task", OpDetail}, {"stage", OpStats}},
	"task.delete": {{"task", OpList}, {"task", OpDetail}, {"stage", OpStats}},

	"expense.create": {{"expense", OpList}, {"project", OpSummary}},
	"expense.update": {{"expense", OpList}, {"expense", OpDetail}, {"project", OpSummary}},
	"expense.delete": {{"expense", OpList}, {"expense", OpDetail}, {"project", OpSummary}},

	"document.upload": {{"project", OpDocuments}},
	"document.delete": {{"project", OpDocuments}, {"document", OpDetail}},
}

// invalidate drops every cache region the table lists for the mutation.
// Unknown mutations drop nothing.
func (c *Client) invalidate(mutation, entity string, scope Scope) {
	targets, ok := invalidations[mutation]
	if !ok {
		return
	}
	for _, t := range targets {
		switch t.Op {
		case OpList:
			c.cache.DropOp(t.Entity, t.Op)
		default:
			ids := scope.Related[t.Entity]
			if t.Entity == entity && scope.ID != "" {
				ids = append(ids, scope.ID)
			}
			if len(ids) == 0 {
				c.cache.DropOp(t.Entity, t.Op)
				continue
			}
			for _, id := range ids {
				c.cache.DropOwned(t.Entity, t.Op, id)
			}
		}
	}
}
