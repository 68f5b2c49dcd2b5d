package client

import (
	"testing"

	"go.uber.org/zap"
)

func testClient() *Client {
	return New("http://localhost:0", zap.NewNop())
}

func TestInvalidate_TaskMoveDropsBothStages(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"task", OpList, "page=1"}, []byte("a"))
	c.cache.Set(Key{"task", OpDetail, "t1"}, []byte("b"))
	c.cache.Set(Key{"stage", OpStats, "old"}, []byte("c"))
	c.cache.Set(Key{"stage", OpStats, "new"}, []byte("d"))
	c.cache.Set(Key{"stage", OpStats, "untouched"}, []byte("e"))

	c.invalidate("task.update", "task", Scope{
		ID:      "t1",
		Related: map[string][]string{"stage": {"old", "new"}},
	})

	for _, k := range []Key{
		{"task", OpList, "page=1"},
		{"task", OpDetail, "t1"},
		{"stage", OpStats, "old"},
		{"stage", OpStats, "new"},
	} {
		if _, ok := c.cache.Get(k); ok {
			t.Errorf("%v should have been invalidated", k)
		}
	}
	if _, ok := c.cache.Get(Key{"stage", OpStats, "untouched"}); !ok {
		t.Error("unrelated stage stats should survive")
	}
}

func TestInvalidate_TransactionTouchesParty(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"transaction", OpList, ""}, []byte("a"))
	c.cache.Set(Key{"party", OpDetail, "p1"}, []byte("b"))
	c.cache.Set(Key{"party", OpTransactions, subParams("p1", "page=1")}, []byte("c"))
	c.cache.Set(Key{"party", OpDetail, "p2"}, []byte("d"))

	c.invalidate("transaction.create", "transaction", Scope{
		Related: map[string][]string{"party": {"p1"}},
	})

	if _, ok := c.cache.Get(Key{"transaction", OpList, ""}); ok {
		t.Error("transaction lists should be invalidated")
	}
	if _, ok := c.cache.Get(Key{"party", OpDetail, "p1"}); ok {
		t.Error("party detail should be invalidated, the balance moved")
	}
	if _, ok := c.cache.Get(Key{"party", OpTransactions, subParams("p1", "page=1")}); ok {
		t.Error("party transaction lists should be invalidated")
	}
	if _, ok := c.cache.Get(Key{"party", OpDetail, "p2"}); !ok {
		t.Error("other party details should survive")
	}
}

func TestInvalidate_ExpenseDropsProjectSummary(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"project", OpSummary, "pr1"}, []byte("a"))
	c.cache.Set(Key{"project", OpDetail, "pr1"}, []byte("b"))

	c.invalidate("expense.create", "expense", Scope{
		Related: map[string][]string{"project": {"pr1"}},
	})

	if _, ok := c.cache.Get(Key{"project", OpSummary, "pr1"}); ok {
		t.Error("expense summary should be invalidated")
	}
	if _, ok := c.cache.Get(Key{"project", OpDetail, "pr1"}); !ok {
		t.Error("project detail is not expense-dependent and should survive")
	}
}

func TestInvalidate_MembershipCrossEntity(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"organization", OpMembers, subParams("o1", "")}, []byte("a"))
	c.cache.Set(Key{"organization", OpDetail, "o1"}, []byte("b"))
	c.cache.Set(Key{"user", OpOrganizations, "u1"}, []byte("c"))
	c.cache.Set(Key{"role", OpDetail, "r1"}, []byte("d"))

	c.invalidate("membership.create", "membership", Scope{
		Related: map[string][]string{
			"organization": {"o1"},
			"user":         {"u1"},
			"role":         {"r1"},
		},
	})

	if c.cache.Len() != 0 {
		t.Errorf("all four regions should be invalidated, %d left", c.cache.Len())
	}
}

func TestInvalidate_MissingIDsFallBackToFullDrop(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"organization", OpMembers, subParams("o1", "")}, []byte("a"))
	c.cache.Set(Key{"organization", OpMembers, subParams("o2", "")}, []byte("b"))

	// user.update has no organization ids in scope, so the whole members
	// region is dropped.
	c.invalidate("user.update", "user", Scope{ID: "u1"})

	if c.cache.Len() != 0 {
		t.Errorf("members region should be fully dropped, %d left", c.cache.Len())
	}
}

func TestInvalidate_UnknownMutationDropsNothing(t *testing.T) {
	c := testClient()
	c.cache.Set(Key{"user", OpList, ""}, []byte("a"))

	c.invalidate("widget.create", "widget", Scope{})

	if c.cache.Len() != 1 {
		t.Errorf("unknown mutations should not touch the cache, %d left", c.cache.Len())
	}
}

func TestInvalidationTableCoversAllMutationVerbs(t *testing.T) {
	// Every table entry names the mutated entity's list region except the
	// sub-resource mutations that have no top-level list of their own.
	for mutation, targets := range invalidations {
		if len(targets) == 0 {
			t.Errorf("%s has no targets", mutation)
		}
	}
}
