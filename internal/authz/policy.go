// Package authz holds the access-control policy for the API in one table.
//
// Most operations only require a valid token; the table lists the exceptions.
// An action absent from the table is allowed for every authenticated role.
// That gap is intentional: any staff member may create and edit records, only
// deletes and user administration are restricted.
package authz

import (
	apperrors "immigration-crm/internal/errors"

	"immigration-crm/internal/model"
)

// Action names an operation subject to a policy rule.
type Action string

const (
	ActionRegisterUser   Action = "users.register"
	ActionDeleteClient   Action = "clients.delete"
	ActionDeleteCase     Action = "cases.delete"
	ActionDeleteCaseNote Action = "case_notes.delete"
)

// Rule describes who may perform an action. OwnerExempt lets the owner of
// the target resource through regardless of role.
type Rule struct {
	Roles       []string
	OwnerExempt bool
}

var policy = map[Action]Rule{
	ActionRegisterUser:   {Roles: []string{model.RoleAdmin}},
	ActionDeleteClient:   {Roles: []string{model.RoleAdmin, model.RoleManager}},
	ActionDeleteCase:     {Roles: []string{model.RoleAdmin, model.RoleManager}},
	ActionDeleteCaseNote: {Roles: []string{model.RoleAdmin}, OwnerExempt: true},
}

// Lookup returns the rule for an action, if one exists.
func Lookup(action Action) (Rule, bool) {
	rule, ok := policy[action]
	return rule, ok
}

// Check verifies that role may perform action. Actions without a rule are
// open to every authenticated role.
func Check(role string, action Action) error {
	rule, ok := policy[action]
	if !ok {
		return nil
	}
	for _, r := range rule.Roles {
		if r == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}

// CheckOwner verifies that the actor may perform action on a resource owned
// by ownerID. If the action's rule is owner-exempt and the actor is the
// owner, the role check is skipped.
func CheckOwner(role, actorID, ownerID string, action Action) error {
	rule, ok := policy[action]
	if !ok {
		return nil
	}
	if rule.OwnerExempt && actorID != "" && actorID == ownerID {
		return nil
	}
	for _, r := range rule.Roles {
		if r == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
