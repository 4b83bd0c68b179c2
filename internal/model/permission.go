package model

import "sort"

// Permission is the flat storage unit of the authorization matrix. A triple
// (position, resource, action) is unique; a triple absent from the table means
// "not granted".
type Permission struct {
	BaseModel
	Position  string `gorm:"type:varchar(50);not null;uniqueIndex:idx_permissions_triple,priority:1" json:"position"`
	Resource  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_permissions_triple,priority:2" json:"resource"`
	Action    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_permissions_triple,priority:3" json:"permission"`
	IsGranted bool   `gorm:"default:false" json:"is_granted"`
	UpdatedBy string `gorm:"type:char(36)" json:"updated_by,omitempty"`
}

// TableName names the table.
func (Permission) TableName() string {
	return "permissions"
}

// ActionGrants maps action -> granted.
type ActionGrants map[string]bool

// ResourceGrants maps resource -> action grants.
type ResourceGrants map[string]ActionGrants

// Matrix is the nested position -> resource -> action -> granted view the API
// serves. It is derived from flat Permission rows and never stored directly.
type Matrix map[string]ResourceGrants

// RawMatrix is a client-submitted matrix before validation. Leaves are
// arbitrary JSON values; they are coerced to booleans, not rejected.
type RawMatrix map[string]map[string]map[string]interface{}

// ToMatrix groups flat rows into the nested matrix. Pure; inverse of
// FlattenMatrix for any matrix limited to the closed vocabularies.
func ToMatrix(rows []Permission) Matrix {
	m := make(Matrix)
	for _, row := range rows {
		res, ok := m[row.Position]
		if !ok {
			res = make(ResourceGrants)
			m[row.Position] = res
		}
		grants, ok := res[row.Resource]
		if !ok {
			grants = make(ActionGrants)
			res[row.Resource] = grants
		}
		grants[row.Action] = row.IsGranted
	}
	return m
}

// FlattenMatrix converts a validated matrix back into flat rows, stamping
// every row with the acting staff id. Rows come out in deterministic
// position/resource/action order. Pure.
func FlattenMatrix(m Matrix, actorID string) []Permission {
	rows := make([]Permission, 0, len(m))
	for position, res := range m {
		for resource, grants := range res {
			for action, granted := range grants {
				rows = append(rows, Permission{
					Position:  position,
					Resource:  resource,
					Action:    action,
					IsGranted: granted,
					UpdatedBy: actorID,
				})
			}
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Position != rows[j].Position {
			return rows[i].Position < rows[j].Position
		}
		if rows[i].Resource != rows[j].Resource {
			return rows[i].Resource < rows[j].Resource
		}
		return rows[i].Action < rows[j].Action
	})
	return rows
}

// Truthy coerces an arbitrary JSON leaf to a boolean using truthy semantics:
// nil, false, 0 and "" are false, everything else is true. Note the string
// "false" therefore coerces to true; this mirrors the historical behavior of
// the API and callers depend on it staying permissive.
func Truthy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

// DefaultPermissions is the grant set installed by the seeder: admin and
// manager get everything, agents work properties and transactions,
// legal officers handle contracts, accountants handle payments.
func DefaultPermissions() []Permission {
	full := func(position string) []Permission {
		var rows []Permission
		for _, resource := range Resources() {
			for _, action := range Actions() {
				rows = append(rows, Permission{
					Position:  position,
					Resource:  resource,
					Action:    action,
					IsGranted: true,
				})
			}
		}
		return rows
	}

	grant := func(position, resource string, granted ...string) []Permission {
		set := toSet(granted)
		var rows []Permission
		for _, action := range Actions() {
			_, ok := set[action]
			rows = append(rows, Permission{
				Position:  position,
				Resource:  resource,
				Action:    action,
				IsGranted: ok,
			})
		}
		return rows
	}

	var rows []Permission
	rows = append(rows, full(PositionAdmin)...)
	rows = append(rows, full(PositionManager)...)

	rows = append(rows, grant(PositionAgent, ResourceProperties, ActionView, ActionAdd, ActionEdit)...)
	rows = append(rows, grant(PositionAgent, ResourceTransactions, ActionView, ActionAdd)...)
	rows = append(rows, grant(PositionAgent, ResourcePartners, ActionView)...)

	rows = append(rows, grant(PositionLegalOfficer, ResourceContracts, ActionView, ActionAdd, ActionEdit)...)
	rows = append(rows, grant(PositionLegalOfficer, ResourceProperties, ActionView)...)

	rows = append(rows, grant(PositionAccountant, ResourcePayments, ActionView, ActionAdd, ActionEdit)...)
	rows = append(rows, grant(PositionAccountant, ResourceTransactions, ActionView)...)

	return rows
}
