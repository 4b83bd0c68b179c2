package model

// The closed vocabularies of the configuration module. Adding an entry to one
// of these tables is the whole change needed to introduce a new position,
// resource, action or catalog type; nothing branches on individual values.

// Staff positions (row keys of the permission matrix).
const (
	PositionManager      = "manager"
	PositionAgent        = "agent"
	PositionLegalOfficer = "legal_officer"
	PositionAccountant   = "accountant"
	PositionAdmin        = "admin"
)

// Protected resources.
const (
	ResourceTransactions = "transactions"
	ResourceContracts    = "contracts"
	ResourcePayments     = "payments"
	ResourceProperties   = "properties"
	ResourcePartners     = "partners"
	ResourceStaff        = "staff"
)

// Permission actions.
const (
	ActionView   = "view"
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Catalog types.
const (
	CatalogPropertyType = "property_type"
	CatalogArea         = "area"
	CatalogLeadSource   = "lead_source"
	CatalogContractType = "contract_type"
)

var positions = []string{
	PositionManager,
	PositionAgent,
	PositionLegalOfficer,
	PositionAccountant,
	PositionAdmin,
}

var resources = []string{
	ResourceTransactions,
	ResourceContracts,
	ResourcePayments,
	ResourceProperties,
	ResourcePartners,
	ResourceStaff,
}

var actions = []string{
	ActionView,
	ActionAdd,
	ActionEdit,
	ActionDelete,
}

var catalogTypes = []string{
	CatalogPropertyType,
	CatalogArea,
	CatalogLeadSource,
	CatalogContractType,
}

var (
	positionSet    = toSet(positions)
	resourceSet    = toSet(resources)
	actionSet      = toSet(actions)
	catalogTypeSet = toSet(catalogTypes)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Positions returns the valid positions in declaration order.
func Positions() []string {
	out := make([]string, len(positions))
	copy(out, positions)
	return out
}

// Resources returns the valid resources in declaration order.
func Resources() []string {
	out := make([]string, len(resources))
	copy(out, resources)
	return out
}

// Actions returns the valid permission actions in declaration order.
func Actions() []string {
	out := make([]string, len(actions))
	copy(out, actions)
	return out
}

// CatalogTypes returns the valid catalog types in declaration order.
func CatalogTypes() []string {
	out := make([]string, len(catalogTypes))
	copy(out, catalogTypes)
	return out
}

// ValidPosition reports whether s is a known staff position.
func ValidPosition(s string) bool {
	_, ok := positionSet[s]
	return ok
}

// ValidResource reports whether s is a known protected resource.
func ValidResource(s string) bool {
	_, ok := resourceSet[s]
	return ok
}

// ValidAction reports whether s is a known permission action.
func ValidAction(s string) bool {
	_, ok := actionSet[s]
	return ok
}

// ValidCatalogType reports whether s is a known catalog type.
func ValidCatalogType(s string) bool {
	_, ok := catalogTypeSet[s]
	return ok
}
