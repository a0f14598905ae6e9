package chain

// Role names understood by the access-control collaborator.
const (
	// RoleAdmin grants administrative operations (registry writes, pause).
	RoleAdmin = "ADMIN"

	// RoleContract grants trusted-contract operations (sale creation on
	// behalf of a creator).
	RoleContract = "CONTRACT"
)

// AssetLedger is the external ownership/transfer ledger for the assets
// themselves. The engines only request issuance and read edition metadata;
// mint/transfer/burn mechanics live entirely behind this interface.
type AssetLedger interface {
	// Issue mints quantity assets of editionID to recipient and returns
	// the new asset ids. Issuance is atomic: on error nothing was minted.
	Issue(recipient Address, editionID, quantity uint64) ([]uint64, error)

	// Exists reports whether editionID has been created.
	Exists(editionID uint64) bool

	// EditionSize returns the total number of assets in the edition.
	EditionSize(editionID uint64) uint64

	// CreatorOf returns the creator address of the edition.
	CreatorOf(editionID uint64) Address
}

// AccessControl is the external role registry.
type AccessControl interface {
	// HasRole reports whether addr holds the named role.
	HasRole(role string, addr Address) bool
}

// MockAssetLedger is a test double for AssetLedger.
// All function fields must be set before the corresponding method is called.
type MockAssetLedger struct {
	IssueFn       func(recipient Address, editionID, quantity uint64) ([]uint64, error)
	ExistsFn      func(editionID uint64) bool
	EditionSizeFn func(editionID uint64) uint64
	CreatorOfFn   func(editionID uint64) Address
}

func (m *MockAssetLedger) Issue(recipient Address, editionID, quantity uint64) ([]uint64, error) {
	return m.IssueFn(recipient, editionID, quantity)
}
func (m *MockAssetLedger) Exists(editionID uint64) bool {
	return m.ExistsFn(editionID)
}
func (m *MockAssetLedger) EditionSize(editionID uint64) uint64 {
	return m.EditionSizeFn(editionID)
}
func (m *MockAssetLedger) CreatorOf(editionID uint64) Address {
	return m.CreatorOfFn(editionID)
}

// MockAccessControl is a map-backed AccessControl for tests.
type MockAccessControl struct {
	roles map[string]map[Address]bool
}

// NewMockAccessControl creates an empty role registry.
func NewMockAccessControl() *MockAccessControl {
	return &MockAccessControl{roles: make(map[string]map[Address]bool)}
}

// Grant gives addr the named role.
func (m *MockAccessControl) Grant(role string, addr Address) {
	if m.roles[role] == nil {
		m.roles[role] = make(map[Address]bool)
	}
	m.roles[role][addr] = true
}

// HasRole reports whether addr holds the named role.
func (m *MockAccessControl) HasRole(role string, addr Address) bool {
	return m.roles[role][addr]
}
