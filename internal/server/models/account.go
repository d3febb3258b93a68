package models

// Role is an account's capability label.
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleReceptionist     Role = "receptionist"
	RoleDoctor           Role = "doctor"
	RolePharmacist       Role = "pharmacist"
	RolePhysicalMedicine Role = "physical_medicine"

	// RoleStaff is both a literal label and, when used as a required or
	// allowed role, a wildcard for the whole staff class.
	RoleStaff Role = "staff"
)

// staffClass lists the labels admitted through the staff wildcard.
// Admin is intentionally not a member.
var staffClass = map[Role]struct{}{
	RoleStaff:            {},
	RoleReceptionist:     {},
	RoleDoctor:           {},
	RolePharmacist:       {},
	RolePhysicalMedicine: {},
}

// Valid reports whether r is one of the known labels.
func (r Role) Valid() bool {
	return r == RoleAdmin || r.IsStaff()
}

// IsStaff reports whether r belongs to the staff class.
func (r Role) IsStaff() bool {
	_, ok := staffClass[r]
	return ok
}

// StaffClass returns the labels admitted through the staff wildcard.
func StaffClass() []Role {
	return []Role{RoleStaff, RoleReceptionist, RoleDoctor, RolePharmacist, RolePhysicalMedicine}
}

// Account is a credentialed user row. PasswordHash is only populated on
// values read from the store and never leaves the server.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	Active       bool   `json:"isActive"`
	PasswordHash string `json:"-"`
}

// Public returns a copy without the password hash.
func (a *Account) Public() *Account {
	c := *a
	c.PasswordHash = ""
	return &c
}
