package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Roles a user can hold.
const (
	RoleClient = "cliente"
	RoleProf   = "prof"
	RoleAdmin  = "admin"
)

// ValidRoles indexes the accepted role values.
var ValidRoles = map[string]bool{
	RoleClient: true,
	RoleProf:   true,
	RoleAdmin:  true,
}

// ValidProfessions indexes the accepted professions for the "prof" role.
var ValidProfessions = map[string]bool{
	"odontologo":     true,
	"medico general": true,
	"cardiologo":     true,
	"pediatra":       true,
	"psicologo":      true,
	"fisioterapeuta": true,
	"enfermero":      true,
	"ginecologo":     true,
}

// Bounded windows for the user audit rings.
const (
	MaxLoginHistory    = 5
	MaxPasswordHistory = 3
)

// SuspensionStrikeThreshold is the strike count at which the daily sweep
// suspends an account.
const SuspensionStrikeThreshold = 3

// Location is one address a user operates from.
type Location struct {
	Address string `json:"address"`
}

type LocationList []Location

func (l LocationList) Value() (driver.Value, error) {
	if l == nil {
		l = LocationList{}
	}
	return jsonColumnValue(l)
}
func (l *LocationList) Scan(value any) error { return jsonColumnScan(l, value) }
func (LocationList) GormDataType() string    { return "json" }
func (LocationList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db, field)
}

// StringList is a json-backed string array column (office pictures).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonColumnValue(l)
}
func (l *StringList) Scan(value any) error { return jsonColumnScan(l, value) }
func (StringList) GormDataType() string    { return "json" }
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db, field)
}

// LoginRecord is one successful login.
type LoginRecord struct {
	LoginDate time.Time `json:"loginDate"`
	Device    string    `json:"device"`
	IP        string    `json:"ip"`
}

// LoginHistory keeps the most recent logins, newest first, capped at
// MaxLoginHistory. Unlike the modification ledger this is a bounded ring:
// new entries go to the front and the tail beyond the window is dropped.
type LoginHistory []LoginRecord

// Push prepends a record and evicts anything past the window.
func (h *LoginHistory) Push(rec LoginRecord) {
	updated := append(LoginHistory{rec}, *h...)
	if len(updated) > MaxLoginHistory {
		updated = updated[:MaxLoginHistory]
	}
	*h = updated
}

func (h LoginHistory) Value() (driver.Value, error) {
	if h == nil {
		h = LoginHistory{}
	}
	return jsonColumnValue(h)
}
func (h *LoginHistory) Scan(value any) error { return jsonColumnScan(h, value) }
func (LoginHistory) GormDataType() string    { return "json" }
func (LoginHistory) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db, field)
}

// PasswordRecord holds a superseded password hash. Never a plaintext.
type PasswordRecord struct {
	Password  string    `json:"password"`
	ChangedAt time.Time `json:"changedAt"`
}

// PasswordHistory keeps the last MaxPasswordHistory superseded hashes,
// newest first, same front-eviction window as LoginHistory.
type PasswordHistory []PasswordRecord

// Push prepends the prior hash and evicts anything past the window.
func (h *PasswordHistory) Push(rec PasswordRecord) {
	updated := append(PasswordHistory{rec}, *h...)
	if len(updated) > MaxPasswordHistory {
		updated = updated[:MaxPasswordHistory]
	}
	*h = updated
}

func (h PasswordHistory) Value() (driver.Value, error) {
	if h == nil {
		h = PasswordHistory{}
	}
	return jsonColumnValue(h)
}
func (h *PasswordHistory) Scan(value any) error { return jsonColumnScan(h, value) }
func (PasswordHistory) GormDataType() string    { return "json" }
func (PasswordHistory) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonDBDataType(db, field)
}

// User is a marketplace account: client, professional or admin.
type User struct {
	BaseModel
	Email          string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FirstName      string       `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName       string       `gorm:"type:varchar(100);not null" json:"lastName"`
	ProfilePicture string       `gorm:"type:text" json:"profilePicture"`
	Locations      LocationList `gorm:"column:locations" json:"locations"`
	PasswordHash   string       `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Role           string       `gorm:"type:varchar(20);not null;index" json:"role"`
	Profession     *string      `gorm:"type:varchar(50)" json:"profession"`
	OfficePictures StringList   `gorm:"column:office_pictures" json:"officePictures"`

	HistoricalLogins LoginHistory    `gorm:"column:historical_logins" json:"-"`
	PasswordHistory  PasswordHistory `gorm:"column:password_history" json:"-"`
	TotalLoginCount  int             `gorm:"default:0" json:"totalLoginCount"`
	LastLogin        *time.Time      `json:"lastLogin"`

	IsVerified  bool `gorm:"default:false" json:"isVerified"`
	Strikes     int  `gorm:"default:0" json:"strikes"`
	IsSuspended bool `gorm:"default:false;index" json:"isSuspended"`

	AuditFields
}

func (*User) EntityName() string { return "user" }

// SnapshotFields excludes the password hash and both history rings: secrets
// must not be duplicated into old_data, and re-snapshotting bounded rings on
// every save would grow the row without bound.
func (u *User) SnapshotFields() map[string]any {
	return map[string]any{
		"email":               u.Email,
		"firstName":           u.FirstName,
		"lastName":            u.LastName,
		"profilePicture":      u.ProfilePicture,
		"locations":           u.Locations,
		"role":                u.Role,
		"profession":          u.Profession,
		"officePictures":      u.OfficePictures,
		"totalLoginCount":     u.TotalLoginCount,
		"lastLogin":           u.LastLogin,
		"isVerified":          u.IsVerified,
		"strikes":             u.Strikes,
		"isSuspended":         u.IsSuspended,
		"deleted":             u.Deleted,
		"modificationHistory": u.ModificationHistory,
	}
}

var _ Auditable = (*User)(nil)
