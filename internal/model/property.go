package model

// Property is a listing record. Type and Area hold catalog values; they are
// validated against the active catalog on create/update but stored as plain
// strings, so soft-deleting a catalog value never rewrites existing listings.
type Property struct {
	BaseModel
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Type        string  `gorm:"type:varchar(100);not null;index" json:"type"`
	Area        string  `gorm:"type:varchar(100);not null;index" json:"area"`
	Address     string  `gorm:"type:varchar(500)" json:"address"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Status      string  `gorm:"type:varchar(20);default:available" json:"status"`
	CreatedBy   string  `gorm:"type:char(36)" json:"created_by,omitempty"`
	UpdatedBy   string  `gorm:"type:char(36)" json:"updated_by,omitempty"`
}

// TableName names the table.
func (Property) TableName() string {
	return "properties"
}

// Property listing status values.
const (
	PropertyAvailable = "available"
	PropertyReserved  = "reserved"
	PropertySold      = "sold"
)
