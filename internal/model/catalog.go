package model

// CatalogValueMaxLen bounds the trimmed value of a catalog item.
const CatalogValueMaxLen = 100

// CatalogItem is one ordered, typed lookup value (property types, areas,
// lead sources, contract types). Items are soft deleted: is_active=false
// hides an item from reads but keeps the row so records that already
// reference the value stay intact. The unique index on
// (type, value, is_active) is the authoritative duplicate guard; the
// service-level check is only the friendly fast path.
type CatalogItem struct {
	BaseModel
	Type         string `gorm:"type:varchar(50);not null;uniqueIndex:idx_catalogs_type_value,priority:1" json:"type"`
	Value        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_catalogs_type_value,priority:2" json:"value"`
	IsActive     bool   `gorm:"default:true;uniqueIndex:idx_catalogs_type_value,priority:3" json:"is_active"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
	CreatedBy    string `gorm:"type:char(36)" json:"created_by,omitempty"`
	UpdatedBy    string `gorm:"type:char(36)" json:"updated_by,omitempty"`
}

// TableName names the table.
func (CatalogItem) TableName() string {
	return "catalogs"
}

// DefaultCatalogItems is the starter catalog installed by the seeder.
func DefaultCatalogItems() []CatalogItem {
	values := map[string][]string{
		CatalogPropertyType: {"Apartment", "House", "Villa", "Townhouse", "Land", "Office"},
		CatalogArea:         {"Quận 1", "Quận 3", "Quận 7", "Thủ Đức", "Bình Thạnh", "Nhà Bè"},
		CatalogLeadSource:   {"Website", "Facebook", "Referral", "Walk-in", "Hotline"},
		CatalogContractType: {"Sale", "Lease", "Deposit", "Consignment"},
	}

	var items []CatalogItem
	for _, typ := range CatalogTypes() {
		for i, value := range values[typ] {
			items = append(items, CatalogItem{
				Type:         typ,
				Value:        value,
				IsActive:     true,
				DisplayOrder: i + 1,
			})
		}
	}
	return items
}
