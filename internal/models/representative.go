package models

import (
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

// Representative is an elected official reachable at one or more phone numbers,
// looked up by the zip code it was saved under.
type Representative struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ZipCode        string     `json:"zip_code" gorm:"size:10;not null;index"`
	FirstName      string     `json:"first_name" gorm:"size:100;not null"`
	LastName       string     `json:"last_name" gorm:"size:100;not null"`
	Position       string     `json:"position" gorm:"size:100;not null"` // e.g. "Senator", "Representative"
	CustomPosition string     `json:"custom_position,omitempty" gorm:"size:100"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt      *time.Time `json:"-" gorm:"index"` // soft delete

	Phones []RepresentativePhone `json:"phone_numbers" gorm:"foreignKey:RepresentativeID"`
}

func (Representative) TableName() string {
	return "representatives"
}

// FullName joins first and last name, tolerating a missing last name.
func (r *Representative) FullName() string {
	if r.LastName == "" {
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// DisplayPosition prefers the custom position when the stored position is "Other".
func (r *Representative) DisplayPosition() string {
	if r.Position == "Other" && r.CustomPosition != "" {
		return r.CustomPosition
	}
	return r.Position
}

// SplitFullName splits a submitted name into first/last: first token is the
// first name, everything after is the last name.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// RepresentativePhone is a single contact point for a representative.
type RepresentativePhone struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	RepresentativeID uint       `json:"-" gorm:"not null;index"`
	Phone            string     `json:"phone" gorm:"size:20;not null"`
	Extension        string     `json:"extension,omitempty" gorm:"size:10"`
	PhoneType        string     `json:"phone_type" gorm:"size:50;not null;default:'Main'"` // e.g. "DC Office", "District Office"
	CreatedAt        time.Time  `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt        *time.Time `json:"-" gorm:"index"` // soft delete
}

func (RepresentativePhone) TableName() string {
	return "representative_phones"
}

// DisplayPhone renders the number with its extension for the UI.
func (p *RepresentativePhone) DisplayPhone() string {
	if p.Extension != "" {
		return p.Phone + " ext. " + p.Extension
	}
	return p.Phone
}

// PhoneLink renders the dialable form, extension separated by a pause comma.
func (p *RepresentativePhone) PhoneLink() string {
	if p.Extension != "" {
		return p.Phone + "," + p.Extension
	}
	return p.Phone
}

// SanitizePhone normalizes US numbers to "(abc) def-ghij". An 11-digit number
// with a leading 1 drops the country code. Anything else keeps its digits, or
// the raw input when it contains none.
func SanitizePhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10:
		return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
	case len(d) == 11 && d[0] == '1':
		return "(" + d[1:4] + ") " + d[4:7] + "-" + d[7:]
	case d != "":
		return d
	default:
		return phone
	}
}

// RepresentativesByZip returns non-deleted representatives for a zip code with
// their non-deleted phones preloaded.
func RepresentativesByZip(db *gorm.DB, zipCode string) ([]Representative, error) {
	var reps []Representative
	err := db.Where("zip_code = ? AND deleted_at IS NULL", zipCode).
		Preload("Phones", "deleted_at IS NULL").
		Find(&reps).Error
	return reps, err
}

// SoftDeleteRepresentative marks a representative deleted without removing
// its rows, keeping historical call logs intact.
func SoftDeleteRepresentative(db *gorm.DB, id uint) error {
	now := time.Now().UTC()
	result := db.Model(&Representative{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeletePhone marks one phone of a representative deleted.
func SoftDeletePhone(db *gorm.DB, repID, phoneID uint) error {
	now := time.Now().UTC()
	result := db.Model(&RepresentativePhone{}).
		Where("id = ? AND representative_id = ? AND deleted_at IS NULL", phoneID, repID).
		Update("deleted_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
