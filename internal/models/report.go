package models

import "time"

// ReportDocument is one saved snapshot of annual-report form data for a
// reporting cycle. (account_id, report_name) is unique among live rows;
// deletes only flip Archived.
type ReportDocument struct {
	DocumentID  uint64    `gorm:"primaryKey;autoIncrement"`
	AccountID   string    `gorm:"type:char(36);not null;index:idx_account_report"`
	ReportName  string    `gorm:"size:255;not null;index:idx_account_report"`
	OrgName     string    `gorm:"size:255"`
	PeriodLabel string    `gorm:"size:32"`
	Completion  float64   `gorm:"not null;default:0"`
	Payload     JSON      `gorm:"type:json"`
	Archived    bool      `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Template is a shared starter payload used to pre-populate a new
// document's tabular sections. Seeded once, read-only afterwards.
type Template struct {
	TemplateID  uint64    `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:1024"`
	Payload     JSON      `gorm:"type:json"`
	CreatorID   *string   `gorm:"type:char(36)"`
	Shared      bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

// TableName overrides the table name for ReportDocument
func (ReportDocument) TableName() string {
	return "report_documents"
}

// TableName overrides the table name for Template
func (Template) TableName() string {
	return "report_templates"
}
