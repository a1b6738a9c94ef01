package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/parishworks/reportsdb/data"
	"github.com/parishworks/reportsdb/internal/models"
	"github.com/parishworks/reportsdb/internal/report"
)

// TemplateSummary is the listing view of a starter template.
type TemplateSummary struct {
	TemplateID  uint64    `json:"templateId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// templateFile is the embedded seed file shape.
type templateFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Payload     report.Payload `json:"payload"`
}

// SeedTemplates inserts the embedded starter templates that are not
// already present, matching by name. Safe to run on every boot.
func (s *Store) SeedTemplates(ctx context.Context) error {
	files, err := data.Templates()
	if err != nil {
		return storageErr(err)
	}

	seeded := 0
	for _, raw := range files {
		var tf templateFile
		if err := json.Unmarshal(raw, &tf); err != nil {
			return fmt.Errorf("%w: bad seed template: %v", ErrValidation, err)
		}
		if err := tf.Payload.Validate(); err != nil {
			return fmt.Errorf("%w: seed template %q: %v", ErrValidation, tf.Name, err)
		}

		payload, err := json.Marshal(tf.Payload)
		if err != nil {
			return fmt.Errorf("%w: seed template %q: %v", ErrValidation, tf.Name, err)
		}

		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Template{}).
			Where("name = ?", tf.Name).Count(&count).Error; err != nil {
			return storageErr(err)
		}
		if count > 0 {
			continue
		}

		tpl := models.Template{
			Name:        tf.Name,
			Description: tf.Description,
			Shared:      true,
		}
		tpl.Payload.JSON = payload
		if err := s.db.WithContext(ctx).Create(&tpl).Error; err != nil {
			return storageErr(err)
		}
		seeded++
	}

	if seeded > 0 {
		log.Printf("Seeded %d report templates", seeded)
	}
	return nil
}

// ListTemplates returns all shared templates.
func (s *Store) ListTemplates(ctx context.Context) ([]TemplateSummary, error) {
	var tpls []models.Template
	err := s.db.WithContext(ctx).
		Where("shared = ?", true).
		Order("template_id").
		Find(&tpls).Error
	if err != nil {
		return nil, storageErr(err)
	}

	summaries := make([]TemplateSummary, len(tpls))
	for i, tpl := range tpls {
		summaries[i] = TemplateSummary{
			TemplateID:  tpl.TemplateID,
			Name:        tpl.Name,
			Description: tpl.Description,
			CreatedAt:   tpl.CreatedAt,
		}
	}
	return summaries, nil
}

// LoadTemplate returns a template's starter payload, or ErrNotFound.
func (s *Store) LoadTemplate(ctx context.Context, templateID uint64) (report.Payload, error) {
	var tpl models.Template
	err := s.db.WithContext(ctx).
		Where("template_id = ? AND shared = ?", templateID, true).
		First(&tpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}

	var payload report.Payload
	if err := json.Unmarshal(tpl.Payload.JSON, &payload); err != nil {
		return nil, storageErr(err)
	}
	return payload, nil
}
