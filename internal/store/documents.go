package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parishworks/reportsdb/internal/models"
	"github.com/parishworks/reportsdb/internal/report"
)

// DocumentSummary is the listing view of a report document.
type DocumentSummary struct {
	DocumentID  uint64    `json:"documentId"`
	ReportName  string    `json:"reportName"`
	OrgName     string    `json:"orgName"`
	PeriodLabel string    `json:"periodLabel"`
	Completion  float64   `json:"completion"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FullDocument is a loaded document with its rehydrated payload.
type FullDocument struct {
	DocumentSummary
	Payload report.Payload `json:"payload"`
}

// SaveDocument inserts or overwrites the document named name for the owner.
// A second save under the same name replaces org name, payload, and
// completion in place; the period label is fixed at first save. Last write
// wins between concurrent saves.
func (s *Store) SaveDocument(ctx context.Context, ownerID, name, orgName string, payload report.Payload, completion float64) (uint64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: report name is required", ErrValidation)
	}
	if err := payload.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var id uint64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.ReportDocument
		err := tx.Where("account_id = ? AND report_name = ? AND archived = ?", ownerID, name, false).
			First(&doc).Error

		switch {
		case err == nil:
			updates := map[string]interface{}{
				"org_name":   orgName,
				"payload":    raw,
				"completion": completion,
			}
			if err := tx.Model(&doc).Updates(updates).Error; err != nil {
				return storageErr(err)
			}
			id = doc.DocumentID
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			doc = models.ReportDocument{
				AccountID:   ownerID,
				ReportName:  name,
				OrgName:     orgName,
				PeriodLabel: periodLabel(time.Now()),
				Completion:  completion,
			}
			doc.Payload.JSON = raw
			if err := tx.Create(&doc).Error; err != nil {
				return storageErr(err)
			}
			id = doc.DocumentID
			return nil

		default:
			return storageErr(err)
		}
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListDocuments returns the owner's live documents, most recently updated
// first.
func (s *Store) ListDocuments(ctx context.Context, ownerID string) ([]DocumentSummary, error) {
	var docs []models.ReportDocument
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND archived = ?", ownerID, false).
		Order("updated_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, storageErr(err)
	}

	summaries := make([]DocumentSummary, len(docs))
	for i, doc := range docs {
		summaries[i] = summarize(doc)
	}
	return summaries, nil
}

// LoadDocument returns the document only when it exists, is not archived,
// and belongs to ownerID. Anything else is ErrNotFound; ownership is
// enforced, not advisory.
func (s *Store) LoadDocument(ctx context.Context, documentID uint64, ownerID string) (*FullDocument, error) {
	var doc models.ReportDocument
	err := s.db.WithContext(ctx).
		Where("document_id = ? AND account_id = ? AND archived = ?", documentID, ownerID, false).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(err)
	}

	var payload report.Payload
	if len(doc.Payload.JSON) > 0 {
		if err := json.Unmarshal(doc.Payload.JSON, &payload); err != nil {
			return nil, storageErr(err)
		}
	}

	return &FullDocument{
		DocumentSummary: summarize(doc),
		Payload:         payload,
	}, nil
}

// DeleteDocument archives a live document owned by ownerID. A second call
// for the same id reports ErrNotFound.
func (s *Store) DeleteDocument(ctx context.Context, documentID uint64, ownerID string) error {
	result := s.db.WithContext(ctx).
		Model(&models.ReportDocument{}).
		Where("document_id = ? AND account_id = ? AND archived = ?", documentID, ownerID, false).
		Update("archived", true)
	if result.Error != nil {
		return storageErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func summarize(doc models.ReportDocument) DocumentSummary {
	return DocumentSummary{
		DocumentID:  doc.DocumentID,
		ReportName:  doc.ReportName,
		OrgName:     doc.OrgName,
		PeriodLabel: doc.PeriodLabel,
		Completion:  doc.Completion,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
