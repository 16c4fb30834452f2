package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"

	"github.com/google/uuid"
)

// Placeholders used for blank import cells, matching the roster files the
// precinct offices actually produce.
const (
	placeholderName  = "Không rõ"
	placeholderBlank = "-"
)

// columnAliases maps each voter field to the spreadsheet headers it may
// arrive under. Per row, the first alias with a non-blank value wins.
var columnAliases = map[string][]string{
	"full_name":    {"Họ tên", "Họ và tên", "Name"},
	"id_card":      {"CCCD", "Số CCCD", "ID"},
	"address":      {"Địa chỉ", "Địa chỉ nhà", "Address"},
	"neighborhood": {"Khu phố", "Thôn", "Phường"},
	"constituency": {"Đơn vị bầu cử", "Đơn vị"},
	"voting_group": {"Tổ bầu cử", "Tổ"},
	"voting_area":  {"Khu vực bỏ phiếu", "Khu vực"},
}

// Rejection reasons reported per row
const (
	RejectMissingIdentity   = "missing_identity"
	RejectDuplicateIdentity = "duplicate_identity"
)

// RejectedRow is one import row that was not accepted
type RejectedRow struct {
	Row    map[string]string `json:"row"`
	Reason string            `json:"reason"`
}

// ImportResult partitions an import batch. Rejections are data, not errors:
// a batch with bad rows still imports the good ones.
type ImportResult struct {
	Accepted []*models.Voter `json:"accepted"`
	Rejected []RejectedRow   `json:"rejected"`
}

// ImportService merges spreadsheet rows into the roster
type ImportService struct {
	voterRepo repositories.VoterRepository
}

// NewImportService creates a new import service
func NewImportService(voterRepo repositories.VoterRepository) *ImportService {
	return &ImportService{voterRepo: voterRepo}
}

// ImportRows maps, validates and inserts a batch of roster rows. An ID card
// number already seen — in this batch or in the store — rejects the row;
// the first occurrence wins. Unknown columns are ignored.
func (s *ImportService) ImportRows(ctx context.Context, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{
		Accepted: []*models.Voter{},
		Rejected: []RejectedRow{},
	}
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		idCard := strings.TrimSpace(pickColumn(row, "id_card"))
		if idCard == "" {
			result.Rejected = append(result.Rejected, RejectedRow{Row: row, Reason: RejectMissingIdentity})
			continue
		}

		if seen[idCard] {
			result.Rejected = append(result.Rejected, RejectedRow{Row: row, Reason: RejectDuplicateIdentity})
			continue
		}

		exists, err := s.voterRepo.ExistsByIDCard(ctx, idCard)
		if err != nil {
			return nil, err
		}
		if exists {
			seen[idCard] = true
			result.Rejected = append(result.Rejected, RejectedRow{Row: row, Reason: RejectDuplicateIdentity})
			continue
		}

		voter := &models.Voter{
			ID:           uuid.New().String(),
			FullName:     pickColumnOr(row, "full_name", placeholderName),
			IDCard:       idCard,
			Address:      pickColumnOr(row, "address", placeholderBlank),
			Neighborhood: pickColumnOr(row, "neighborhood", placeholderBlank),
			Constituency: pickColumnOr(row, "constituency", placeholderBlank),
			VotingGroup:  pickColumnOr(row, "voting_group", placeholderBlank),
			VotingArea:   pickColumnOr(row, "voting_area", placeholderBlank),
		}

		// The unique index is the backstop against a concurrent import
		// inserting the same number between the check and this insert.
		if err := s.voterRepo.Create(ctx, voter); err != nil {
			if errors.Is(err, domain.ErrDuplicateIdentity) {
				seen[idCard] = true
				result.Rejected = append(result.Rejected, RejectedRow{Row: row, Reason: RejectDuplicateIdentity})
				continue
			}
			return nil, err
		}

		seen[idCard] = true
		result.Accepted = append(result.Accepted, voter)
	}

	log.Printf("✅ Import finished: %d accepted, %d rejected", len(result.Accepted), len(result.Rejected))
	return result, nil
}

// pickColumn returns the first non-blank value among the field's aliases
func pickColumn(row map[string]string, field string) string {
	for _, alias := range columnAliases[field] {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}
	return ""
}

// pickColumnOr returns the alias value or a placeholder when blank
func pickColumnOr(row map[string]string, field, placeholder string) string {
	if v := pickColumn(row, field); v != "" {
		return v
	}
	return placeholder
}
