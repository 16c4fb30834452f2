package services

import (
	"context"
	"strconv"

	"election-checkin/internal/adapters/persistence/models"
	"election-checkin/internal/adapters/persistence/repositories"
	"election-checkin/internal/core/domain"
)

// Export status labels
const (
	statusVoted    = "Đã bầu"
	statusNotVoted = "Chưa bầu"
)

// voterExportHeader is the column set of the roster export, in order
var voterExportHeader = []string{
	"STT",
	"Họ và Tên",
	"Số CCCD",
	"Địa chỉ",
	"Khu phố",
	"Tổ bầu cử",
	"Đơn vị bầu cử",
	"Khu vực bỏ phiếu",
	"Trạng thái",
	"Thời điểm bầu",
}

// ReportService builds roster exports. It produces ordered rows only; the
// handler decides the file format.
type ReportService struct {
	voterRepo repositories.VoterRepository
}

// NewReportService creates a new report service
func NewReportService(voterRepo repositories.VoterRepository) *ReportService {
	return &ReportService{voterRepo: voterRepo}
}

// ExportFilters narrows the exported roster slice
type ExportFilters struct {
	Area   string
	Group  string
	Status string
	Term   string
}

// ExportHeader returns the export column names in order
func (s *ReportService) ExportHeader() []string {
	return voterExportHeader
}

// ExportRows returns the filtered roster as ordered string rows, scoped to
// the caller. No pagination: an export is always the full filtered set.
func (s *ReportService) ExportRows(ctx context.Context, scope domain.Scope, filters ExportFilters) ([][]string, error) {
	voters, _, err := s.voterRepo.List(ctx, repositories.VoterQuery{
		Scope:  scope,
		Area:   filters.Area,
		Group:  filters.Group,
		Status: filters.Status,
		Term:   filters.Term,
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(voters))
	for i, v := range voters {
		rows = append(rows, exportRow(i+1, v))
	}
	return rows, nil
}

func exportRow(seq int, v *models.Voter) []string {
	status := statusNotVoted
	votedAt := ""
	if v.HasVoted {
		status = statusVoted
		if v.VotedAt != nil {
			votedAt = v.VotedAt.Format("02/01/2006 15:04:05")
		}
	}

	return []string{
		strconv.Itoa(seq),
		v.FullName,
		v.IDCard,
		v.Address,
		v.Neighborhood,
		v.VotingGroup,
		v.Constituency,
		v.VotingArea,
		status,
		votedAt,
	}
}
