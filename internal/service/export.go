package service

import (
	"fmt"
	"io"

	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
)

// ExportFormat selects the member export rendering.
type ExportFormat string

const (
	// FormatCSV is the spreadsheet export.
	FormatCSV ExportFormat = "csv"
	// FormatText is the plain-text report export.
	FormatText ExportFormat = "txt"
)

// ExportFilename builds the timestamped download name for a member export.
func (s *MemberService) ExportFilename(format ExportFormat) string {
	return fmt.Sprintf("membros_base_ti_%d.%s", s.now().UnixMilli(), format)
}

// ExportCSV writes the member list as CSV. The layout is fixed: a
// pt-BR header row and one row per member with the name wrapped in quotes.
func (s *MemberService) ExportCSV(w io.Writer) error {
	members := s.state.Members()
	if len(members) == 0 {
		s.bus.Notify(events.LevelError, "Nenhum membro para exportar.")
		return domainerrors.NotFound("Nenhum membro para exportar.")
	}

	if _, err := io.WriteString(w, "ID,Nome,Email,Data de Adesão\n"); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range members {
		if _, err := fmt.Fprintf(w, "%s,\"%s\",%s,%s\n", m.ID, m.Name, m.Email, m.JoinedAt); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	return nil
}

// ExportText writes the member list as a plain-text report.
func (s *MemberService) ExportText(w io.Writer) error {
	members := s.state.Members()
	if len(members) == 0 {
		s.bus.Notify(events.LevelError, "Nenhum membro para exportar.")
		return domainerrors.NotFound("Nenhum membro para exportar.")
	}

	if _, err := io.WriteString(w, "RELATÓRIO DE MEMBROS - BASE TI OSINT\n====================================\n\n"); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, m := range members {
		if _, err := fmt.Fprintf(w, "Membro: %s\nEmail: %s\nDesde: %s\n--------------------\n",
			m.Name, m.Email, m.JoinedAt); err != nil {
			return fmt.Errorf("write report entry: %w", err)
		}
	}
	return nil
}
