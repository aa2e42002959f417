package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	ClientSheet  = "Clients"
	ContactSheet = "Contacts"
)

const exportTimeFormat = "2006-01-02 15:04:05"

// ExportWorkbook writes all clients and their contacts into an XLSX
// workbook with one sheet per entity.
func (s *ClientService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	clients, err := s.store.ListClientsForExport(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot load clients for export: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("cannot close workbook", "error", cerr)
		}
	}()

	if err = f.SetSheetName("Sheet1", ClientSheet); err != nil {
		return nil, err
	}
	if _, err = f.NewSheet(ContactSheet); err != nil {
		return nil, err
	}

	if err = f.SetSheetRow(ClientSheet, "A1", &[]any{"ID", "Name", "Country", "Background", "Created"}); err != nil {
		return nil, err
	}
	if err = f.SetSheetRow(ContactSheet, "A1", &[]any{"ID", "Client ID", "Client", "Type", "Label", "Value", "Link"}); err != nil {
		return nil, err
	}

	contactRow := 2
	for i, c := range clients {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{c.ID, c.Name, c.Country, c.Background, c.CreatedAt.UTC().Format(exportTimeFormat)}
		if err = f.SetSheetRow(ClientSheet, cell, &row); err != nil {
			return nil, err
		}

		for _, ct := range c.Contacts {
			cell, err := excelize.CoordinatesToCellName(1, contactRow)
			if err != nil {
				return nil, err
			}
			row := []any{ct.ID, c.ID, c.Name, string(ct.Type), ct.Label, ct.Value, ct.Href()}
			if err = f.SetSheetRow(ContactSheet, cell, &row); err != nil {
				return nil, err
			}
			contactRow++
		}
	}

	if err = f.SetColWidth(ClientSheet, "B", "D", 30); err != nil {
		return nil, err
	}
	if err = f.SetColWidth(ContactSheet, "C", "G", 25); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}
