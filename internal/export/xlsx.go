// Package export writes campaign results to spreadsheet files for handoff
// to the sales team.
package export

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
)

var leadHeaders = []string{"Company", "Domain", "Why We Help", "Service Line", "Discovered"}

// WriteLeadsXLSX writes the qualified leads of one campaign run to an xlsx
// workbook at path. An empty lead list still produces a file with headers.
func WriteLeadsXLSX(path string, cat model.ServiceCategory, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Leads")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range leadHeaders {
		header.AddCell().SetString(h)
	}

	discovered := time.Now().UTC().Format("2006-01-02")
	for _, lead := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(lead.Name)
		row.AddCell().SetString(lead.Domain)
		row.AddCell().SetString(lead.WhyWeHelp)
		row.AddCell().SetString(string(cat))
		row.AddCell().SetString(discovered)
	}

	if err := f.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}

	zap.L().Info("export: leads written",
		zap.String("path", path),
		zap.Int("leads", len(leads)),
	)
	return nil
}
