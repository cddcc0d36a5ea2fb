package extraction

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractFromExcel flattens every sheet into tab-separated rows under a
// sheet header, mirroring how the documents read in a text context.
func extractFromExcel(data []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		sb.WriteString("\n--- Sheet: " + sheet + " ---\n")
		for _, row := range rows {
			line := strings.Join(row, "\t")
			if strings.TrimSpace(line) != "" {
				sb.WriteString(line + "\n")
			}
		}
	}

	return strings.TrimSpace(sb.String())
}
