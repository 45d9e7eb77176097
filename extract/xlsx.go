// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxStrategy extracts text from OOXML Excel workbooks.
// Cells are joined with tabs, rows with newlines, sheets separated by the
// sheet name.
type xlsxStrategy struct{}

func (s *xlsxStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: open xlsx workbook: %v", ErrExtractionFailed, err)
	}
	defer workbook.Close()

	var result strings.Builder
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: read sheet %q: %v", ErrExtractionFailed, sheet, err)
		}

		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(sheet)
		result.WriteString("\n")

		for _, row := range rows {
			result.WriteString(strings.Join(row, "\t"))
			result.WriteString("\n")
		}
	}

	return result.String(), nil
}
