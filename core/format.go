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


package core

import (
	"fmt"
	"strings"
)

// Format is a closed set of file formats the pipeline accepts.
// Dispatching on a typed variant instead of a raw string tag means adding or
// removing a supported format is a single localized change with no silent
// fallthrough.
type Format int

const (
	// FormatNone means no file format applies (pasted text).
	FormatNone Format = iota
	// FormatTXT is a plain text file.
	FormatTXT
	// FormatPDF is a PDF document.
	FormatPDF
	// FormatDOC is a legacy Microsoft Word document.
	FormatDOC
	// FormatDOCX is an OOXML Word document.
	FormatDOCX
	// FormatXLS is a legacy Microsoft Excel workbook.
	FormatXLS
	// FormatXLSX is an OOXML Excel workbook.
	FormatXLSX
)

// Formats lists every accepted file format, in tag order.
var Formats = []Format{FormatTXT, FormatPDF, FormatDOC, FormatDOCX, FormatXLS, FormatXLSX}

// ParseFormat normalizes a format tag (case-insensitive, optional leading
// dot) and maps it onto the allow-list. Returns ErrUnknownFormat for
// anything outside it.
func ParseFormat(tag string) (Format, error) {
	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "."))
	switch tag {
	case "txt":
		return FormatTXT, nil
	case "pdf":
		return FormatPDF, nil
	case "doc":
		return FormatDOC, nil
	case "docx":
		return FormatDOCX, nil
	case "xls":
		return FormatXLS, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return FormatNone, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
	}
}

// ParseMediaType maps a MIME type onto the allow-list. Parameters after a
// semicolon (charset and the like) are ignored. Returns ErrUnknownFormat
// for anything outside the list.
func ParseMediaType(mediaType string) (Format, error) {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	switch mediaType {
	case "text/plain":
		return FormatTXT, nil
	case "application/pdf":
		return FormatPDF, nil
	case "application/msword":
		return FormatDOC, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDOCX, nil
	case "application/vnd.ms-excel":
		return FormatXLS, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	default:
		return FormatNone, fmt.Errorf("%w: media type %q", ErrUnknownFormat, mediaType)
	}
}

// String returns the lowercase tag of the format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return ""
	case FormatTXT:
		return "txt"
	case FormatPDF:
		return "pdf"
	case FormatDOC:
		return "doc"
	case FormatDOCX:
		return "docx"
	case FormatXLS:
		return "xls"
	case FormatXLSX:
		return "xlsx"
	default:
		return "unknown"
	}
}
