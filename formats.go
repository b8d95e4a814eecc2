// Copyright 2026 Mayberyzen
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package convctl

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format identifies a file type handled by the conversion graph. Values are
// canonical lowercase extensions without the leading dot; alternate
// spellings (jpeg, htm, tiff) normalize onto one canonical value so the
// graph never holds two nodes for the same type.
type Format string

// Formats the builtin converter set knows about.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
	FormatODT  Format = "odt"
	FormatPPTX Format = "pptx"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
	FormatMD   Format = "md"
	FormatHTML Format = "html"
	FormatRSS  Format = "rss"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatWEBP Format = "webp"
	FormatTIF  Format = "tif"
	FormatMP4  Format = "mp4"
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
)

// formatAliases maps alternate spellings onto canonical formats.
var formatAliases = map[string]Format{
	"jpeg":     FormatJPG,
	"jpe":      FormatJPG,
	"htm":      FormatHTML,
	"xhtml":    FormatHTML,
	"tiff":     FormatTIF,
	"markdown": FormatMD,
	"mkd":      FormatMD,
	"text":     FormatTXT,
	"log":      FormatTXT,
	"atom":     FormatRSS,
	"xml":      FormatRSS,
}

func (f Format) String() string { return string(f) }

// ParseFormat normalizes a user-supplied format name or file extension.
// A leading dot and letter case are ignored; aliases collapse onto their
// canonical format. Unknown names pass through lowercased so callers get
// a precise UnsupportedFormatError later instead of an empty value.
func ParseFormat(s string) Format {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, ".")
	if f, ok := formatAliases[s]; ok {
		return f
	}
	return Format(s)
}

// FormatFromPath derives the format from the file extension of path.
// Returns the empty Format when the path has no extension.
func FormatFromPath(path string) Format {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return ParseFormat(ext)
}

// DetectFormat identifies the format of an existing file by content
// sniffing, falling back to the extension when detection is inconclusive.
func DetectFormat(path string) Format {
	mtype, err := mimetype.DetectFile(path)
	if err == nil && mtype.String() != "application/octet-stream" {
		if ext := mtype.Extension(); ext != "" {
			return ParseFormat(ext)
		}
	}
	return FormatFromPath(path)
}
