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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mayberyzen/convctl/internal/tools"
)

// OfficeConverter shells out to LibreOffice for conversions that need a
// full layout engine: office documents to PDF, and PDF back to DOCX.
// soffice names its output after the input stem, so the conversion runs
// in a scratch directory and the result is moved into place afterwards.
type OfficeConverter struct {
	// Target is passed to soffice as the --convert-to filter name.
	Target Format
}

func NewOfficeConverter(target Format) *OfficeConverter {
	return &OfficeConverter{Target: target}
}

func (c *OfficeConverter) Available() bool { return tools.Soffice.Available() }

func (c *OfficeConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	scratch, err := os.MkdirTemp(filepath.Dir(outputPath), "soffice-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	err = tools.Soffice.Run(ctx,
		"--headless",
		"--convert-to", string(c.Target),
		"--outdir", scratch,
		inputPath,
	)
	if err != nil {
		return err
	}

	// soffice reports success even when the filter silently declines,
	// so check for the file it should have written.
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	produced := filepath.Join(scratch, stem+"."+string(c.Target))
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("soffice produced no %s output for %s", c.Target, filepath.Base(inputPath))
	}
	if err := os.Rename(produced, outputPath); err != nil {
		return fmt.Errorf("move soffice output: %w", err)
	}
	return nil
}
