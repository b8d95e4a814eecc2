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

	"github.com/Mayberyzen/convctl/internal/tools"
)

// audioTargets lists formats where ffmpeg should drop video streams.
var audioTargets = map[Format]bool{
	FormatMP3: true,
	FormatWAV: true,
}

// MediaConverter transcodes audio and video through ffmpeg, which picks
// codecs from the output extension.
type MediaConverter struct{}

func NewMediaConverter() *MediaConverter { return &MediaConverter{} }

func (c *MediaConverter) Available() bool { return tools.FFmpeg.Available() }

func (c *MediaConverter) Convert(ctx context.Context, inputPath, outputPath string) error {
	args := []string{"-y", "-i", inputPath}
	if audioTargets[FormatFromPath(outputPath)] {
		args = append(args, "-vn")
	}
	args = append(args, outputPath)
	return tools.FFmpeg.Run(ctx, args...)
}
