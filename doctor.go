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

// Doctor probes every external tool the engine can delegate to and
// reports where each was found, its version, and an install hint for
// the missing ones.
func (e *Engine) Doctor(ctx context.Context) []tools.Status {
	all := tools.All()
	statuses := make([]tools.Status, 0, len(all))
	for _, t := range all {
		statuses = append(statuses, t.Inspect(ctx))
	}
	return statuses
}
