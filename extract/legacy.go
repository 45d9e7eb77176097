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
	"context"
	"fmt"
)

// legacyStrategy shells out to an external converter for the binary legacy
// formats (doc via antiword, xls via xls2csv) that have no maintained
// pure-Go parser.
type legacyStrategy struct {
	runner CommandRunner
	tool   string
	args   []string
}

func (s *legacyStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	out, err := s.runner.Run(ctx, data, s.tool, s.args...)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrExtractionFailed, s.tool, err)
	}
	return string(out), nil
}
