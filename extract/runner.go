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
	"os"
	"os/exec"
)

// CommandRunner abstracts external conversion tool invocation so tests can
// run without the tools installed.
type CommandRunner interface {
	// Run executes the named tool against the document bytes and returns
	// the tool's stdout. Implementations substitute the document path for
	// any "{}" argument; if no argument is "{}" the path is appended.
	Run(ctx context.Context, data []byte, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (r *execRunner) Run(ctx context.Context, data []byte, name string, args ...string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "summarit-*.doc")
	if err != nil {
		return nil, fmt.Errorf("create temp document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp document: %w", err)
	}

	cmdArgs := make([]string, 0, len(args)+1)
	substituted := false
	for _, arg := range args {
		if arg == "{}" {
			cmdArgs = append(cmdArgs, tmp.Name())
			substituted = true
			continue
		}
		cmdArgs = append(cmdArgs, arg)
	}
	if !substituted {
		cmdArgs = append(cmdArgs, tmp.Name())
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, cmdArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", name, err, stderr.String())
	}

	return stdout.Bytes(), nil
}
