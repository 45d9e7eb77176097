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


package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"ERROR", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			set := flag.NewFlagSet("test", flag.ContinueOnError)
			set.String("log-level", tt.level, "")
			ctx := cli.NewContext(cli.NewApp(), set, nil)

			err := setupLogger(ctx)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDBFlagIsRequired(t *testing.T) {
	flags := dbFlags()
	require.Len(t, flags, 1)

	dbFlag, ok := flags[0].(*cli.StringFlag)
	require.True(t, ok)
	assert.Equal(t, "db", dbFlag.Name)
	assert.True(t, dbFlag.Required)
}

func TestAIFlagDefaults(t *testing.T) {
	var hostFlag, modelFlag *cli.StringFlag
	for _, f := range aiFlags() {
		if sf, ok := f.(*cli.StringFlag); ok {
			switch sf.Name {
			case "host":
				hostFlag = sf
			case "model":
				modelFlag = sf
			}
		}
	}

	require.NotNil(t, hostFlag)
	assert.Equal(t, "http://localhost:11434", hostFlag.Value)
	require.NotNil(t, modelFlag)
	assert.NotEmpty(t, modelFlag.Value)
}
