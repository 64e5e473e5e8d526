// Copyright 2025 walteh LLC
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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclProfile struct {
		Name         string   `hcl:"name,label"`
		Source       string   `hcl:"source"`
		Destination  string   `hcl:"destination"`
		ExcludeFiles []string `hcl:"exclude_files,optional"`
		ExcludeDirs  []string `hcl:"exclude_dirs,optional"`
		Retries      int      `hcl:"retries,optional"`
		RetryWait    int      `hcl:"retry_wait,optional"`
		LogPath      *string  `hcl:"log_path,optional"`
	}
	type hclConfig struct {
		Profiles []hclProfile `hcl:"profile,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{Profiles: make(map[string]Profile, len(hclCfg.Profiles))}
	for _, hp := range hclCfg.Profiles {
		if _, dup := cfg.Profiles[hp.Name]; dup {
			return nil, errors.Errorf("duplicate profile %s", hp.Name)
		}
		profile := Profile{
			Source:       hp.Source,
			Destination:  hp.Destination,
			ExcludeFiles: hp.ExcludeFiles,
			ExcludeDirs:  hp.ExcludeDirs,
			Retries:      hp.Retries,
			RetryWait:    hp.RetryWait,
		}
		if hp.LogPath != nil {
			profile.LogPath = *hp.LogPath
		}
		cfg.Profiles[hp.Name] = profile
	}

	return cfg, nil
}
