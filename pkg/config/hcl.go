// Copyright 2025 refx authors
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

	"github.com/refx-sh/refx/pkg/store"
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
	type hclSettings struct {
		FindText             string `hcl:"find_text,optional"`
		ReplaceText          string `hcl:"replace_text,optional"`
		UseRegex             bool   `hcl:"use_regex,optional"`
		SelectionOnly        bool   `hcl:"selection_only,optional"`
		CaseInsensitive      bool   `hcl:"case_insensitive,optional"`
		ExpandLineBreak      bool   `hcl:"expand_line_break,optional"`
		ExpandTab            bool   `hcl:"expand_tab,optional"`
		PrefillFromSelection bool   `hcl:"prefill_from_selection,optional"`
	}
	type hclExpression struct {
		Name    string `hcl:"name,label"`
		Pattern string `hcl:"pattern"`
		Flags   string `hcl:"flags,optional"`
		Replace string `hcl:"replace,optional"`
	}
	type hclGroup struct {
		Name  string   `hcl:"name,label"`
		Items []string `hcl:"items"`
	}
	type hclLibrary struct {
		Repo           string   `hcl:"repo,label"`
		Provider       string   `hcl:"provider,optional"`
		Ref            string   `hcl:"ref,optional"`
		Path           string   `hcl:"path"`
		IgnorePatterns []string `hcl:"ignore_patterns,optional"`
	}
	type hclConfig struct {
		Settings    *hclSettings    `hcl:"settings,block"`
		Expressions []hclExpression `hcl:"expression,block"`
		Groups      []hclGroup      `hcl:"group,block"`
		Libraries   []hclLibrary    `hcl:"library,block"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{}

	if hclCfg.Settings != nil {
		cfg.Settings = Settings{
			FindText:             hclCfg.Settings.FindText,
			ReplaceText:          hclCfg.Settings.ReplaceText,
			UseRegex:             hclCfg.Settings.UseRegex,
			SelectionOnly:        hclCfg.Settings.SelectionOnly,
			CaseInsensitive:      hclCfg.Settings.CaseInsensitive,
			ExpandLineBreak:      hclCfg.Settings.ExpandLineBreak,
			ExpandTab:            hclCfg.Settings.ExpandTab,
			PrefillFromSelection: hclCfg.Settings.PrefillFromSelection,
		}
	}

	for _, e := range hclCfg.Expressions {
		cfg.Expressions = append(cfg.Expressions, store.Expression{
			Name:    e.Name,
			Pattern: e.Pattern,
			Flags:   e.Flags,
			Replace: e.Replace,
		})
	}

	for _, g := range hclCfg.Groups {
		cfg.Groups = append(cfg.Groups, store.Group{
			Name:  g.Name,
			Items: g.Items,
		})
	}

	for _, l := range hclCfg.Libraries {
		cfg.Libraries = append(cfg.Libraries, Library{
			Provider:       l.Provider,
			Repo:           l.Repo,
			Ref:            l.Ref,
			Path:           l.Path,
			IgnorePatterns: l.IgnorePatterns,
		})
	}

	return cfg, nil
}
