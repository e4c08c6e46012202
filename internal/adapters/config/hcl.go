package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/tend/internal/core/domain"
)

// decodeHCL parses an HCL taskfile. Expressions may reference env.<NAME> and root.
func decodeHCL(path, root string, data []byte) (*Taskfile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, domain.WithKind(domain.ErrConfigParseFailed, diags, "path", path)
	}

	var tf Taskfile
	if diags := gohcl.DecodeBody(file.Body, evalContext(root), &tf); diags.HasErrors() {
		return nil, domain.WithKind(domain.ErrConfigParseFailed, diags, "path", path)
	}

	tf.Tasks = make(map[string]TaskDTO, len(tf.TaskBlocks))
	for _, dto := range tf.TaskBlocks {
		if _, exists := tf.Tasks[dto.Name]; exists {
			return nil, domain.Annotate(domain.ErrDuplicateTaskName, "task", dto.Name, "path", path)
		}
		tf.Tasks[dto.Name] = dto
	}
	tf.TaskBlocks = nil
	return &tf, nil
}

func evalContext(root string) *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env":  cty.ObjectVal(env),
			"root": cty.StringVal(root),
		},
	}
}
