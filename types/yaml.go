package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RequireKeys fails when a mapping node lacks one of keys or sets it to null.
// Non-mapping nodes are left for Decode to reject.
func RequireKeys(node *yaml.Node, keys ...string) error {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i+1].ShortTag() == "!!null" {
			continue
		}
		seen[node.Content[i].Value] = true
	}

	var missing []string
	for _, key := range keys {
		if !seen[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("line %d: missing field %s", node.Line, strings.Join(missing, ", "))
	}
	return nil
}

func (r *Txt2ImgRequest) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node,
		"prompt", "negative_prompt", "sampler_index", "seed", "batch_size", "steps",
		"cfg_scale", "width", "height", "restore_faces", "send_images", "save_images",
		"alwayson_scripts",
	); err != nil {
		return err
	}
	type plain Txt2ImgRequest
	return node.Decode((*plain)(r))
}

func (s *AlwaysonScripts) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "ADetailer"); err != nil {
		return err
	}
	type plain AlwaysonScripts
	return node.Decode((*plain)(s))
}

func (a *ADetailer) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "args"); err != nil {
		return err
	}
	type plain ADetailer
	return node.Decode((*plain)(a))
}

func (a *ADetailerArgs) UnmarshalYAML(node *yaml.Node) error {
	if err := RequireKeys(node, "ad_model", "ad_prompt", "ad_negative_prompt"); err != nil {
		return err
	}
	type plain ADetailerArgs
	return node.Decode((*plain)(a))
}
