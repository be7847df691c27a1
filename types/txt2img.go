package types

import "encoding/json"

// Txt2ImgRequest is one job, sent as-is to the txt2img endpoint. The yaml and
// json names are identical so config entries map one to one onto the body.
type Txt2ImgRequest struct {
	Prompt          string          `json:"prompt" yaml:"prompt"`
	NegativePrompt  string          `json:"negative_prompt" yaml:"negative_prompt"`
	SamplerIndex    string          `json:"sampler_index" yaml:"sampler_index"`
	Seed            int32           `json:"seed" yaml:"seed"`
	BatchSize       uint32          `json:"batch_size" yaml:"batch_size"`
	Steps           uint32          `json:"steps" yaml:"steps"`
	CfgScale        float64         `json:"cfg_scale" yaml:"cfg_scale"`
	Width           uint32          `json:"width" yaml:"width"`
	Height          uint32          `json:"height" yaml:"height"`
	RestoreFaces    bool            `json:"restore_faces" yaml:"restore_faces"`
	SendImages      bool            `json:"send_images" yaml:"send_images"`
	SaveImages      bool            `json:"save_images" yaml:"save_images"`
	AlwaysonScripts AlwaysonScripts `json:"alwayson_scripts" yaml:"alwayson_scripts"`
}

type AlwaysonScripts struct {
	ADetailer ADetailer `json:"ADetailer" yaml:"ADetailer"`
}

type ADetailer struct {
	Args []ADetailerArgs `json:"args" yaml:"args"`
}

// ADetailerArgs selects the detail-refinement model and its own prompt pair.
type ADetailerArgs struct {
	AdModel          string `json:"ad_model" yaml:"ad_model"`
	AdPrompt         string `json:"ad_prompt" yaml:"ad_prompt"`
	AdNegativePrompt string `json:"ad_negative_prompt" yaml:"ad_negative_prompt"`
}

// Txt2ImgResponse is the decoded txt2img reply. Parameters and Info are
// passed through untouched.
type Txt2ImgResponse struct {
	Images     []string        `json:"images"`
	Parameters json.RawMessage `json:"parameters"`
	Info       string          `json:"info"`
}
