package sdapi

import (
	"encoding/json"
	"fmt"

	"sdloop/types"
)

// rawResponse keeps track of which fields were present so a reply that is
// valid JSON but not a txt2img result is rejected.
type rawResponse struct {
	Images     *[]string       `json:"images"`
	Parameters json.RawMessage `json:"parameters"`
	Info       *string         `json:"info"`
}

func (r rawResponse) decode() (types.Txt2ImgResponse, error) {
	switch {
	case r.Images == nil:
		return types.Txt2ImgResponse{}, fmt.Errorf("%w: missing images", ErrMalformedResponse)
	case len(r.Parameters) == 0:
		return types.Txt2ImgResponse{}, fmt.Errorf("%w: missing parameters", ErrMalformedResponse)
	case r.Info == nil:
		return types.Txt2ImgResponse{}, fmt.Errorf("%w: missing info", ErrMalformedResponse)
	}

	return types.Txt2ImgResponse{
		Images:     *r.Images,
		Parameters: r.Parameters,
		Info:       *r.Info,
	}, nil
}
