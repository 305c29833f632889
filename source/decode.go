package source

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/postsaver/postsaver/pkg/content"
)

func decode(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func decodeAs[T content.Item]() func(raw map[string]any) (content.Item, error) {
	return func(raw map[string]any) (content.Item, error) {
		var item T
		if err := decode(raw, &item); err != nil {
			return nil, err
		}
		return item, nil
	}
}

var itemDecoders map[string]func(raw map[string]any) (content.Item, error)

func init() {
	itemDecoders = map[string]func(raw map[string]any) (content.Item, error){
		"image":      decodeAs[content.Image](),
		"file":       decodeAs[content.File](),
		"audio_file": decodeAs[content.Audio](),
		"ok_video":   decodeOkVideo,
		"smile":      decodeAs[content.Smile](),
		"video":      decodeAs[content.Video](),
		"text":       decodeAs[content.Text](),
		"link":       decodeAs[content.Link](),
		"list":       decodeList,
	}
}

// decodeItems decodes a list of raw items. Items of unknown type become
// content.Unknown.
func decodeItems(raw any) ([]content.Item, error) {
	entries := listOf(raw)
	items := make([]content.Item, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected an object, got %T", i, entry)
		}
		item, err := decodeItem(m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem(raw map[string]any) (content.Item, error) {
	typ, _ := raw["type"].(string)
	dec, ok := itemDecoders[typ]
	if !ok {
		return content.Unknown{Type: typ}, nil
	}
	item, err := dec(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s item: %w", typ, err)
	}
	return item, nil
}

// okVideoQualities is the preference order for player URLs, best first.
var okVideoQualities = []string{"ultra_hd", "quad_hd", "full_hd", "high", "medium", "low", "tiny", "lowest", "mobile"}

type rawOkVideo struct {
	URL        string `mapstructure:"url"`
	Title      string `mapstructure:"title"`
	VID        string `mapstructure:"vid"`
	PlayerURLs []struct {
		Type string `mapstructure:"type"`
		URL  string `mapstructure:"url"`
	} `mapstructure:"playerUrls"`
}

func decodeOkVideo(raw map[string]any) (content.Item, error) {
	var v rawOkVideo
	if err := decode(raw, &v); err != nil {
		return nil, err
	}
	url := v.URL
	if url == "" {
		byQuality := make(map[string]string, len(v.PlayerURLs))
		for _, p := range v.PlayerURLs {
			if p.URL != "" {
				byQuality[p.Type] = p.URL
			}
		}
		for _, q := range okVideoQualities {
			if u, ok := byQuality[q]; ok {
				url = u
				break
			}
		}
	}
	return content.OkVideo{URL: url, Title: v.Title, VID: v.VID}, nil
}

// A list holds groups, each either a plain item array or an object with a
// "data" array.
func decodeList(raw map[string]any) (content.Item, error) {
	var list content.List
	for i, group := range listOf(raw["items"]) {
		items, err := decodeItems(group)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		list.Items = append(list.Items, items)
	}
	return list, nil
}

// listOf accepts either an array or an object wrapping it under "data".
func listOf(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return listOf(t["data"])
	}
	return nil
}
