package ingest

import (
	"github.com/tidwall/gjson"

	"github.com/AngelCh415/adreport-proxy/internal/models"
)

// DecodeRecords reads the upstream payload. The top level must be a JSON
// array; elements that are not objects become empty records.
func DecodeRecords(body []byte) ([]models.RawRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidPayload
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, ErrInvalidPayload
	}
	out := make([]models.RawRecord, 0)
	res.ForEach(func(_, v gjson.Result) bool {
		out = append(out, rawRecord(v))
		return true
	})
	return out, nil
}

func rawRecord(v gjson.Result) models.RawRecord {
	if !v.IsObject() {
		return models.RawRecord{}
	}
	return models.RawRecord{
		ShortDate:       scalar(v.Get("ShortDate")),
		CampaignName:    scalar(v.Get("CampaignName")),
		AdsetName:       scalar(v.Get("AdsetName")),
		StatImpressions: scalar(v.Get("statImpressions")),
		StatClicks:      scalar(v.Get("statClicks")),
		StatCost:        scalar(v.Get("statCost")),
		StatConversions: scalar(v.Get("statConversions")),
	}
}

// scalar keeps strings, numbers and booleans as text; null, objects and
// arrays read as absent.
func scalar(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return r.String()
	default:
		return ""
	}
}
