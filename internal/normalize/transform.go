package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/AngelCh415/adreport-proxy/internal/models"
)

const (
	unknownName  = "Unknown"
	cursorSuffix = "T23:59:59Z"
)

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// Transform maps a raw row onto a fully populated NormalizedRecord. It never
// fails: bad dates become a nil NormalizedDate, bad numbers become zero.
func Transform(r models.RawRecord) models.NormalizedRecord {
	campaign := coalesce(r.CampaignName, unknownName)
	adset := coalesce(r.AdsetName, unknownName)

	impressions := ParseInt(r.StatImpressions)
	clicks := ParseInt(r.StatClicks)
	cost := ParseFloat(r.StatCost)
	conversions := ParseInt(r.StatConversions)

	out := models.NormalizedRecord{
		ShortDate:       r.ShortDate,
		CampaignName:    campaign,
		AdsetName:       adset,
		StatImpressions: impressions,
		StatClicks:      clicks,
		StatCost:        cost,
		StatConversions: conversions,
		Impressions:     impressions,
		Clicks:          clicks,
		Cost:            cost,
		Conversions:     conversions,
	}

	day := r.ShortDate
	if d, ok := NormalizeDate(r.ShortDate); ok {
		s := d.String()
		out.NormalizedDate = &s
		day = s
	}
	out.RecordID = RecordID(day, campaign, adset)
	out.CursorTimestamp = day + cursorSuffix
	return out
}

// RecordID joins the parts with "_" and replaces every character outside
// [A-Za-z0-9_-] with "_".
func RecordID(parts ...string) string {
	return unsafeIDChars.ReplaceAllString(strings.Join(parts, "_"), "_")
}

// SortRecords orders records by normalized date, oldest first. Records
// without a normalized date keep their relative order at the end.
func SortRecords(recs []models.NormalizedRecord) {
	keys := make([]*Date, len(recs))
	for i := range recs {
		keys[i] = sortKey(recs[i].ShortDate)
	}
	sort.Stable(byDate{recs: recs, keys: keys})
}

type byDate struct {
	recs []models.NormalizedRecord
	keys []*Date
}

func (b byDate) Len() int { return len(b.recs) }

func (b byDate) Swap(i, j int) {
	b.recs[i], b.recs[j] = b.recs[j], b.recs[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

func (b byDate) Less(i, j int) bool {
	ki, kj := b.keys[i], b.keys[j]
	switch {
	case ki == nil:
		return false
	case kj == nil:
		return true
	default:
		return ki.Before(*kj)
	}
}

// sortKey is the same date Transform normalized, nil when it had none.
func sortKey(shortDate string) *Date {
	d, ok := NormalizeDate(shortDate)
	if !ok {
		return nil
	}
	return &d
}

func coalesce(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
