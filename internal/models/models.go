package models

import "time"

// RawRecord is one row of the upstream report. Every field is kept as the
// string the upstream sent (JSON numbers included); missing fields are "".
type RawRecord struct {
	ShortDate       string
	CampaignName    string
	AdsetName       string
	StatImpressions string
	StatClicks      string
	StatCost        string
	StatConversions string
}

type NormalizedRecord struct {
	ShortDate       string  `json:"shortDate"`
	CampaignName    string  `json:"campaignName"`
	AdsetName       string  `json:"adsetName"`
	StatImpressions int64   `json:"statImpressions"`
	StatClicks      int64   `json:"statClicks"`
	StatCost        float64 `json:"statCost"`
	StatConversions int64   `json:"statConversions"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Cost            float64 `json:"cost"`
	Conversions     int64   `json:"conversions"`
	NormalizedDate  *string `json:"normalizedDate"`
	RecordID        string  `json:"recordId"`
	CursorTimestamp string  `json:"cursorTimestamp"`
}

// Query is a validated report request.
type Query struct {
	AdvertiserID string
	RangeDays    int
	StartDate    *time.Time
	EndDate      *time.Time
	// raw strings echoed back in metadata
	StartRaw *string
	EndRaw   *string
}

type DateRange struct {
	Start         *string `json:"start"`
	End           *string `json:"end"`
	RequestedDays int     `json:"requested_days"`
}

type Metadata struct {
	AdvertiserID    string    `json:"advertiser_id"`
	RangeDays       int       `json:"range_days"`
	FetchedAt       string    `json:"fetched_at"`
	TotalRecords    int       `json:"total_records"`
	FilteredRecords int       `json:"filtered_records"`
	DateRange       DateRange `json:"date_range"`
}

type Report struct {
	Success  bool               `json:"success"`
	Metadata Metadata           `json:"metadata"`
	Records  []NormalizedRecord `json:"records"`
}
