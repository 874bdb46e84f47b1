package history

// Trend classifies how a page's score moved between two audits.
type Trend string

const (
	// TrendImproved means the newer audit scored higher.
	TrendImproved Trend = "improved"
	// TrendWorsened means the newer audit scored lower.
	TrendWorsened Trend = "worsened"
	// TrendUnchanged means both audits scored the same.
	TrendUnchanged Trend = "unchanged"
)

// TrendOf classifies a score delta (newer minus older).
func TrendOf(delta int) Trend {
	switch {
	case delta > 0:
		return TrendImproved
	case delta < 0:
		return TrendWorsened
	default:
		return TrendUnchanged
	}
}

// Change is one stored audit compared with the audit before it.
type Change struct {
	Record

	// Delta is this record's overall score minus the previous one's.
	// Zero for the oldest record.
	Delta int `json:"delta"`

	// Trend classifies Delta.
	Trend Trend `json:"trend"`

	// MarkupChanged is true when both records carry fingerprints and
	// they differ.
	MarkupChanged bool `json:"markup_changed"`

	// First marks the oldest record, which has nothing to compare with.
	First bool `json:"first"`
}

// Changes compares each record with the next older one. records must be
// newest first, as History returns them; the result keeps that order.
func Changes(records []Record) []Change {
	changes := make([]Change, len(records))
	for i, rec := range records {
		c := Change{Record: rec, Trend: TrendUnchanged}
		if i == len(records)-1 {
			c.First = true
		} else {
			prev := records[i+1]
			c.Delta = rec.OverallScore - prev.OverallScore
			c.Trend = TrendOf(c.Delta)
			c.MarkupChanged = rec.Fingerprint != "" && prev.Fingerprint != "" &&
				rec.Fingerprint != prev.Fingerprint
		}
		changes[i] = c
	}
	return changes
}
