package netsuite

// RecordPage is one page of a record collection response.
type RecordPage struct {
	Items        []map[string]any
	Count        int
	HasMore      bool
	TotalResults int
}

// RecordPage extracts a record listing from the probe's JSON body. The
// SuiteTalk host returns records under "items"; the legacy restlets host
// returns them under "records". Returns false when the body holds neither.
func (p *Probe) RecordPage() (*RecordPage, bool) {
	if p.JSON == nil {
		return nil, false
	}

	raw, ok := p.JSON["items"]
	if !ok {
		raw, ok = p.JSON["records"]
	}
	if !ok {
		return nil, false
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, false
	}

	page := &RecordPage{
		Count:        len(list),
		HasMore:      asBool(p.JSON["hasMore"]),
		TotalResults: asInt(p.JSON["totalResults"]),
	}
	for _, entry := range list {
		if record, ok := entry.(map[string]any); ok {
			page.Items = append(page.Items, record)
		}
	}
	return page, true
}

// FirstCompanyName returns the companyName field of the first record, or
// "N/A" when absent. Customer listings are the smoke test of choice.
func (page *RecordPage) FirstCompanyName() string {
	if len(page.Items) == 0 {
		return "N/A"
	}
	if name, ok := page.Items[0]["companyName"].(string); ok && name != "" {
		return name
	}
	return "N/A"
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) int {
	// encoding/json decodes numbers into float64 for map[string]any.
	f, _ := v.(float64)
	return int(f)
}
