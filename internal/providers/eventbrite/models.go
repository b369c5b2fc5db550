package eventbrite

type SearchAPIResponse struct {
	Pagination struct {
		ObjectCount  int  `json:"object_count"`
		PageNumber   int  `json:"page_number"`
		PageSize     int  `json:"page_size"`
		PageCount    int  `json:"page_count"`
		HasMoreItems bool `json:"has_more_items"`
	} `json:"pagination"`
	Events []Event `json:"events"`
}

type Event struct {
	ID      string        `json:"id"`
	Name    MultipartText `json:"name"`
	Summary string        `json:"summary"`
	URL     string        `json:"url"`
	Start   DateTimeTZ    `json:"start"`
	End     DateTimeTZ    `json:"end"`
	IsFree  bool          `json:"is_free"`
}

type MultipartText struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

// DateTimeTZ carries both the wall-clock time at the venue ("2019-01-15T19:00:00")
// and the UTC instant.
type DateTimeTZ struct {
	Timezone string `json:"timezone"`
	Local    string `json:"local"`
	UTC      string `json:"utc"`
}
