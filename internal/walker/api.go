package walker

// Per-level payload shapes under the envelope's data field, field names
// exactly as the upstream sends them.

type libraryList struct {
	List []libraryEntry `json:"list"`
}

type libraryEntry struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	NameMerge   string `json:"nameMerge"`
	EnName      string `json:"enname"`
	EnNameMerge string `json:"ennameMerge"`
	IsValid     int    `json:"isValid"`
}

type childAreaList struct {
	List struct {
		ChildArea []areaEntry `json:"childArea"`
	} `json:"list"`
}

type areaEntry struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	EnName           string `json:"enname"`
	IsValid          int    `json:"isValid"`
	TotalCount       int    `json:"TotalCount"`
	UnavailableSpace int    `json:"UnavailableSpace"`
}

type dayList struct {
	List []dayEntry `json:"list"`
}

type dayEntry struct {
	ID        int      `json:"id"`
	Day       string   `json:"day"`
	StartTime dayStamp `json:"startTime"`
	EndTime   dayStamp `json:"endTime"`
}

// dayStamp nests the timestamp string the segment endpoint uses, e.g.
// "2026-08-23 07:00:00.000000".
type dayStamp struct {
	Date string `json:"date"`
}

type seatList struct {
	List []seatEntry `json:"list"`
}

type seatEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   int    `json:"area_type"`
	Status int    `json:"status"`
}
