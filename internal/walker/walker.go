package walker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"seat-status-probe/internal/client"
	"seat-status-probe/internal/model"
)

// isValidFlag marks entries the upstream considers live. Everything else is
// dropped before it reaches the model.
const isValidFlag = 1

// CardinalityError reports a (section, date) pair that did not resolve to
// exactly one day segment.
type CardinalityError struct {
	SectionID int
	Date      string
	Matches   int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("section %d: expected exactly 1 day segment for %s, got %d",
		e.SectionID, e.Date, e.Matches)
}

// Walker traverses the library area hierarchy one level per call. Every call
// re-fetches from the API and rebuilds its result; nothing is cached between
// calls.
type Walker struct {
	client  *client.Client
	baseURL string
	now     func() time.Time
}

// New builds a Walker on top of a logged-in client. baseURL is the tunnel's
// API prefix (up to and including /api.php).
func New(c *client.Client, baseURL string) *Walker {
	return &Walker{
		client:  c,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Libraries fetches the top-level area tree, keeping only valid entries.
func (w *Walker) Libraries(ctx context.Context) ([]model.Library, error) {
	data, err := w.client.Fetch(ctx, w.baseURL+"/areas/1/tree/1", nil)
	if err != nil {
		return nil, err
	}

	var payload libraryList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode library list: %w", err)
	}

	libraries := make([]model.Library, 0, len(payload.List))
	for _, entry := range payload.List {
		if entry.IsValid != isValidFlag {
			continue
		}
		libraries = append(libraries, model.Library{
			ID:              entry.ID,
			Name:            entry.Name,
			NameMerged:      entry.NameMerge,
			LocalName:       entry.EnName,
			LocalNameMerged: entry.EnNameMerge,
		})
	}
	return libraries, nil
}

// Floors fetches a library's child areas, keeping only valid entries.
func (w *Walker) Floors(ctx context.Context, library model.Library) ([]model.Floor, error) {
	data, err := w.client.Fetch(ctx, fmt.Sprintf("%s/areas/%d", w.baseURL, library.ID), nil)
	if err != nil {
		return nil, err
	}

	var payload childAreaList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode floor list: %w", err)
	}

	floors := make([]model.Floor, 0, len(payload.List.ChildArea))
	for _, entry := range payload.List.ChildArea {
		if entry.IsValid != isValidFlag {
			continue
		}
		floors = append(floors, model.Floor{
			ID:        entry.ID,
			Name:      entry.Name,
			LocalName: entry.EnName,
			Parent:    library.ID,
		})
	}
	return floors, nil
}

// Sections fetches a floor's child areas for the requested day, keeping only
// valid entries, deriving availability, and sorting ascending by ID so
// callers get a stable, reproducible order.
func (w *Walker) Sections(ctx context.Context, floor model.Floor, day model.Day) ([]model.Section, error) {
	date := ResolveDate(day, w.now())
	data, err := w.client.Fetch(ctx, fmt.Sprintf("%s/areas/%d/date/%s", w.baseURL, floor.ID, date), nil)
	if err != nil {
		return nil, err
	}

	var payload childAreaList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode section list: %w", err)
	}

	sections := make([]model.Section, 0, len(payload.List.ChildArea))
	for _, entry := range payload.List.ChildArea {
		if entry.IsValid != isValidFlag {
			continue
		}
		sections = append(sections, model.Section{
			ID:        entry.ID,
			Name:      entry.Name,
			LocalName: entry.EnName,
			Total:     entry.TotalCount,
			Available: entry.TotalCount - entry.UnavailableSpace,
			Parent:    floor.ID,
		})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].ID < sections[j].ID })
	return sections, nil
}

// Day resolves the single reservable time window a section has on the
// requested day. Zero or multiple matches violate the API's
// one-segment-per-date contract and abort the run.
func (w *Walker) Day(ctx context.Context, section model.Section, day model.Day) (model.DaySegment, error) {
	date := ResolveDate(day, w.now())
	data, err := w.client.Fetch(ctx, fmt.Sprintf("%s/areadays/%d", w.baseURL, section.ID), nil)
	if err != nil {
		return model.DaySegment{}, err
	}

	var payload dayList
	if err := json.Unmarshal(data, &payload); err != nil {
		return model.DaySegment{}, fmt.Errorf("failed to decode day segment list: %w", err)
	}

	var matches []model.DaySegment
	for _, entry := range payload.List {
		if entry.Day != date {
			continue
		}
		matches = append(matches, model.DaySegment{
			ID:        entry.ID,
			Date:      entry.Day,
			OpenTime:  clockOf(entry.StartTime.Date),
			CloseTime: clockOf(entry.EndTime.Date),
			Day:       day,
		})
	}
	if len(matches) != 1 {
		return model.DaySegment{}, &CardinalityError{
			SectionID: section.ID,
			Date:      date,
			Matches:   len(matches),
		}
	}
	return matches[0], nil
}

// Seats fetches the seats of a section within its resolved day segment. For
// a today segment the window starts at the current wall clock truncated to
// minutes, since only remaining availability matters; for tomorrow it starts
// at the segment's own opening time. No validity filter applies here: every
// returned seat is kept.
func (w *Walker) Seats(ctx context.Context, section model.Section, segment model.DaySegment) ([]model.Seat, error) {
	startTime := segment.OpenTime
	if segment.Day == model.Today {
		startTime = w.now().Format("15:04")
	}

	params := url.Values{}
	params.Set("area", strconv.Itoa(section.ID))
	params.Set("segment", strconv.Itoa(segment.ID))
	params.Set("day", segment.Date)
	params.Set("startTime", startTime)
	params.Set("endTime", segment.CloseTime)

	data, err := w.client.Fetch(ctx, w.baseURL+"/spaces_old/", params)
	if err != nil {
		return nil, err
	}

	var payload seatList
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode seat list: %w", err)
	}

	seats := make([]model.Seat, 0, len(payload.List))
	for _, entry := range payload.List {
		seats = append(seats, model.Seat{
			ID:     entry.ID,
			Name:   entry.Name,
			Type:   entry.Type,
			Status: model.SeatStatus(entry.Status),
			Parent: section.ID,
		})
	}
	return seats, nil
}

// clockOf cuts HH:MM out of the segment endpoint's timestamp strings.
func clockOf(stamp string) string {
	if len(stamp) < 16 {
		return ""
	}
	return stamp[11:16]
}
