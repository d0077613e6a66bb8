package timesheet

import "context"

type TimesheetService interface {
	// Entries
	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	GetEntry(ctx context.Context, id string) (EntryResponse, error)
	ListEntries(ctx context.Context, req ListEntriesRequest) (ListEntriesResponse, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (EntryResponse, error)
	DeleteEntry(ctx context.Context, id string) error

	// Lifecycle
	SubmitEntry(ctx context.Context, id string) (EntryResponse, error)
	ApproveEntry(ctx context.Context, id string) (EntryResponse, error)
	RejectEntry(ctx context.Context, req RejectEntryRequest) (EntryResponse, error)

	// Weekly
	GetWeeklyView(ctx context.Context, req WeekRequest) (WeeklyViewResponse, error)
	SaveWeek(ctx context.Context, req SaveWeekRequest) (WeeklyViewResponse, error)
	SubmitWeek(ctx context.Context, req WeekRequest) (WeeklyViewResponse, error)

	PreviewSplit(ctx context.Context, req SplitRequest) (SplitResponse, error)
}
