package notify

import "context"

// ListPageSize is the number of rows shown per page of a list window.
const ListPageSize = 15

// Panel is what the on-screen timer panel shows.
type Panel struct {
	Text      string `json:"text"`
	Colour    string `json:"colour"`
	Paused    bool   `json:"paused"`
	Remaining int    `json:"remaining_sec"`
}

// Notifier renders the timer panel and delivers chat output. Delivery is
// best effort: implementations log their own failures.
type Notifier interface {
	RenderPanel(ctx context.Context, panel Panel)
	HidePanel(ctx context.Context)
	Announce(ctx context.Context, message string)
	Tell(ctx context.Context, login, message string)
	ShowList(ctx context.Context, login, title string, rows []string)
}

// Paginate splits rows into pages of size rows. An empty input yields one
// empty page so the window still opens.
func Paginate(rows []string, size int) [][]string {
	if size <= 0 {
		size = ListPageSize
	}
	if len(rows) == 0 {
		return [][]string{{}}
	}
	pages := make([][]string, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		pages = append(pages, rows[start:end])
	}
	return pages
}
