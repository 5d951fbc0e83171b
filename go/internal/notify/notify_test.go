package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	rows := make([]string, 31)
	for i := range rows {
		rows[i] = fmt.Sprintf("row%d", i)
	}

	pages := Paginate(rows, ListPageSize)

	assert.Len(t, pages, 3)
	assert.Len(t, pages[0], 15)
	assert.Len(t, pages[1], 15)
	assert.Equal(t, []string{"row30"}, pages[2])
}

func TestPaginate_EmptyYieldsOnePage(t *testing.T) {
	pages := Paginate(nil, ListPageSize)
	assert.Equal(t, [][]string{{}}, pages)
}

type countingNotifier struct{ panels, hides, announces, tells, lists int }

func (c *countingNotifier) RenderPanel(context.Context, Panel)                 { c.panels++ }
func (c *countingNotifier) HidePanel(context.Context)                          { c.hides++ }
func (c *countingNotifier) Announce(context.Context, string)                   { c.announces++ }
func (c *countingNotifier) Tell(context.Context, string, string)               { c.tells++ }
func (c *countingNotifier) ShowList(context.Context, string, string, []string) { c.lists++ }

func TestFanout_DeliversToAll(t *testing.T) {
	a, b := &countingNotifier{}, &countingNotifier{}
	f := Fanout{a, b, LogNotifier{}}
	ctx := context.Background()

	f.RenderPanel(ctx, Panel{Text: "01:00"})
	f.HidePanel(ctx)
	f.Announce(ctx, "hello")
	f.Tell(ctx, "alice", "hi")
	f.ShowList(ctx, "alice", "title", nil)

	for _, c := range []*countingNotifier{a, b} {
		assert.Equal(t, countingNotifier{1, 1, 1, 1, 1}, *c)
	}
}
