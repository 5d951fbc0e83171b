package notify

import "context"

// Fanout delivers every notification to each of its notifiers in order.
type Fanout []Notifier

func (f Fanout) RenderPanel(ctx context.Context, panel Panel) {
	for _, n := range f {
		n.RenderPanel(ctx, panel)
	}
}

func (f Fanout) HidePanel(ctx context.Context) {
	for _, n := range f {
		n.HidePanel(ctx)
	}
}

func (f Fanout) Announce(ctx context.Context, message string) {
	for _, n := range f {
		n.Announce(ctx, message)
	}
}

func (f Fanout) Tell(ctx context.Context, login, message string) {
	for _, n := range f {
		n.Tell(ctx, login, message)
	}
}

func (f Fanout) ShowList(ctx context.Context, login, title string, rows []string) {
	for _, n := range f {
		n.ShowList(ctx, login, title, rows)
	}
}
