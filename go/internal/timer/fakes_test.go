package timer

import (
	"context"
	"fmt"

	"github.com/mcdev12/matchclock/go/internal/notify"
)

type tell struct{ login, message string }

type recordingNotifier struct {
	panels        []notify.Panel
	hides         int
	announcements []string
	tells         []tell
}

func (r *recordingNotifier) RenderPanel(_ context.Context, p notify.Panel) {
	r.panels = append(r.panels, p)
}
func (r *recordingNotifier) HidePanel(context.Context) { r.hides++ }
func (r *recordingNotifier) Announce(_ context.Context, m string) {
	r.announcements = append(r.announcements, m)
}
func (r *recordingNotifier) Tell(_ context.Context, login, m string) {
	r.tells = append(r.tells, tell{login, m})
}
func (r *recordingNotifier) ShowList(context.Context, string, string, []string) {}

func (r *recordingNotifier) lastPanel() notify.Panel {
	if len(r.panels) == 0 {
		return notify.Panel{}
	}
	return r.panels[len(r.panels)-1]
}

type countingAdvancer struct {
	calls int
	err   error
}

func (c *countingAdvancer) Advance(context.Context) error {
	c.calls++
	return c.err
}

type mapCustomTimes struct {
	values map[string]string
	err    error
}

func (m *mapCustomTimes) Get(_ context.Context, id string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[id]
	return v, ok, nil
}

func secsValue(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
