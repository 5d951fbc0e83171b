package orchestrator

import (
	"context"
	"sync"

	"github.com/mcdev12/matchclock/go/internal/notify"
)

type recordingNotifier struct {
	mu            sync.Mutex
	panels        []notify.Panel
	hides         int
	announcements []string
	tells         map[string][]string
}

func (r *recordingNotifier) RenderPanel(_ context.Context, p notify.Panel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels = append(r.panels, p)
}

func (r *recordingNotifier) HidePanel(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hides++
}

func (r *recordingNotifier) Announce(_ context.Context, m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announcements = append(r.announcements, m)
}

func (r *recordingNotifier) Tell(_ context.Context, login, m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tells == nil {
		r.tells = map[string][]string{}
	}
	r.tells[login] = append(r.tells[login], m)
}

func (r *recordingNotifier) ShowList(context.Context, string, string, []string) {}

func (r *recordingNotifier) announced() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.announcements...)
}

func (r *recordingNotifier) told(login string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tells[login]...)
}

type nopAdvancer struct{}

func (nopAdvancer) Advance(context.Context) error { return nil }

type fakeAllowlist struct {
	members   []string
	reloads   int
	reloadErr error
}

func (a *fakeAllowlist) Contains(id string) bool {
	for _, m := range a.members {
		if m == id {
			return true
		}
	}
	return false
}

func (a *fakeAllowlist) Members() []string                  { return a.members }
func (a *fakeAllowlist) Add(context.Context, string) error    { return nil }
func (a *fakeAllowlist) Remove(context.Context, string) error { return nil }

func (a *fakeAllowlist) Reload(context.Context) error {
	a.reloads++
	return a.reloadErr
}

type fakePlayers struct {
	upserts map[string]string
	err     error
}

func (p *fakePlayers) Upsert(_ context.Context, login, nickname string) (bool, error) {
	if p.err != nil {
		return false, p.err
	}
	p.upserts[login] = nickname
	return true, nil
}

type fakeMatches struct{ ids []string }

func (m *fakeMatches) SetMatch(id string) { m.ids = append(m.ids, id) }
