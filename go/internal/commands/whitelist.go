package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/mcdev12/matchclock/go/internal/allowlist"
	"github.com/mcdev12/matchclock/go/internal/models"
	"github.com/rs/zerolog/log"
)

func (p *Processor) whitelist(ctx context.Context, params string, caller models.Caller) error {
	if !CanManageWhitelist(p.timer.Config().WhitelistAdminLevel, caller.Privilege) {
		p.notifier.Tell(ctx, caller.Login, msgNoWhitelistAccess)
		return ErrPermissionDenied
	}

	fields := strings.Fields(params)
	sub, arg := "", ""
	if len(fields) > 0 {
		sub = strings.ToLower(fields[0])
	}
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch sub {
	case "":
		p.listWhitelist(ctx, caller)
		return nil
	case "help":
		p.notifier.ShowList(ctx, caller.Login, helpTitle, helpRows)
		return nil
	case "reload":
		if err := p.allowlist.Reload(ctx); err != nil {
			log.Error().Err(err).Msg("failed to reload allowlist")
			p.notifier.Tell(ctx, caller.Login, msgWhitelistReloadFail)
			return err
		}
		p.notifier.Tell(ctx, caller.Login, msgWhitelistReloaded)
		return nil
	case "add":
		return p.addToWhitelist(ctx, arg, caller)
	case "remove":
		return p.removeFromWhitelist(ctx, arg, caller)
	default:
		p.notifier.Tell(ctx, caller.Login, msgWhitelistUnknown)
		return ErrInvalidParameter
	}
}

func (p *Processor) listWhitelist(ctx context.Context, caller models.Caller) {
	members := p.allowlist.Members()
	rows := make([]string, 0, len(members))
	for _, login := range members {
		rows = append(rows, login+" / "+p.target(ctx, login, caller, false))
	}
	p.notifier.ShowList(ctx, caller.Login, whitelistTitle, rows)
}

func (p *Processor) addToWhitelist(ctx context.Context, login string, caller models.Caller) error {
	if login == "" {
		p.notifier.Tell(ctx, caller.Login, msgLoginMissing)
		return ErrInvalidParameter
	}

	target := p.target(ctx, login, caller, true)
	err := p.allowlist.Add(ctx, login)
	switch {
	case errors.Is(err, allowlist.ErrAlreadyPresent):
		p.notifier.Tell(ctx, caller.Login, msgAlreadyWhitelisted(target))
		return err
	case err != nil:
		log.Error().Err(err).Str("login", login).Msg("failed to add login to allowlist")
		p.notifier.Tell(ctx, caller.Login, msgWhitelistSaveFail)
		return err
	}
	p.notifier.Announce(ctx, msgWhitelistAdded(caller.DisplayName(), target))
	return nil
}

func (p *Processor) removeFromWhitelist(ctx context.Context, login string, caller models.Caller) error {
	if login == "" {
		p.notifier.Tell(ctx, caller.Login, msgLoginMissing)
		return ErrInvalidParameter
	}

	target := p.target(ctx, login, caller, false)
	err := p.allowlist.Remove(ctx, login)
	switch {
	case errors.Is(err, allowlist.ErrNotPresent):
		p.notifier.Tell(ctx, caller.Login, msgNotWhitelisted(target))
		return err
	case err != nil:
		log.Error().Err(err).Str("login", login).Msg("failed to remove login from allowlist")
		p.notifier.Tell(ctx, caller.Login, msgWhitelistSaveFail)
		return err
	}
	p.notifier.Announce(ctx, msgWhitelistRemoved(caller.DisplayName(), target))
	return nil
}

// target resolves login to a nickname for display, falling back to the
// login itself. warn tells the caller when the login is unknown.
func (p *Processor) target(ctx context.Context, login string, caller models.Caller, warn bool) string {
	if p.players == nil {
		return login
	}
	nick, ok, err := p.players.Nickname(ctx, login)
	if err != nil {
		log.Warn().Err(err).Str("login", login).Msg("failed to look up nickname")
		return login
	}
	if !ok {
		if warn {
			p.notifier.Tell(ctx, caller.Login, msgLoginUnknown)
		}
		return login
	}
	return nick
}
