package commands

import "fmt"

const (
	msgInvalidTimeLeft     = "Invalid parameter to /timeleft."
	msgNegative            = "Can't set remaining time to less than zero."
	msgNoPermission        = "You do not have permission to change the remaining time."
	msgNoWhitelistAccess   = "You do not have permission to use /whitelist command."
	msgNoRound             = "No round is in progress."
	msgTimeSetDisabled     = "/timeset command not enabled in plugin config."
	msgTimeSetUsage        = "Usage (where 120 is number of minutes): /timeset 120"
	msgTimeSetFailed       = "Custom time could not be saved, the change did not take effect."
	msgLoginMissing        = "Error: Login is not specified."
	msgLoginUnknown        = "Warning: Login not found in the database."
	msgWhitelistUnknown    = "Error: Unknown parameter. Use /whitelist help for more information."
	msgWhitelistReloaded   = "Whitelist successfully reloaded."
	msgWhitelistReloadFail = "Whitelist could not be reloaded, the change did not take effect."
	msgWhitelistSaveFail   = "Whitelist could not be saved, the change did not take effect."

	whitelistTitle = "Whitelisted players:"
	helpTitle      = "/whitelist displays a window with a list of all whitelisted players"
)

var helpRows = []string{
	"add <login>: Adds a player to the whitelist",
	"remove <login>: Removes a player from the whitelist",
	"reload: Reloads the whitelist",
	"help: Displays this help window",
	"",
	"(!) reload: Required only after making manual changes",
}

func msgOverMax(maxMinutes int) string {
	return fmt.Sprintf("Time limit over %d minutes is not allowed.", maxMinutes)
}

func msgEmergencyBlocked(minMinutes int) string {
	return fmt.Sprintf("Emergency time not added: current timer is over %d minutes.", minMinutes)
}

func msgTimeSet(nickname string, minutes int) string {
	return fmt.Sprintf("%s set future time for this track to %d minutes.", nickname, minutes)
}

func msgAlreadyWhitelisted(target string) string {
	return "Error: " + target + " is already whitelisted."
}

func msgNotWhitelisted(target string) string {
	return "Error: " + target + " is not whitelisted."
}

func msgWhitelistAdded(nickname, target string) string {
	return nickname + " added " + target + " to the whitelist"
}

func msgWhitelistRemoved(nickname, target string) string {
	return nickname + " removed " + target + " from the whitelist"
}
