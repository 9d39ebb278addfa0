// Package cli implements hookctl, an operator console for the hook service.
//
// It reads commands from stdin, one per line:
//
//	ping            check the server is reachable
//	get <id>        show an active profile
//	delete <id>     soft delete a profile
//	restore <id>    restore a soft-deleted profile
//	token           print a signed caller token for other tools
//	help            list commands
//	exit | quit     leave
package cli
