// Package paths lays out dump files under a dump root:
//
//	<root>/blocktimes.json
//	<root>/dumps/w-<wallet>/names.json
//	<root>/dumps/w-<wallet>/coins.json          (default account)
//	<root>/dumps/w-<wallet>/coins-<account>.json
package paths

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultAccount selects the wallet's default account in account arguments.
const DefaultAccount = "-1"

// DumpDir returns the directory holding every dump for one wallet.
func DumpDir(root, id string) string {
	return filepath.Join(root, "dumps", "w-"+id)
}

// NamesDumpFile returns the names dump path for a wallet.
func NamesDumpFile(root, id string) string {
	return filepath.Join(DumpDir(root, id), "names.json")
}

// CoinsDumpFile returns the coins dump path for a wallet account. An empty
// account or DefaultAccount maps to coins.json.
func CoinsDumpFile(root, id, account string) string {
	return filepath.Join(DumpDir(root, id), accountFile("coins", account))
}

// BlockTimesFile returns the block time table path.
func BlockTimesFile(root string) string {
	return filepath.Join(root, "blocktimes.json")
}

func accountFile(base, account string) string {
	if IsDefaultAccount(account) {
		return base + ".json"
	}
	return fmt.Sprintf("%s-%s.json", base, account)
}

// IsDefaultAccount reports whether account names the default account.
func IsDefaultAccount(account string) bool {
	return account == "" || account == DefaultAccount
}

// ValidateID rejects wallet ids and account names that would escape the dump
// directory.
func ValidateID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s is empty", kind)
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return fmt.Errorf("%s %q is not a valid file name", kind, id)
	}
	return nil
}
