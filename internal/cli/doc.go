// Package cli implements the hswu command-line interface.
//
// Commands are Cobra commands defined in commands.go, each delegating to a
// function that loads the config, builds the clients it needs and renders
// the result:
//
//	hswu dump coins <id>       - wallet coins to dumps/w-<id>/coins*.json
//	hswu dump names <id>       - wallet names to dumps/w-<id>/names.json
//	hswu dump blocktimes       - node block times to blocktimes.json
//	hswu summary <file>        - group a dump by a field, draw bar and table
//	hswu status [--watch]      - chain sync state and blocktimes coverage
//	hswu plugin check          - check the wallet's names plugin
//	hswu blocktime <height>... - look heights up in blocktimes.json
//	hswu init                  - write .hswu.yaml (prompts in a terminal)
//	hswu config env|set|keys|path
//
// # Configuration
//
// Connection flags (--network, --url, --api-key, ...) are persistent flags on
// the root command. loadConfig hands the command's flag set to config.Load,
// which only lets flags the user actually set override the file and the
// HSD_* environment.
//
// # Output
//
// Results go to the command's stdout, progress (spinners) to stderr. With
// --json, commands that produce data print a JSONEnvelope instead and errors
// are reported through ErrorToJSON. Commands that answer yes/no questions
// (plugin check, blocktime) exit 1 through errors.ExitError when the answer
// is no.
package cli
