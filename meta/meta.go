// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains meta information and usage instructions for jsdev.

package meta

const (
	Name    = "jsdev"
	Version = "v0.0.1"
	Usage   = "activate debugging patterns hidden in JavaScript comments"

	ArgsUsage = "[trigger[:command] ...] [-comment text]"

	Description = `jsdev copies a program from stdin to stdout, replacing pattern comments

	/*<trigger> <stuff>*/
	/*<trigger>(<condition>) <stuff>*/

for every declared trigger. A trigger declared as "name" expands into

	{<stuff>;}

and one declared as "name:command" into

	{<command>(<stuff>);}

A condition wraps the block in "if (<condition>) ...". Undeclared comments
are left alone. Example:

	jsdev debug log:console.log alarm:alert -comment "Devel Edition"`
)
