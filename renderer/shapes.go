// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Text fragments that wrap an expanded pattern.
// A pattern becomes one of:
//
//	{<stuff>;}
//	{<command>(<stuff>);}
//	if (<condition>) {<stuff>;}
//	if (<condition>) {<command>(<stuff>);}

package renderer

// Fragments emitted around the echoed condition.
const (
	ConditionOpen  = "if "
	ConditionClose = " "
)

// Open returns the text between the condition and the stuff.
func Open(command string) string {
	if command == "" {
		return "{"
	}
	return "{" + command + "("
}

// Close returns the text after the stuff.
func Close(command string) string {
	if command == "" {
		return ";}"
	}
	return ");}"
}

// Render builds a whole expansion from already scanned parts. The condition
// includes its parentheses.
func Render(command, condition, stuff string) string {
	out := Open(command) + stuff + Close(command)
	if condition != "" {
		out = ConditionOpen + condition + ConditionClose + out
	}
	return out
}

// Banner renders one banner comment line.
func Banner(text string) string {
	return "// " + text + "\n"
}
