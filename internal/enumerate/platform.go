package enumerate

import "github.com/systmms/keyvars/internal/naming"

// Platform is the closed set of hosts with a known listing command.
type Platform int

const (
	Unsupported Platform = iota
	Darwin
	Linux
	Windows
)

// Detect maps a GOOS value to a Platform.
func Detect(goos string) Platform {
	switch goos {
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Unsupported
	}
}

func (p Platform) String() string {
	switch p {
	case Darwin:
		return "darwin"
	case Linux:
		return "linux"
	case Windows:
		return "windows"
	default:
		return "unsupported"
	}
}

// DefaultCommand returns the argv of the native listing command, or nil.
func (p Platform) DefaultCommand() []string {
	switch p {
	case Darwin:
		return []string{"security", "dump-keychain"}
	case Linux:
		return []string{"secret-tool", "search", "--all", "--unlock", "xdg:schema", "org.freedesktop.Secret.Generic"}
	case Windows:
		return []string{"cmdkey", "/list"}
	default:
		return nil
	}
}

// Parser returns the output parser for the platform's listing command.
func (p Platform) Parser() Parser {
	switch p {
	case Darwin:
		return DarwinParser{}
	case Linux:
		return LinuxParser{}
	case Windows:
		return WindowsParser{}
	default:
		return nopParser{}
	}
}

type nopParser struct{}

func (nopParser) Parse(string) []naming.Entry { return nil }
