package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	banner := ` __  __ _             ____                 _
|  \/  (_)_ __   ___ / ___|_ __ __ _ _ __ | |__
| |\/| | | '_ \ / _ \ |  _| '__/ _` + "`" + ` | '_ \| '_ \
| |  | | | | | |  __/ |_| | | | (_| | |_) | | | |
|_|  |_|_|_| |_|\___|\____|_|  \__,_| .__/|_| |_|
                                    |_|
`
	if color.NoColor {
		fmt.Fprint(os.Stdout, banner)
		return
	}
	color.New(color.FgHiMagenta, color.Bold).Fprint(os.Stdout, banner)
}
