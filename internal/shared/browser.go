package shared

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// BrowserEnv names a command that replaces the platform default in [OpenBrowser].
const BrowserEnv = "BROWSER"

var getRuntime = func() string { return runtime.GOOS }

// browserCommand picks the program used to open url. $BROWSER wins over the platform default.
func browserCommand(url string) ([]string, error) {
	if custom := strings.Fields(os.Getenv(BrowserEnv)); len(custom) > 0 {
		return append(custom, url), nil
	}

	switch rt := getRuntime(); rt {
	case "darwin":
		return []string{"open", url}, nil
	case "linux", "freebsd", "openbsd":
		return []string{"xdg-open", url}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}, nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser starts the user's browser on url without waiting for it to exit.
func OpenBrowser(url string) error {
	args, err := browserCommand(url)
	if err != nil {
		return err
	}

	if err := exec.Command(args[0], args[1:]...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
