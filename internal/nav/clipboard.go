package nav

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through the OS clipboard and falls back to an
// OSC52 escape on the controlling terminal when no clipboard tool exists.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return writeOSC52(text)
}

func writeOSC52(text string) error {
	var w io.Writer = os.Stdout
	if f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
		defer f.Close()
		w = f
	}
	enc := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(w, "\x1b]52;c;%s\x07", enc); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
