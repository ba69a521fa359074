package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"

	"sss/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startSpinner shows text with a rotating frame in a pterm area until the
// returned func is called. The cursor is hidden meanwhile.
func startSpinner(text string) (stop func()) {
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				i++
				area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			_ = area.Stop()
			cursor.Show()
		})
	}
}

// prompt prints promptText, reads one line from r and clears both from the
// terminal.
func prompt(r *bufio.Reader, promptText string) (string, error) {
	fmt.Print(promptText)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimSpace(line)
	terminal.ClearPreviousLines(len(promptText) + len(line))
	return line, nil
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(r *bufio.Reader, promptText string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(r, promptText)
	}
	fmt.Print(promptText)
	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}
	terminal.ClearPreviousLines(len(promptText))
	return string(b), nil
}

// openBrowser opens url in the default browser without waiting for it.
func openBrowser(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		c = exec.Command("open", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	_ = c.Start()
}
