//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const ringSize = 1 << 20      // 1 MiB of scrollback
var binPath = "dropgrip_e2e" // set by TestMain

// Terminal size the app is started with
const (
	termRows = 40
	termCols = 120
)

// Keys the form understands
const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyTab   = "\t"
	KeyCtrlR = "\x12"
	KeyCtrlS = "\x13"
	KeySpace = " "
	KeyDown  = "\x1b[B"
	KeyQuit  = "q"
)

// ansiRe matches the CSI, OSC, charset and keypad sequences bubbletea writes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

func plain(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// TUITestFramework runs dropgrip in a PTY and records everything it draws
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUITest creates a framework bound to t
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t, buf: make([]byte, ringSize)}
}

// WriteConfig writes form.toml into a fresh workspace and returns its path
func (tf *TUITestFramework) WriteConfig(contents string) (string, error) {
	if tf.workspace == "" {
		dir, err := os.MkdirTemp("", "dropgrip-e2e-*")
		if err != nil {
			return "", fmt.Errorf("failed to create workspace: %w", err)
		}
		tf.workspace = dir
	}
	path := filepath.Join(tf.workspace, "form.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// StartApp launches dropgrip with args, with $HOME and XDG dirs inside the workspace
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"LANG=C.UTF-8",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+filepath.Join(tf.workspace, ".config"),
		"XDG_CACHE_HOME="+filepath.Join(tf.workspace, ".cache"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty, tf.tty = ptyFile, tty
	tf.cmd.Stdin, tf.cmd.Stdout, tf.cmd.Stderr = tty, tty, tty

	ws := struct{ Row, Col, X, Y uint16 }{termRows, termCols, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	go tf.record()
	return nil
}

// record copies PTY output into the ring buffer until the PTY closes
func (tf *TUITestFramework) record() {
	chunk := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(chunk)
		tf.mu.Lock()
		for _, b := range chunk[:n] {
			tf.buf[tf.head] = b
			tf.head = (tf.head + 1) % ringSize
			tf.full = tf.full || tf.head == 0
		}
		tf.mu.Unlock()
		if err != nil {
			return
		}
	}
}

// Key sends one key and gives the program a moment to process it.
// Escape sequences sent back to back can be read as a single burst.
func (tf *TUITestFramework) Key(key string) {
	tf.t.Helper()
	if _, err := tf.pty.Write([]byte(key)); err != nil {
		tf.t.Fatalf("failed to send key %q: %v", key, err)
	}
	time.Sleep(60 * time.Millisecond)
}

// Click presses and releases the left button at the zero-based cell (x, y)
func (tf *TUITestFramework) Click(x, y int) {
	tf.t.Helper()
	tf.Key(fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1))
	tf.Key(fmt.Sprintf("\x1b[<0;%d;%dm", x+1, y+1))
}

// Quit sends 'q'
func (tf *TUITestFramework) Quit() error {
	_, err := tf.pty.Write([]byte(KeyQuit))
	return err
}

// Ready waits for the form title to be drawn
func (tf *TUITestFramework) Ready(title string) bool {
	tf.t.Helper()
	return tf.waitFor(0, title, 5*time.Second)
}

// SeePlain waits for text to appear anywhere in the output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.waitFor(0, text, 3*time.Second)
}

// SeePlainAfter waits for text to appear in output produced after mark
func (tf *TUITestFramework) SeePlainAfter(mark int, text string) bool {
	tf.t.Helper()
	return tf.waitFor(mark, text, 3*time.Second)
}

// Mark returns the current output length, for use with SeePlainAfter
func (tf *TUITestFramework) Mark() int {
	return len(tf.snapshot())
}

func (tf *TUITestFramework) waitFor(mark int, text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		s := tf.snapshot()
		if mark > len(s) {
			mark = 0
		}
		if strings.Contains(plain(s[mark:]), text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// WaitExit waits for the process to exit
func (tf *TUITestFramework) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("process did not exit within %s", timeout)
	}
}

func (tf *TUITestFramework) snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	return string(tf.buf[tf.head:]) + string(tf.buf[:tf.head])
}

// SnapshotPlain returns everything recorded so far without escape sequences
func (tf *TUITestFramework) SnapshotPlain() string {
	return plain(tf.snapshot())
}

// DumpTailOnFail saves the last n bytes of plain output when t failed
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	if !t.Failed() {
		return
	}
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the PTY, kills the app and removes the workspace
func (tf *TUITestFramework) Cleanup() {
	// Closing the PTY first delivers SIGHUP
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.workspace != "" {
		_ = os.RemoveAll(tf.workspace)
		tf.workspace = ""
	}
}
