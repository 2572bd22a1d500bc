package action

import (
	"fmt"
	"os"
	"time"

	"github.com/llehouerou/qss/internal/session"
)

const timestampLayout = "2006-01-02 15:04:05"

// Remember appends the current item to an append-only log file. Write
// failures are surfaced, never swallowed.
func Remember(path string) Action {
	return &basic{
		name: "remember",
		desc: "Save current image path to remember file",
		ctx:  Both,
		run: func(s *session.Session, _ Params) (Result, error) {
			item, ok := s.CurrentPath()
			if !ok {
				return nil, session.ErrNoItems
			}

			ts := time.Now().Format(timestampLayout)
			entry := fmt.Sprintf("[%s] %s\n  Index: %d/%d\n", ts, item, s.CurrentIndex()+1, s.Len())
			if rc := s.RepeatCount(); rc > 0 {
				entry += fmt.Sprintf("  Repeat: %d\n", rc)
			}
			entry += "\n"

			if err := appendLine(path, entry); err != nil {
				return nil, fmt.Errorf("remember file: %w", err)
			}
			return Result{
				"remembered": item,
				"file":       path,
				"timestamp":  ts,
			}, nil
		},
	}
}

// Note appends a free-text note about the current item to a log file.
func Note(path string) Action {
	return &basic{
		name: "note",
		desc: "Add custom note about current image",
		ctx:  Both,
		run: func(s *session.Session, p Params) (Result, error) {
			item, ok := s.CurrentPath()
			if !ok {
				return nil, session.ErrNoItems
			}

			text := p.Text("text")
			entry := fmt.Sprintf("[%s] %s\n", time.Now().Format(timestampLayout), item)
			if text != "" {
				entry += fmt.Sprintf("  Note: %s\n", text)
			}
			entry += "\n"

			if err := appendLine(path, entry); err != nil {
				return nil, fmt.Errorf("notes file: %w", err)
			}
			return Result{
				"noted": item,
				"note":  text,
				"file":  path,
			}, nil
		},
	}
}

func appendLine(path, entry string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
