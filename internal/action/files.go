package action

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/llehouerou/qss/internal/session"
)

// Trasher is the safe-delete collaborator: move a file away, remember
// where it came from, and be able to put it back.
type Trasher interface {
	TrashFile(path string) (trashName string, err error)
	Restore(trashName string) (restoredPath string, err error)
}

// OpenFolder opens the current item's parent directory in the system
// file manager.
func OpenFolder() Action {
	return &basic{
		name: "open_folder",
		desc: "Open parent folder in file manager",
		ctx:  GUI,
		run: func(s *session.Session, _ Params) (Result, error) {
			path, ok := s.CurrentPath()
			if !ok {
				return nil, session.ErrNoItems
			}
			dir := filepath.Dir(path)
			if err := openInFileManager(dir, ""); err != nil {
				return nil, fmt.Errorf("open folder: %w", err)
			}
			return Result{"opened": dir, "platform": runtime.GOOS}, nil
		},
	}
}

// RevealFile highlights the current item in the system file manager
// where the platform supports it, falling back to opening its folder.
func RevealFile() Action {
	return &basic{
		name: "reveal_file",
		desc: "Reveal current file in file manager",
		ctx:  GUI,
		run: func(s *session.Session, _ Params) (Result, error) {
			path, ok := s.CurrentPath()
			if !ok {
				return nil, session.ErrNoItems
			}
			if err := openInFileManager(filepath.Dir(path), path); err != nil {
				return nil, fmt.Errorf("reveal file: %w", err)
			}
			return Result{"revealed": path, "platform": runtime.GOOS}, nil
		},
	}
}

// openInFileManager launches the platform file manager on dir. When
// reveal is non-empty and the platform supports selection, the file is
// highlighted instead.
func openInFileManager(dir, reveal string) error {
	switch runtime.GOOS {
	case "windows":
		if reveal != "" {
			return exec.Command("explorer", "/select,", reveal).Start()
		}
		return exec.Command("explorer", dir).Start()
	case "darwin":
		if reveal != "" {
			return exec.Command("open", "-R", reveal).Start()
		}
		return exec.Command("open", dir).Start()
	default:
		for _, cmd := range []string{"xdg-open", "nautilus", "dolphin", "thunar", "pcmanfm"} {
			if _, err := exec.LookPath(cmd); err != nil {
				continue
			}
			if cmd == "nautilus" && reveal != "" {
				return exec.Command(cmd, "--select", reveal).Start()
			}
			return exec.Command(cmd, dir).Start()
		}
		return fmt.Errorf("no file manager found")
	}
}

// deleteImage removes the current item from the session order and moves
// its file to trash. Each execution computes its own inverse.
type deleteImage struct {
	trash Trasher
}

// DeleteImage creates the trash-backed delete action.
func DeleteImage(trash Trasher) Reversible {
	return &deleteImage{trash: trash}
}

func (d *deleteImage) Name() string        { return "delete_image" }
func (d *deleteImage) Description() string { return "Move current image to trash" }
func (d *deleteImage) Context() Context    { return GUI }

func (d *deleteImage) Execute(s *session.Session, p Params) (Result, error) {
	res, _, err := d.ExecuteReversible(s, p)
	return res, err
}

func (d *deleteImage) ExecuteReversible(s *session.Session, _ Params) (Result, *Record, error) {
	rem, trashName, err := d.remove(s)
	if err != nil {
		return nil, nil, err
	}

	// The record closes over the removal so undo can restore both the
	// file and the session order, and redo can remove them again.
	rec := &Record{Action: d.Name()}
	rec.Undo = func(s *session.Session) (Result, error) {
		restored, err := d.trash.Restore(trashName)
		if err != nil {
			return nil, fmt.Errorf("restore from trash: %w", err)
		}
		s.Restore(rem)
		return Result{"restored": restored, "current_index": rem.Pos}, nil
	}
	rec.Redo = func(s *session.Session) (Result, error) {
		r, name, err := d.remove(s)
		if err != nil {
			return nil, err
		}
		rem, trashName = r, name
		return Result{"action": "deleted", "removed_path": r.Path, "trash_name": name}, nil
	}

	return Result{
		"action":       "deleted",
		"removed_path": rem.Path,
		"trash_name":   trashName,
	}, rec, nil
}

// remove takes the current item out of the order, then trashes the file.
// If the trash move fails the order change is rolled back so no partial
// update is observable.
func (d *deleteImage) remove(s *session.Session) (session.Removed, string, error) {
	rem, err := s.RemoveCurrent()
	if err != nil {
		return session.Removed{}, "", err
	}
	trashName, err := d.trash.TrashFile(rem.Path)
	if err != nil {
		s.Restore(rem)
		return session.Removed{}, "", fmt.Errorf("trash file: %w", err)
	}
	return rem, trashName, nil
}
