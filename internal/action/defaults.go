package action

import (
	"github.com/llehouerou/qss/internal/tools"
)

// Collaborators are the external resources the default action set binds
// to. Zero-valued fields disable the actions that need them.
type Collaborators struct {
	RememberFile string
	NotesFile    string
	Trash        Trasher
	Tools        *tools.Manager
}

// RegisterDefaults populates reg with the built-in action catalog plus
// one action per discovered external tool.
func RegisterDefaults(reg *Registry, c Collaborators) {
	reg.Register(NavigateNext())
	reg.Register(NavigatePrevious())
	reg.Register(TogglePause())
	reg.Register(ToggleRepeat())
	reg.Register(ToggleShuffle())
	reg.Register(ToggleAlwaysOnTop())
	reg.Register(ToggleFullscreen())
	reg.Register(IncreaseSpeed())
	reg.Register(DecreaseSpeed())
	reg.Register(Quit())
	reg.Register(UndoAction())
	reg.Register(RedoAction())
	reg.Register(OpenFolder())
	reg.Register(RevealFile())

	if c.RememberFile != "" {
		reg.Register(Remember(c.RememberFile))
	}
	if c.NotesFile != "" {
		reg.Register(Note(c.NotesFile))
	}
	if c.Trash != nil {
		reg.Register(DeleteImage(c.Trash))
	}
	if c.Tools != nil {
		for _, t := range c.Tools.List() {
			reg.Register(ExternalTool(c.Tools, t))
		}
	}
}
