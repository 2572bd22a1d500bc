package action

import (
	"context"
	"fmt"

	"github.com/llehouerou/qss/internal/session"
	"github.com/llehouerou/qss/internal/tools"
)

// externalTool runs one discovered helper script against the current
// item, honoring the exit-code contract (1 removes the current item).
type externalTool struct {
	tool    tools.Tool
	manager *tools.Manager
}

// ExternalTool creates the action for one discovered tool. The action is
// named external_tool_<id>.
func ExternalTool(m *tools.Manager, t tools.Tool) Action {
	return &externalTool{tool: t, manager: m}
}

func (a *externalTool) Name() string {
	return "external_tool_" + a.tool.ID
}

func (a *externalTool) Description() string {
	return fmt.Sprintf("Run external tool %s", a.tool.ID)
}

func (a *externalTool) Context() Context { return Both }

func (a *externalTool) Execute(s *session.Session, _ Params) (Result, error) {
	if s.Len() == 0 {
		return nil, session.ErrNoItems
	}

	env := tools.BuildEnv(a.tool.ID, s.TemplateVars())
	res, err := a.manager.Run(context.Background(), a.tool, env)
	if err != nil {
		return nil, err
	}

	switch res.Outcome {
	case tools.RemoveCurrent:
		rem, err := s.RemoveCurrent()
		if err != nil {
			return nil, err
		}
		return Result{
			"action":       "removed",
			"tool":         a.tool.ID,
			"removed_path": rem.Path,
		}, nil
	case tools.Failed:
		return nil, fmt.Errorf("tool %s exited with code %d: %s",
			a.tool.ID, res.ExitCode, res.Stderr)
	default:
		return Result{
			"success": true,
			"tool":    a.tool.ID,
			"output":  res.Stdout,
		}, nil
	}
}
