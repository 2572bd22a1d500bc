package session

import (
	"fmt"
	"image"
	_ "image/gif" // register formats for dimension probing
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

// StatusPresets are the built-in status line templates selectable with
// $1-$6 on the command line.
var StatusPresets = map[string]string{
	"$1": "Media {img_idx}/{img_total} {progress_percent}%",
	"$2": "Media {img_idx}/{img_total} (r:{repeat_count})",
	"$3": "{img_idx}/{img_total}: {progress_percent}% {full_path}",
	"$4": "Media {img_path} ({img_size_mb}mb): {img_idx}/{img_total}",
	"$5": "{base_name}{extension} - {img_size} ({file_size}) - {speed}",
	"$6": "{full_path} | {progress_percent}% complete",
}

// StatusTemplate expands a $1-$6 preset, or returns the argument itself.
func StatusTemplate(arg string) string {
	if tpl, ok := StatusPresets[arg]; ok {
		return tpl
	}
	return arg
}

// TemplateVars returns the current values of all template variables for
// status lines and external tool environments.
func (s *Session) TemplateVars() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateVarsLocked()
}

func (s *Session) templateVarsLocked() map[string]string {
	if len(s.order) == 0 {
		return map[string]string{}
	}
	path := s.seq.Path(s.order[s.current])

	vars := map[string]string{
		"img_idx":   fmt.Sprintf("%d", s.current+1),
		"img_total": fmt.Sprintf("%d", len(s.order)),
		"img_name":  filepath.Base(path),
		"base_name": strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		"extension": filepath.Ext(path),
		"img_path":  path,
	}

	if abs, err := filepath.Abs(path); err == nil {
		vars["full_path"] = abs
	} else {
		vars["full_path"] = path
	}

	vars["img_size"] = probeDimensions(path)

	if info, err := os.Stat(path); err == nil {
		vars["file_size"] = humanize.Bytes(uint64(info.Size()))
		vars["img_size_mb"] = fmt.Sprintf("%.2f", float64(info.Size())/(1024*1024))
	} else {
		vars["file_size"] = "N/A"
		vars["img_size_mb"] = "N/A"
	}

	vars["speed"] = fmt.Sprintf("%.1fs", s.speed)
	vars["paused"] = flag(s.paused, "PAUSED")
	vars["repeat"] = flag(s.repeat, "REPEAT")
	vars["repeat_count"] = fmt.Sprintf("%d", s.repeatCount)
	vars["always_on_top"] = flag(s.alwaysOnTop, "TOP")
	vars["shuffle"] = flag(s.shuffle, "SHUFFLE")
	vars["progress_percent"] = fmt.Sprintf("%d", (s.current+1)*100/len(s.order))

	return vars
}

// FormatTemplate substitutes {var} placeholders with current values.
func (s *Session) FormatTemplate(tpl string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatTemplateLocked(tpl)
}

func (s *Session) formatTemplateLocked(tpl string) string {
	if tpl == "" || len(s.order) == 0 {
		return ""
	}
	result := tpl
	for name, value := range s.templateVarsLocked() {
		result = strings.ReplaceAll(result, "{"+name+"}", value)
	}
	return result
}

// FormatStatus renders the configured status format, or "" if none.
func (s *Session) FormatStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusFormat == "" {
		return ""
	}
	return s.formatTemplateLocked(s.statusFormat)
}

// probeDimensions reads only the image header to get WxH without
// decoding pixels. Formats outside the registered set report N/A.
func probeDimensions(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "N/A"
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
}

func flag(on bool, label string) string {
	if on {
		return label
	}
	return ""
}
