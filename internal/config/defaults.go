package config

// defaultConfig is the built-in configuration, also emitted verbatim by
// generate-config so the file doubles as documentation.
var defaultConfig = []byte(`# qss configuration file
# Place this file at ~/.config/qss/config.toml or ./qss.toml,
# or pass an explicit path with --config.

[slideshow]
speed = 3.0              # seconds between slides (0.5 - 60)
repeat = false           # loop back to the first image after the last
shuffle = false          # shuffle order on start
always_on_top = false    # keep window above all others
paused_on_start = false  # start paused
status_format = ""       # custom status text, e.g. "{img_idx}/{img_total} - {img_name}"
remember_file = "remember.txt"
notes_file = "slideshow_notes.txt"

[images]
recursive = false        # search subdirectories
exclude_patterns = []    # glob patterns to skip, e.g. ["*.tmp", "thumbnail_*"]
extensions = []          # extra extensions beyond the defaults, e.g. [".webp"]

[web]
port = 8000
host = "0.0.0.0"

[external_tools]
base_name = "tool"       # scripts named tool0..tool99, toola..toolz
search_dir = "."

[file_operations]
enable_trash = true      # move deleted files to trash instead of removing
enable_undo = true
max_undo_history = 50
auto_cleanup_days = 30   # purge trash items older than this

# Binding tables map an action name to one key token or a list of
# equivalent tokens. Context layers (gui, web) override common entries
# that share a token.

[hotkeys.common]
navigate_next = ["right", "pgdown"]
navigate_previous = ["left", "pgup"]
toggle_pause = ["space", "enter"]
toggle_fullscreen = ["f", "f11"]
toggle_repeat = "r"
toggle_shuffle = "s"
increase_speed = ["+", "="]
decrease_speed = "-"

[hotkeys.gui]
quit = ["esc", "q"]
toggle_always_on_top = "t"
open_folder = "o"
reveal_file = "O"
remember = "m"
note = "n"
undo = "ctrl+z"
redo = "ctrl+y"
delete_image = "delete"
external_tool_0 = "0"
external_tool_1 = "1"
external_tool_2 = "2"
external_tool_3 = "3"
external_tool_4 = "4"
external_tool_5 = "5"
external_tool_6 = "6"
external_tool_7 = "7"
external_tool_8 = "8"
external_tool_9 = "9"

[hotkeys.web]
undo = "ctrl+z"
redo = "ctrl+y"

# Gesture tables use the same action -> token shape; tokens are gesture
# names emitted by the touch detector.

[gestures.common]
navigate_next = "swipe_left"
navigate_previous = "swipe_right"
toggle_pause = "double_tap"
increase_speed = "swipe_up"
decrease_speed = "swipe_down"

[gestures.web]
external_tool_0 = "two_finger_swipe_left"
external_tool_1 = "two_finger_swipe_right"
toggle_fullscreen = "three_finger_tap"
`)
